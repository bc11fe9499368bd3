package routes

import (
	"github.com/labstack/echo/v4"

	"maintenance-system/pkg/middleware"
)

func runAuthRouter(api *echo.Group, ctrls Controllers, authMW *middleware.AuthMiddleware) {
	auth := api.Group("/auth")
	auth.POST("/register", ctrls.Auth.Register)
	auth.POST("/login", ctrls.Auth.Login)
	auth.POST("/refresh", ctrls.Auth.Refresh)
	auth.POST("/logout", ctrls.Auth.Logout, authMW.Authenticate)
	auth.GET("/me", ctrls.Auth.Me, authMW.Authenticate)
}
