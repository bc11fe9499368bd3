package routes

import (
	"github.com/labstack/echo/v4"

	"maintenance-system/pkg/middleware"
)

// Equipment reads are public so the report form can list machines; creation
// is an admin operation.
func runEquipmentRouter(public *echo.Group, secure *echo.Group, ctrls Controllers, authMW *middleware.AuthMiddleware) {
	public.GET("/equipments", ctrls.Equipment.List)
	public.GET("/equipments/:id", ctrls.Equipment.Get)

	secure.POST("/equipments", ctrls.Equipment.Create, authMW.RequireAdmin)
}
