package routes

import (
	"github.com/labstack/echo/v4"

	"maintenance-system/internal/controllers"
	"maintenance-system/pkg/middleware"
)

// Controllers bundles everything InitRouter wires up.
type Controllers struct {
	Auth         *controllers.AuthController
	Intervention *controllers.InterventionController
	Technician   *controllers.TechnicianController
	Traitement   *controllers.TraitementController
	Equipment    *controllers.EquipmentController
	Dashboard    *controllers.DashboardController
	Report       *controllers.ReportController
}

// InitRouter mounts the public requester surface under /api/public and the
// authenticated technician surface under /api.
func InitRouter(e *echo.Echo, ctrls Controllers, authMW *middleware.AuthMiddleware) {
	api := e.Group("/api")

	public := api.Group("/public")
	runPublicRouter(public, ctrls)

	runAuthRouter(api, ctrls, authMW)

	secure := api.Group("", authMW.Authenticate)
	runTechnicianRouter(secure, ctrls)
	runEquipmentRouter(public, secure, ctrls, authMW)
	runReportRouter(secure, ctrls)
}
