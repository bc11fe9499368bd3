package routes

import (
	"github.com/labstack/echo/v4"
)

func runReportRouter(secure *echo.Group, ctrls Controllers) {
	reports := secure.Group("/reports")
	reports.GET("/interventions", ctrls.Report.List)
	reports.GET("/interventions/export", ctrls.Report.Export)
}
