package routes

import (
	"github.com/labstack/echo/v4"
)

func runTechnicianRouter(secure *echo.Group, ctrls Controllers) {
	interventions := secure.Group("/interventions")
	interventions.GET("/available", ctrls.Technician.AvailableInterventions)
	interventions.GET("/my", ctrls.Technician.MyInterventions)
	interventions.GET("/status-summary", ctrls.Technician.StatusSummary)
	interventions.GET("/equipment-problems", ctrls.Technician.EquipmentProblemFeed)
	interventions.GET("/:id", ctrls.Technician.GetIntervention)

	secure.GET("/equipments-status", ctrls.Technician.EquipmentsStatus)
	secure.GET("/equipments-status-summary", ctrls.Technician.EquipmentsStatusSummary)

	traitements := secure.Group("/traitements")
	traitements.POST("", ctrls.Traitement.Create)
	traitements.PUT("/:id", ctrls.Traitement.Update)
	traitements.GET("/my", ctrls.Traitement.MyTraitements)

	secure.GET("/dashboard/stats", ctrls.Dashboard.Stats)
}
