package routes

import (
	"github.com/labstack/echo/v4"
)

func runPublicRouter(public *echo.Group, ctrls Controllers) {
	interventions := public.Group("/interventions")
	interventions.POST("", ctrls.Intervention.Submit)
	interventions.GET("/recent", ctrls.Intervention.RecentFeed)
	interventions.GET("/:id/track", ctrls.Intervention.Track)
	interventions.PATCH("/:id", ctrls.Intervention.Amend)
}
