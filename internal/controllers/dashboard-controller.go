package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"
)

type DashboardController struct {
	service services.DashboardServiceInterface
}

func NewDashboardController(service services.DashboardServiceInterface) *DashboardController {
	return &DashboardController{service: service}
}

func (ctrl *DashboardController) Stats(c echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	stats, err := ctrl.service.GetDashboardStats(c.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, stats)
}
