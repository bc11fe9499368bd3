package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"
)

// TechnicianController serves the authenticated read views over
// interventions.
type TechnicianController struct {
	service services.InterventionServiceInterface
}

func NewTechnicianController(service services.InterventionServiceInterface) *TechnicianController {
	return &TechnicianController{service: service}
}

func (ctrl *TechnicianController) GetIntervention(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	intervention, err := ctrl.service.GetIntervention(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, intervention)
}

func (ctrl *TechnicianController) AvailableInterventions(c echo.Context) error {
	interventions, err := ctrl.service.GetAvailableInterventions(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, interventions)
}

func (ctrl *TechnicianController) MyInterventions(c echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	interventions, err := ctrl.service.GetMyInterventions(c.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, interventions)
}

func (ctrl *TechnicianController) EquipmentProblemFeed(c echo.Context) error {
	feed, err := ctrl.service.EquipmentProblemFeed(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, feed)
}

func (ctrl *TechnicianController) EquipmentsStatus(c echo.Context) error {
	board, err := ctrl.service.EquipmentsStatus(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, board)
}

func (ctrl *TechnicianController) EquipmentsStatusSummary(c echo.Context) error {
	summary, err := ctrl.service.EquipmentsStatusSummary(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, summary)
}

func (ctrl *TechnicianController) StatusSummary(c echo.Context) error {
	summary, err := ctrl.service.StatusSummary(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, summary)
}
