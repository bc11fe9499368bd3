package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"
)

// InterventionController serves the public requester endpoints. No
// authentication: anyone on the shop floor can report a failure and follow it.
type InterventionController struct {
	service services.InterventionServiceInterface
}

func NewInterventionController(service services.InterventionServiceInterface) *InterventionController {
	return &InterventionController{service: service}
}

func parseIDParam(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "invalid id", apperrors.ErrBadRequest, nil)
	}
	return id, nil
}

func (ctrl *InterventionController) Submit(c echo.Context) error {
	var payload dto.SubmitInterventionDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err)
	}

	result, err := ctrl.service.SubmitIntervention(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, result)
}

func (ctrl *InterventionController) Track(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	view, err := ctrl.service.TrackIntervention(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, view)
}

func (ctrl *InterventionController) Amend(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	var payload dto.AmendInterventionDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err)
	}

	intervention, err := ctrl.service.AmendPendingIntervention(c.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, intervention)
}

func (ctrl *InterventionController) RecentFeed(c echo.Context) error {
	limit, _ := strconv.ParseUint(c.QueryParam("limit"), 10, 64)

	views, err := ctrl.service.GetRecentInterventions(c.Request().Context(), limit)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, views)
}
