package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"
)

type TraitementController struct {
	service services.TraitementServiceInterface
}

func NewTraitementController(service services.TraitementServiceInterface) *TraitementController {
	return &TraitementController{service: service}
}

func (ctrl *TraitementController) Create(c echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	var payload dto.CreateTraitementDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err)
	}

	result, err := ctrl.service.RecordTraitement(c.Request().Context(), userID, payload)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, result)
}

func (ctrl *TraitementController) Update(c echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	var payload dto.UpdateTraitementDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err)
	}

	traitement, err := ctrl.service.UpdateTraitement(c.Request().Context(), userID, id, payload)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, traitement)
}

func (ctrl *TraitementController) MyTraitements(c echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	traitements, err := ctrl.service.GetMyTraitements(c.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, traitements)
}
