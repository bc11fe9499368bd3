package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"
	"maintenance-system/pkg/utils"
)

type EquipmentController struct {
	service services.EquipmentServiceInterface
}

func NewEquipmentController(service services.EquipmentServiceInterface) *EquipmentController {
	return &EquipmentController{service: service}
}

func (ctrl *EquipmentController) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	page, _ := strconv.Atoi(c.QueryParam("page"))
	filter := types.Filter{
		Search: c.QueryParam("search"),
		Limit:  limit,
		Page:   page,
	}

	equipments, pagination, err := ctrl.service.GetEquipments(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, dto.EquipmentListDTO{Pagination: pagination, Equipments: equipments})
}

func (ctrl *EquipmentController) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	equipment, err := ctrl.service.GetEquipment(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, equipment)
}

func (ctrl *EquipmentController) Create(c echo.Context) error {
	var payload dto.CreateEquipmentDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err)
	}

	equipment, err := ctrl.service.CreateEquipment(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, equipment)
}
