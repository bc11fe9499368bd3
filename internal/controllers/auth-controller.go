package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"
)

type AuthController struct {
	service services.AuthServiceInterface
}

func NewAuthController(service services.AuthServiceInterface) *AuthController {
	return &AuthController{service: service}
}

func (ctrl *AuthController) Register(c echo.Context) error {
	var payload dto.RegisterDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err)
	}

	user, err := ctrl.service.Register(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, user)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err)
	}

	tokens, err := ctrl.service.Login(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, tokens)
}

func (ctrl *AuthController) Refresh(c echo.Context) error {
	var payload dto.RefreshDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err)
	}

	tokens, err := ctrl.service.Refresh(c.Request().Context(), payload.RefreshToken)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, tokens)
}

// Logout revokes the caller's session, invalidating every token issued on it.
func (ctrl *AuthController) Logout(c echo.Context) error {
	sessionID, err := utils.GetSessionIDFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	if err := ctrl.service.Logout(c.Request().Context(), sessionID); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, map[string]string{"message": "logged out"})
}

func (ctrl *AuthController) Me(c echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	user, err := ctrl.service.Me(c.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, user)
}
