package utils

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "maintenance-system/pkg/errors"
)

// Response is the uniform envelope every endpoint answers with.
type Response struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message,omitempty"`
}

func SuccessResponse(c echo.Context, code int, body interface{}) error {
	return c.JSON(code, Response{Status: true, Body: body})
}

// ErrorResponse maps service and repository errors onto HTTP codes. Unknown
// errors stay opaque to the client.
func ErrorResponse(c echo.Context, err error) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return c.JSON(httpErr.Code, Response{Status: false, Message: httpErr.Message, Body: httpErr.Details})
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			details[fe.Field()] = fe.Tag()
		}
		return c.JSON(http.StatusBadRequest, Response{Status: false, Message: "validation failed", Body: details})
	}

	var invalidInput *apperrors.InvalidInputError
	if errors.As(err, &invalidInput) {
		return c.JSON(http.StatusBadRequest, Response{Status: false, Message: invalidInput.Message})
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return c.JSON(http.StatusNotFound, Response{Status: false, Message: "record not found"})
	case errors.Is(err, apperrors.ErrConflict):
		return c.JSON(http.StatusConflict, Response{Status: false, Message: err.Error()})
	case errors.Is(err, apperrors.ErrBadRequest):
		return c.JSON(http.StatusBadRequest, Response{Status: false, Message: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		return c.JSON(http.StatusForbidden, Response{Status: false, Message: "forbidden"})
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenIsNotRefresh),
		errors.Is(err, apperrors.ErrTokenIsNotAccess),
		errors.Is(err, apperrors.ErrSessionRevoked),
		errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrUserIDNotFoundInContext):
		return c.JSON(http.StatusUnauthorized, Response{Status: false, Message: err.Error()})
	}

	return c.JSON(http.StatusInternalServerError, Response{Status: false, Message: "internal server error"})
}
