package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/entities"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/contextkeys"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/service"
	"maintenance-system/pkg/utils"
)

type AuthMiddleware struct {
	jwtService  service.JWTService
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthMiddleware(jwtService service.JWTService, authService services.AuthServiceInterface, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService, authService: authService, logger: logger}
}

func extractBearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", apperrors.ErrEmptyAuthHeader
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.ErrInvalidAuthHeader
	}
	return parts[1], nil
}

// Authenticate validates the access token, checks the session is still live
// and injects the caller's identity into the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := extractBearerToken(c)
		if err != nil {
			return utils.ErrorResponse(c, err)
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			return utils.ErrorResponse(c, err)
		}
		if claims.IsRefreshToken {
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess)
		}

		if err := m.authService.CheckSession(c.Request().Context(), claims.SessionID); err != nil {
			m.logger.Warn("rejected request on revoked session",
				zap.Uint64("user_id", claims.UserID),
				zap.String("session_id", claims.SessionID),
			)
			return utils.ErrorResponse(c, err)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.UserRoleKey, claims.Role)
		ctx = context.WithValue(ctx, contextkeys.SessionIDKey, claims.SessionID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireAdmin allows only admin callers through. Must run after Authenticate.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, err := utils.GetUserRoleFromCtx(c.Request().Context())
		if err != nil {
			return utils.ErrorResponse(c, err)
		}
		if role != entities.RoleAdmin {
			return utils.ErrorResponse(c, apperrors.ErrForbidden)
		}
		return next(c)
	}
}
