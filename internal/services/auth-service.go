package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/service"
	"maintenance-system/pkg/utils"
)

const sessionKeyPrefix = "session:"

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*entities.User, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
	Logout(ctx context.Context, sessionID string) error
	CheckSession(ctx context.Context, sessionID string) error
	Me(ctx context.Context, userID uint64) (*entities.User, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	sessionTTL time.Duration
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	sessionTTL time.Duration,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*entities.User, error) {
	hashed, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	role := payload.Role
	if role == "" {
		role = entities.RoleTechnician
	}

	id, err := s.userRepo.CreateUser(ctx, entities.User{
		Username: payload.Username,
		Email:    payload.Email,
		Phone:    payload.Phone,
		Password: hashed,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint64("user_id", id), zap.String("role", role))
	return s.userRepo.FindUserByID(ctx, id)
}

// Login checks the credentials, opens a server-side session and issues a
// token pair bound to it. An unknown login and a wrong password produce the
// same error.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindUserByLogin(ctx, payload.Login)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	sessionID := uuid.New().String()
	sessionKey := sessionKeyPrefix + sessionID
	if err := s.cacheRepo.Set(ctx, sessionKey, user.ID, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, user.Role, sessionID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.Uint64("user_id", user.ID), zap.String("session_id", sessionID))
	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh rotates the token pair. The session stays the same; its TTL is
// extended so an active user is never logged out mid-work.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	if err := s.CheckSession(ctx, claims.SessionID); err != nil {
		return nil, err
	}

	sessionKey := sessionKeyPrefix + claims.SessionID
	if err := s.cacheRepo.Set(ctx, sessionKey, claims.UserID, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to extend session: %w", err)
	}

	accessToken, newRefreshToken, err := s.jwtService.GenerateTokens(claims.UserID, claims.Role, claims.SessionID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.cacheRepo.Del(ctx, sessionKeyPrefix+sessionID)
}

// CheckSession reports whether the session is still live. A missing key means
// the session was revoked or expired.
func (s *AuthService) CheckSession(ctx context.Context, sessionID string) error {
	_, err := s.cacheRepo.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apperrors.ErrSessionRevoked
		}
		return err
	}
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID uint64) (*entities.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}
