package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"
)

const userTable = "users"
const userFields = "id, username, email, phone, password, role, created_at, updated_at"

type UserRepositoryInterface interface {
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByLogin(ctx context.Context, login string) (*entities.User, error)
	CreateUser(ctx context.Context, user entities.User) (uint64, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func (r *UserRepository) scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStoreError("users.scan", err)
	}
	return &u, nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", userFields, userTable)
	return r.scanUser(r.storage.QueryRow(ctx, query, id))
}

// FindUserByLogin accepts either a username or an email.
func (r *UserRepository) FindUserByLogin(ctx context.Context, login string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE username = $1 OR email = $1", userFields, userTable)
	return r.scanUser(r.storage.QueryRow(ctx, query, login))
}

func (r *UserRepository) CreateUser(ctx context.Context, user entities.User) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (username, email, phone, password, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, userTable)

	var id uint64
	err := r.storage.QueryRow(ctx, query, user.Username, user.Email, user.Phone, user.Password, user.Role).Scan(&id)
	if err != nil {
		r.logger.Error("failed to create user", zap.String("username", user.Username), zap.Error(err))
		return 0, apperrors.NewStoreError("users.create", err)
	}
	return id, nil
}
