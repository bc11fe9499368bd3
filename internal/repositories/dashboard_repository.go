package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "maintenance-system/pkg/errors"
)

type StatusCount struct {
	Status string
	Count  int
}

type DashboardRepositoryInterface interface {
	GetTotalInterventions(ctx context.Context) (int, error)
	GetCountByStatus(ctx context.Context) ([]StatusCount, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
}

func NewDashboardRepository(storage *pgxpool.Pool) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage}
}

func (r *DashboardRepository) GetTotalInterventions(ctx context.Context) (int, error) {
	query, args, err := sq.Select("COUNT(*)").From(interventionTable).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.NewStoreError("dashboard.total", err)
	}
	return total, nil
}

func (r *DashboardRepository) GetCountByStatus(ctx context.Context) ([]StatusCount, error) {
	query, args, err := sq.Select("status", "COUNT(*)").From(interventionTable).
		GroupBy("status").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("dashboard.count_by_status", err)
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, apperrors.NewStoreError("dashboard.count_by_status_scan", err)
		}
		counts = append(counts, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("dashboard.count_by_status_rows", err)
	}
	return counts, nil
}
