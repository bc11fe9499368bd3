package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"
)

// EquipmentStatusRow pairs an equipment with its most recent intervention.
// Status and LastInterventionAt are nil for equipment that never had one.
type EquipmentStatusRow struct {
	EquipmentID        uint64
	Name               string
	Type               string
	InService          string
	Status             *string
	LastInterventionAt *time.Time
}

const equipmentTable = "equipments"
const equipmentFields = "id, name, type, in_service, created_at, updated_at"

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, name, eqType, inService string) (uint64, error)
	GetEquipmentStatuses(ctx context.Context) ([]EquipmentStatusRow, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(&e.ID, &e.Name, &e.Type, &e.InService, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStoreError("equipments.scan", err)
	}
	return &e, nil
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(equipmentFields).
		From(equipmentTable).
		OrderBy("name ASC")

	countBuilder := psql.Select("COUNT(*)").From(equipmentTable)

	if filter.Search != "" {
		cond := sq.ILike{"name": "%" + filter.Search + "%"}
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building equipments query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewStoreError("equipments.list", err)
	}
	defer rows.Close()

	var list []entities.Equipment
	for rows.Next() {
		var e entities.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Type, &e.InService, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, apperrors.NewStoreError("equipments.scan", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewStoreError("equipments.rows", err)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building equipments count query: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewStoreError("equipments.count", err)
	}

	return list, total, nil
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", equipmentFields, equipmentTable)
	return scanEquipment(r.storage.QueryRow(ctx, query, id))
}

// GetEquipmentStatuses returns every equipment with its latest intervention,
// when it has one.
func (r *EquipmentRepository) GetEquipmentStatuses(ctx context.Context) ([]EquipmentStatusRow, error) {
	query := fmt.Sprintf(`
		SELECT e.id, e.name, e.type, e.in_service, i.status, i.created_at
		FROM %s e
			LEFT JOIN LATERAL (
				SELECT status, created_at
				FROM %s
				WHERE equipment_id = e.id
				ORDER BY created_at DESC, id DESC
				LIMIT 1
			) i ON true
		ORDER BY e.name ASC
	`, equipmentTable, interventionTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewStoreError("equipments.statuses", err)
	}
	defer rows.Close()

	var result []EquipmentStatusRow
	for rows.Next() {
		var row EquipmentStatusRow
		if err := rows.Scan(&row.EquipmentID, &row.Name, &row.Type, &row.InService, &row.Status, &row.LastInterventionAt); err != nil {
			return nil, apperrors.NewStoreError("equipments.statuses_scan", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("equipments.statuses_rows", err)
	}
	return result, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, name, eqType, inService string) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, type, in_service)
		VALUES ($1, $2, $3)
		RETURNING id
	`, equipmentTable)

	var id uint64
	if err := r.storage.QueryRow(ctx, query, name, eqType, inService).Scan(&id); err != nil {
		return 0, apperrors.NewStoreError("equipments.create", err)
	}
	return id, nil
}
