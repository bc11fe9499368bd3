package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"
)

const traitementTable = "traitements"

const traitementFields = `id, intervention_id, technician_id, repair_duration, machine_downtime_hours,
	repair_description, parts_changed, fix_type, specialist_transfer, final_status, created_at, updated_at`

type TraitementRepositoryInterface interface {
	CreateTraitement(ctx context.Context, tx pgx.Tx, technicianID uint64, payload dto.CreateTraitementDTO) (uint64, error)
	FindTraitement(ctx context.Context, id uint64) (*entities.Traitement, error)
	FindTraitementOwnedBy(ctx context.Context, id uint64, technicianID uint64) (*entities.Traitement, error)
	UpdateTraitement(ctx context.Context, tx pgx.Tx, id uint64, payload dto.UpdateTraitementDTO) error
	GetTraitementsByTechnician(ctx context.Context, technicianID uint64) ([]entities.Traitement, error)
	FindLatestByIntervention(ctx context.Context, interventionID uint64) (*entities.Traitement, error)
	CountByTechnician(ctx context.Context, technicianID uint64) (int, error)
	CountDistinctInterventionsByTechnician(ctx context.Context, technicianID uint64) (int, error)
}

type TraitementRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTraitementRepository(storage *pgxpool.Pool, logger *zap.Logger) TraitementRepositoryInterface {
	return &TraitementRepository{storage: storage, logger: logger}
}

func (r *TraitementRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanTraitement(row pgx.Row) (*entities.Traitement, error) {
	var t entities.Traitement
	err := row.Scan(
		&t.ID, &t.InterventionID, &t.TechnicianID, &t.RepairDuration, &t.MachineDowntimeHours,
		&t.RepairDescription, &t.PartsChanged, &t.FixType, &t.SpecialistTransfer, &t.FinalStatus,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStoreError("traitements.scan", err)
	}
	return &t, nil
}

func (r *TraitementRepository) CreateTraitement(ctx context.Context, tx pgx.Tx, technicianID uint64, payload dto.CreateTraitementDTO) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (intervention_id, technician_id, repair_duration, machine_downtime_hours,
			repair_description, parts_changed, fix_type, specialist_transfer, final_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, traitementTable)

	var id uint64
	err := r.getQuerier(tx).QueryRow(ctx, query,
		payload.InterventionID, technicianID, payload.RepairDuration, payload.MachineDowntimeHours,
		payload.RepairDescription, payload.PartsChanged, payload.FixType, payload.SpecialistTransfer,
		payload.FinalStatus,
	).Scan(&id)
	if err != nil {
		r.logger.Error("failed to insert traitement",
			zap.Uint64("intervention_id", payload.InterventionID),
			zap.Uint64("technician_id", technicianID),
			zap.Error(err),
		)
		return 0, apperrors.NewStoreError("traitements.create", err)
	}
	return id, nil
}

func (r *TraitementRepository) FindTraitement(ctx context.Context, id uint64) (*entities.Traitement, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", traitementFields, traitementTable)
	return scanTraitement(r.storage.QueryRow(ctx, query, id))
}

// FindTraitementOwnedBy enforces the treatment-level ownership check: a
// missing record and a record owned by someone else are indistinguishable
// to the caller.
func (r *TraitementRepository) FindTraitementOwnedBy(ctx context.Context, id uint64, technicianID uint64) (*entities.Traitement, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND technician_id = $2", traitementFields, traitementTable)
	return scanTraitement(r.storage.QueryRow(ctx, query, id, technicianID))
}

func (r *TraitementRepository) UpdateTraitement(ctx context.Context, tx pgx.Tx, id uint64, payload dto.UpdateTraitementDTO) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Update(traitementTable).Set("updated_at", sq.Expr("CURRENT_TIMESTAMP"))

	if payload.RepairDuration != nil {
		builder = builder.Set("repair_duration", *payload.RepairDuration)
	}
	if payload.MachineDowntimeHours != nil {
		builder = builder.Set("machine_downtime_hours", *payload.MachineDowntimeHours)
	}
	if payload.RepairDescription != nil {
		builder = builder.Set("repair_description", *payload.RepairDescription)
	}
	if payload.PartsChanged != nil {
		builder = builder.Set("parts_changed", *payload.PartsChanged)
	}
	if payload.FixType != nil {
		builder = builder.Set("fix_type", *payload.FixType)
	}
	if payload.SpecialistTransfer != nil {
		builder = builder.Set("specialist_transfer", *payload.SpecialistTransfer)
	}
	if payload.FinalStatus != nil {
		builder = builder.Set("final_status", *payload.FinalStatus)
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building traitement update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return apperrors.NewStoreError("traitements.update", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TraitementRepository) GetTraitementsByTechnician(ctx context.Context, technicianID uint64) ([]entities.Traitement, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE technician_id = $1 ORDER BY created_at DESC
	`, traitementFields, traitementTable)

	rows, err := r.storage.Query(ctx, query, technicianID)
	if err != nil {
		return nil, apperrors.NewStoreError("traitements.list", err)
	}
	defer rows.Close()

	var list []entities.Traitement
	for rows.Next() {
		t, err := scanTraitement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("traitements.rows", err)
	}
	return list, nil
}

// FindLatestByIntervention returns the current traitement: the most recently
// created one for the intervention.
func (r *TraitementRepository) FindLatestByIntervention(ctx context.Context, interventionID uint64) (*entities.Traitement, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE intervention_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1
	`, traitementFields, traitementTable)
	return scanTraitement(r.storage.QueryRow(ctx, query, interventionID))
}

func (r *TraitementRepository) CountByTechnician(ctx context.Context, technicianID uint64) (int, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE technician_id = $1", traitementTable)
	if err := r.storage.QueryRow(ctx, query, technicianID).Scan(&count); err != nil {
		return 0, apperrors.NewStoreError("traitements.count", err)
	}
	return count, nil
}

func (r *TraitementRepository) CountDistinctInterventionsByTechnician(ctx context.Context, technicianID uint64) (int, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(DISTINCT intervention_id) FROM %s WHERE technician_id = $1", traitementTable)
	if err := r.storage.QueryRow(ctx, query, technicianID).Scan(&count); err != nil {
		return 0, apperrors.NewStoreError("traitements.count_distinct", err)
	}
	return count, nil
}
