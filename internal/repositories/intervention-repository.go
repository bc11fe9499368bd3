package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/lifecycle"
	apperrors "maintenance-system/pkg/errors"
)

const interventionTable = "interventions"

const interventionFields = `i.id, i.equipment_id, i.stop_type, i.problem_type, i.priority, i.description,
	i.photo_path, i.status, i.requester_name, i.requester_email, i.requester_phone,
	i.assigned_technician_id, i.technician_notes, i.created_at, i.updated_at`

const interventionEquipmentFields = "e.id, e.name, e.type, e.in_service"

// EquipmentProblemRow is one row of the ordered feed scan: an intervention's
// status together with its equipment identity.
type EquipmentProblemRow struct {
	EquipmentID   uint64
	EquipmentName string
	Status        string
	CreatedAt     time.Time
}

type InterventionRepositoryInterface interface {
	CreateIntervention(ctx context.Context, in entities.Intervention) (uint64, error)
	FindIntervention(ctx context.Context, id uint64) (*entities.Intervention, error)
	AmendIntervention(ctx context.Context, id uint64, payload dto.AmendInterventionDTO) error
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, status lifecycle.Status) error
	AssignTechnicianIfUnset(ctx context.Context, tx pgx.Tx, id uint64, technicianID uint64) error
	GetInterventions(ctx context.Context, limit uint64) ([]entities.Intervention, error)
	GetInterventionsTreatedBy(ctx context.Context, technicianID uint64) ([]entities.Intervention, error)
	GetStatuses(ctx context.Context) ([]string, error)
	GetEquipmentProblemRows(ctx context.Context) ([]EquipmentProblemRow, error)
}

type InterventionRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewInterventionRepository(storage *pgxpool.Pool, logger *zap.Logger) InterventionRepositoryInterface {
	return &InterventionRepository{storage: storage, logger: logger}
}

func (r *InterventionRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanInterventionWithEquipment(row pgx.Row) (*entities.Intervention, error) {
	var in entities.Intervention
	var eqID *uint64
	var eqName, eqType, eqInService *string

	err := row.Scan(
		&in.ID, &in.EquipmentID, &in.StopType, &in.ProblemType, &in.Priority, &in.Description,
		&in.PhotoPath, &in.Status, &in.RequesterName, &in.RequesterEmail, &in.RequesterPhone,
		&in.AssignedTechnicianID, &in.TechnicianNotes, &in.CreatedAt, &in.UpdatedAt,
		&eqID, &eqName, &eqType, &eqInService,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStoreError("interventions.scan", err)
	}

	if eqID != nil {
		in.Equipment = &entities.Equipment{
			ID:        *eqID,
			Name:      *eqName,
			Type:      *eqType,
			InService: *eqInService,
		}
	}
	return &in, nil
}

func (r *InterventionRepository) CreateIntervention(ctx context.Context, in entities.Intervention) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (equipment_id, stop_type, problem_type, priority, description, photo_path,
			status, requester_name, requester_email, requester_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, interventionTable)

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		in.EquipmentID, in.StopType, in.ProblemType, in.Priority, in.Description, in.PhotoPath,
		in.Status, in.RequesterName, in.RequesterEmail, in.RequesterPhone,
	).Scan(&id)
	if err != nil {
		r.logger.Error("failed to insert intervention", zap.Uint64("equipment_id", in.EquipmentID), zap.Error(err))
		return 0, apperrors.NewStoreError("interventions.create", err)
	}
	return id, nil
}

func (r *InterventionRepository) FindIntervention(ctx context.Context, id uint64) (*entities.Intervention, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s i
			LEFT JOIN %s e ON i.equipment_id = e.id
		WHERE i.id = $1
	`, interventionFields, interventionEquipmentFields, interventionTable, equipmentTable)

	return scanInterventionWithEquipment(r.storage.QueryRow(ctx, query, id))
}

// AmendIntervention updates the requester-editable fields only. Status,
// equipment, stop type and timestamps are never touched here. The pending
// predicate makes the write a no-op if a treatment slipped in after the
// caller's status check; zero rows then reads as ErrNotFound and the caller
// decides between missing and conflict.
func (r *InterventionRepository) AmendIntervention(ctx context.Context, id uint64, payload dto.AmendInterventionDTO) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Update(interventionTable).Set("updated_at", sq.Expr("CURRENT_TIMESTAMP"))

	changed := false
	if payload.Description != nil {
		builder = builder.Set("description", *payload.Description)
		changed = true
	}
	if payload.Priority != nil {
		builder = builder.Set("priority", *payload.Priority)
		changed = true
	}
	if payload.ProblemType != nil {
		builder = builder.Set("problem_type", *payload.ProblemType)
		changed = true
	}
	if payload.PhotoPath != nil {
		builder = builder.Set("photo_path", *payload.PhotoPath)
		changed = true
	}
	if payload.RequesterName != nil {
		builder = builder.Set("requester_name", *payload.RequesterName)
		changed = true
	}
	if payload.RequesterEmail != nil {
		builder = builder.Set("requester_email", *payload.RequesterEmail)
		changed = true
	}
	if payload.RequesterPhone != nil {
		builder = builder.Set("requester_phone", *payload.RequesterPhone)
		changed = true
	}
	if !changed {
		return nil
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id, "status": string(lifecycle.StatusPending)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building amend query: %w", err)
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return apperrors.NewStoreError("interventions.amend", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *InterventionRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, status lifecycle.Status) error {
	query := fmt.Sprintf(`
		UPDATE %s SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2
	`, interventionTable)

	result, err := r.getQuerier(tx).Exec(ctx, query, status, id)
	if err != nil {
		return apperrors.NewStoreError("interventions.update_status", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AssignTechnicianIfUnset records the first technician to treat the
// intervention. Later treatments by other technicians leave it unchanged.
func (r *InterventionRepository) AssignTechnicianIfUnset(ctx context.Context, tx pgx.Tx, id uint64, technicianID uint64) error {
	query := fmt.Sprintf(`
		UPDATE %s SET assigned_technician_id = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND assigned_technician_id IS NULL
	`, interventionTable)

	// Zero rows affected is fine: the intervention already has a technician.
	if _, err := r.getQuerier(tx).Exec(ctx, query, technicianID, id); err != nil {
		return apperrors.NewStoreError("interventions.assign_technician", err)
	}
	return nil
}

func (r *InterventionRepository) queryInterventions(ctx context.Context, query string, args ...interface{}) ([]entities.Intervention, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("interventions.list", err)
	}
	defer rows.Close()

	var list []entities.Intervention
	for rows.Next() {
		in, err := scanInterventionWithEquipment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *in)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("interventions.rows", err)
	}
	return list, nil
}

func (r *InterventionRepository) GetInterventions(ctx context.Context, limit uint64) ([]entities.Intervention, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s i
			LEFT JOIN %s e ON i.equipment_id = e.id
		ORDER BY i.created_at DESC
	`, interventionFields, interventionEquipmentFields, interventionTable, equipmentTable)

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return r.queryInterventions(ctx, query)
}

// GetInterventionsTreatedBy returns the distinct interventions the given
// technician has recorded at least one traitement for, newest first.
func (r *InterventionRepository) GetInterventionsTreatedBy(ctx context.Context, technicianID uint64) ([]entities.Intervention, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s i
			LEFT JOIN %s e ON i.equipment_id = e.id
		WHERE i.id IN (SELECT DISTINCT intervention_id FROM %s WHERE technician_id = $1)
		ORDER BY i.created_at DESC
	`, interventionFields, interventionEquipmentFields, interventionTable, equipmentTable, traitementTable)

	return r.queryInterventions(ctx, query, technicianID)
}

func (r *InterventionRepository) GetStatuses(ctx context.Context) ([]string, error) {
	rows, err := r.storage.Query(ctx, fmt.Sprintf("SELECT status FROM %s", interventionTable))
	if err != nil {
		return nil, apperrors.NewStoreError("interventions.statuses", err)
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, apperrors.NewStoreError("interventions.statuses_scan", err)
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("interventions.statuses_rows", err)
	}
	return statuses, nil
}

// GetEquipmentProblemRows returns one row per intervention joined with its
// equipment, ordered by intervention creation time descending. Ties on
// created_at fall back to storage order; the feed dedup takes the first
// row seen per equipment.
func (r *InterventionRepository) GetEquipmentProblemRows(ctx context.Context) ([]EquipmentProblemRow, error) {
	query := fmt.Sprintf(`
		SELECT e.id, e.name, i.status, i.created_at
		FROM %s i
			JOIN %s e ON i.equipment_id = e.id
		ORDER BY i.created_at DESC
	`, interventionTable, equipmentTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewStoreError("interventions.problem_feed", err)
	}
	defer rows.Close()

	var result []EquipmentProblemRow
	for rows.Next() {
		var row EquipmentProblemRow
		if err := rows.Scan(&row.EquipmentID, &row.EquipmentName, &row.Status, &row.CreatedAt); err != nil {
			return nil, apperrors.NewStoreError("interventions.problem_feed_scan", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("interventions.problem_feed_rows", err)
	}
	return result, nil
}
