package repositories

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "maintenance-system/pkg/errors"
)

// ReportFilter narrows the intervention report export.
type ReportFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Statuses []string
}

// ReportItem is one exported row: intervention, equipment and latest
// traitement measurements flattened together.
type ReportItem struct {
	InterventionID uint64
	EquipmentName  *string
	StopType       string
	ProblemType    string
	Priority       string
	Status         string
	Description    string
	RequesterName  *string
	TechnicianID   *uint64
	RepairDuration *float64
	DowntimeHours  *float64
	CreatedAt      time.Time
}

type ReportRepositoryInterface interface {
	GetInterventionReport(ctx context.Context, filter ReportFilter) ([]ReportItem, error)
}

type ReportRepository struct {
	storage *pgxpool.Pool
}

func NewReportRepository(storage *pgxpool.Pool) ReportRepositoryInterface {
	return &ReportRepository{storage: storage}
}

func (r *ReportRepository) GetInterventionReport(ctx context.Context, filter ReportFilter) ([]ReportItem, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	// Latest traitement per intervention via a lateral join.
	builder := psql.Select(
		"i.id", "e.name", "i.stop_type", "i.problem_type", "i.priority", "i.status",
		"i.description", "i.requester_name", "i.assigned_technician_id",
		"t.repair_duration", "t.machine_downtime_hours", "i.created_at",
	).
		From(interventionTable + " i").
		LeftJoin(equipmentTable + " e ON i.equipment_id = e.id").
		JoinClause(`LEFT JOIN LATERAL (
			SELECT repair_duration, machine_downtime_hours
			FROM ` + traitementTable + `
			WHERE intervention_id = i.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		) t ON true`).
		OrderBy("i.created_at DESC")

	if filter.DateFrom != nil {
		builder = builder.Where(sq.GtOrEq{"i.created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(sq.LtOrEq{"i.created_at": *filter.DateTo})
	}
	if len(filter.Statuses) > 0 {
		builder = builder.Where(sq.Eq{"i.status": filter.Statuses})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("report.query", err)
	}
	defer rows.Close()

	var items []ReportItem
	for rows.Next() {
		var item ReportItem
		if err := rows.Scan(
			&item.InterventionID, &item.EquipmentName, &item.StopType, &item.ProblemType,
			&item.Priority, &item.Status, &item.Description, &item.RequesterName,
			&item.TechnicianID, &item.RepairDuration, &item.DowntimeHours, &item.CreatedAt,
		); err != nil {
			return nil, apperrors.NewStoreError("report.scan", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("report.rows", err)
	}
	return items, nil
}
