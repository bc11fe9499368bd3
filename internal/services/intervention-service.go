package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/lifecycle"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
)

// Public recent-interventions feed bounds.
const (
	defaultRecentFeedLimit = 10
	maxRecentFeedLimit     = 50
)

type InterventionServiceInterface interface {
	SubmitIntervention(ctx context.Context, payload dto.SubmitInterventionDTO) (*dto.SubmitInterventionResultDTO, error)
	AmendPendingIntervention(ctx context.Context, id uint64, payload dto.AmendInterventionDTO) (*entities.Intervention, error)
	GetIntervention(ctx context.Context, id uint64) (*dto.InterventionDetailDTO, error)
	TrackIntervention(ctx context.Context, id uint64) (*dto.InterventionTrackingDTO, error)
	GetRecentInterventions(ctx context.Context, limit uint64) ([]dto.InterventionTrackingDTO, error)
	GetAvailableInterventions(ctx context.Context) ([]entities.Intervention, error)
	GetMyInterventions(ctx context.Context, technicianID uint64) ([]entities.Intervention, error)
	EquipmentProblemFeed(ctx context.Context) (*dto.EquipmentProblemFeedDTO, error)
	EquipmentsStatus(ctx context.Context) ([]dto.EquipmentStatusDTO, error)
	EquipmentsStatusSummary(ctx context.Context) (*dto.EquipmentsStatusSummaryDTO, error)
	StatusSummary(ctx context.Context) (*dto.StatusSummaryDTO, error)
}

type InterventionService struct {
	interventionRepo repositories.InterventionRepositoryInterface
	equipmentRepo    repositories.EquipmentRepositoryInterface
	traitementRepo   repositories.TraitementRepositoryInterface
	logger           *zap.Logger
}

func NewInterventionService(
	interventionRepo repositories.InterventionRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	traitementRepo repositories.TraitementRepositoryInterface,
	logger *zap.Logger,
) InterventionServiceInterface {
	return &InterventionService{
		interventionRepo: interventionRepo,
		equipmentRepo:    equipmentRepo,
		traitementRepo:   traitementRepo,
		logger:           logger,
	}
}

// SubmitIntervention registers a failure report from an unauthenticated
// requester. The intervention always starts out pending.
func (s *InterventionService) SubmitIntervention(ctx context.Context, payload dto.SubmitInterventionDTO) (*dto.SubmitInterventionResultDTO, error) {
	stopType, err := lifecycle.ParseStopType(payload.StopType)
	if err != nil {
		return nil, err
	}
	problemType, err := lifecycle.ParseProblemType(payload.ProblemType)
	if err != nil {
		return nil, err
	}
	priority, err := lifecycle.ParsePriority(payload.Priority)
	if err != nil {
		return nil, err
	}

	if _, err := s.equipmentRepo.FindEquipment(ctx, payload.EquipmentID); err != nil {
		return nil, err
	}

	id, err := s.interventionRepo.CreateIntervention(ctx, entities.Intervention{
		EquipmentID:    payload.EquipmentID,
		StopType:       stopType,
		ProblemType:    problemType,
		Priority:       priority,
		Description:    payload.Description,
		PhotoPath:      payload.PhotoPath,
		Status:         lifecycle.StatusPending,
		RequesterName:  payload.RequesterName,
		RequesterEmail: payload.RequesterEmail,
		RequesterPhone: payload.RequesterPhone,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("intervention submitted",
		zap.Uint64("intervention_id", id),
		zap.Uint64("equipment_id", payload.EquipmentID),
		zap.String("priority", payload.Priority),
	)

	return &dto.SubmitInterventionResultDTO{
		InterventionID: id,
		Status:         string(lifecycle.StatusPending),
		Reference:      lifecycle.Reference(id),
	}, nil
}

func amendConflictError(id uint64, status lifecycle.Status) error {
	return apperrors.NewHttpError(409, "intervention is already being treated", apperrors.ErrConflict,
		map[string]interface{}{"intervention_id": id, "status": string(status)})
}

// AmendPendingIntervention lets the requester correct a report that no
// technician has picked up yet. Once the intervention has left pending the
// amendment is rejected with a conflict. The repository re-checks the status
// inside the UPDATE itself, so a treatment racing past the read here still
// cannot be overwritten.
func (s *InterventionService) AmendPendingIntervention(ctx context.Context, id uint64, payload dto.AmendInterventionDTO) (*entities.Intervention, error) {
	intervention, err := s.interventionRepo.FindIntervention(ctx, id)
	if err != nil {
		return nil, err
	}

	if intervention.Status != lifecycle.StatusPending {
		return nil, amendConflictError(id, intervention.Status)
	}

	if payload.Priority != nil {
		if _, err := lifecycle.ParsePriority(*payload.Priority); err != nil {
			return nil, err
		}
	}
	if payload.ProblemType != nil {
		if _, err := lifecycle.ParseProblemType(*payload.ProblemType); err != nil {
			return nil, err
		}
	}

	if err := s.interventionRepo.AmendIntervention(ctx, id, payload); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// The guarded UPDATE matched nothing: either the record is gone
			// or a treatment moved it off pending after our read.
			if current, findErr := s.interventionRepo.FindIntervention(ctx, id); findErr == nil && current.Status != lifecycle.StatusPending {
				return nil, amendConflictError(id, current.Status)
			}
		}
		return nil, err
	}
	return s.interventionRepo.FindIntervention(ctx, id)
}

// GetIntervention is the technician detail view: the record with its
// equipment and the latest traitement, when one exists.
func (s *InterventionService) GetIntervention(ctx context.Context, id uint64) (*dto.InterventionDetailDTO, error) {
	intervention, err := s.interventionRepo.FindIntervention(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.InterventionDetailDTO{Intervention: *intervention}

	latest, err := s.traitementRepo.FindLatestByIntervention(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	} else {
		detail.LatestTraitement = latest
	}
	return detail, nil
}

func trackingView(in *entities.Intervention) dto.InterventionTrackingDTO {
	view := dto.InterventionTrackingDTO{
		InterventionID:     in.ID,
		Reference:          lifecycle.Reference(in.ID),
		Status:             string(in.Status),
		StatusMessage:      lifecycle.StatusMessage(in.Status),
		TechnicianAssigned: in.AssignedTechnicianID != nil,
	}
	if in.CreatedAt != nil {
		view.CreatedAt = in.CreatedAt.Format("2006-01-02 15:04")
	}
	if in.Equipment != nil {
		view.EquipmentName = &in.Equipment.Name
	}
	// Notes stay private until the work is done.
	if in.Status == lifecycle.StatusCompleted {
		view.TechnicianNotes = in.TechnicianNotes
	}
	return view
}

// TrackIntervention is the public status view: no requester contact details,
// no internal ids beyond the reference.
func (s *InterventionService) TrackIntervention(ctx context.Context, id uint64) (*dto.InterventionTrackingDTO, error) {
	intervention, err := s.interventionRepo.FindIntervention(ctx, id)
	if err != nil {
		return nil, err
	}
	view := trackingView(intervention)
	return &view, nil
}

func (s *InterventionService) GetRecentInterventions(ctx context.Context, limit uint64) ([]dto.InterventionTrackingDTO, error) {
	if limit == 0 {
		limit = defaultRecentFeedLimit
	}
	if limit > maxRecentFeedLimit {
		limit = maxRecentFeedLimit
	}

	interventions, err := s.interventionRepo.GetInterventions(ctx, limit)
	if err != nil {
		return nil, err
	}

	views := make([]dto.InterventionTrackingDTO, 0, len(interventions))
	for i := range interventions {
		views = append(views, trackingView(&interventions[i]))
	}
	return views, nil
}

func (s *InterventionService) GetAvailableInterventions(ctx context.Context) ([]entities.Intervention, error) {
	return s.interventionRepo.GetInterventions(ctx, 0)
}

func (s *InterventionService) GetMyInterventions(ctx context.Context, technicianID uint64) ([]entities.Intervention, error) {
	return s.interventionRepo.GetInterventionsTreatedBy(ctx, technicianID)
}

// EquipmentProblemFeed reduces the intervention history to one entry per
// equipment. The scan is ordered newest first, so the first row seen for an
// equipment carries its most recent status.
func (s *InterventionService) EquipmentProblemFeed(ctx context.Context) (*dto.EquipmentProblemFeedDTO, error) {
	rows, err := s.interventionRepo.GetEquipmentProblemRows(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]bool, len(rows))
	equipments := make([]dto.EquipmentProblemDTO, 0, len(rows))
	var statuses []string

	for _, row := range rows {
		if seen[row.EquipmentID] {
			continue
		}
		seen[row.EquipmentID] = true

		date := row.CreatedAt.Format("2006-01-02 15:04")
		equipments = append(equipments, dto.EquipmentProblemDTO{
			EquipmentID:          row.EquipmentID,
			EquipmentName:        row.EquipmentName,
			CurrentStatus:        row.Status,
			LastInterventionDate: &date,
		})
		statuses = append(statuses, row.Status)
	}

	return &dto.EquipmentProblemFeedDTO{
		TotalEquipmentsWithProblems: len(equipments),
		StatusSummary:               lifecycle.Summarize(statuses),
		Equipments:                  equipments,
	}, nil
}

// EquipmentsStatus is the fleet board: every equipment, including ones
// nobody ever reported, with the status of its latest intervention or
// "operational" when it has none.
func (s *InterventionService) EquipmentsStatus(ctx context.Context) ([]dto.EquipmentStatusDTO, error) {
	rows, err := s.equipmentRepo.GetEquipmentStatuses(ctx)
	if err != nil {
		return nil, err
	}

	board := make([]dto.EquipmentStatusDTO, 0, len(rows))
	for _, row := range rows {
		entry := dto.EquipmentStatusDTO{
			EquipmentID:   row.EquipmentID,
			Name:          row.Name,
			Type:          row.Type,
			InService:     row.InService,
			CurrentStatus: lifecycle.EquipmentOperational,
		}
		if row.Status != nil {
			entry.CurrentStatus = *row.Status
			if row.LastInterventionAt != nil {
				date := row.LastInterventionAt.Format("2006-01-02 15:04")
				entry.LastInterventionDate = &date
			}
		}
		board = append(board, entry)
	}
	return board, nil
}

func (s *InterventionService) EquipmentsStatusSummary(ctx context.Context) (*dto.EquipmentsStatusSummaryDTO, error) {
	rows, err := s.equipmentRepo.GetEquipmentStatuses(ctx)
	if err != nil {
		return nil, err
	}

	operational := 0
	var statuses []string
	for _, row := range rows {
		if row.Status == nil {
			operational++
			continue
		}
		statuses = append(statuses, *row.Status)
	}

	counts := lifecycle.Summarize(statuses)
	counts[lifecycle.EquipmentOperational] = operational

	return &dto.EquipmentsStatusSummaryDTO{
		TotalEquipments: len(rows),
		StatusSummary:   counts,
	}, nil
}

func (s *InterventionService) StatusSummary(ctx context.Context) (*dto.StatusSummaryDTO, error) {
	statuses, err := s.interventionRepo.GetStatuses(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.StatusSummaryDTO{
		TotalInterventions: len(statuses),
		StatusSummary:      lifecycle.Summarize(statuses),
	}, nil
}
