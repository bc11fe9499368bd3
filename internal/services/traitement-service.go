package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/lifecycle"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
)

type TraitementServiceInterface interface {
	RecordTraitement(ctx context.Context, technicianID uint64, payload dto.CreateTraitementDTO) (*dto.CreateTraitementResultDTO, error)
	UpdateTraitement(ctx context.Context, technicianID uint64, traitementID uint64, payload dto.UpdateTraitementDTO) (*entities.Traitement, error)
	GetMyTraitements(ctx context.Context, technicianID uint64) ([]entities.Traitement, error)
}

type TraitementService struct {
	traitementRepo   repositories.TraitementRepositoryInterface
	interventionRepo repositories.InterventionRepositoryInterface
	userRepo         repositories.UserRepositoryInterface
	txManager        repositories.TxManagerInterface
	logger           *zap.Logger
}

func NewTraitementService(
	traitementRepo repositories.TraitementRepositoryInterface,
	interventionRepo repositories.InterventionRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) TraitementServiceInterface {
	return &TraitementService{
		traitementRepo:   traitementRepo,
		interventionRepo: interventionRepo,
		userRepo:         userRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// RecordTraitement inserts the treatment and moves the intervention in one
// transaction. The intervention's status always equals the final status of
// the latest treatment, so the two writes commit or roll back together.
// The first technician to record a treatment becomes the assigned one.
func (s *TraitementService) RecordTraitement(ctx context.Context, technicianID uint64, payload dto.CreateTraitementDTO) (*dto.CreateTraitementResultDTO, error) {
	finalStatus, err := lifecycle.ParseStatus(payload.FinalStatus)
	if err != nil {
		return nil, err
	}

	technician, err := s.userRepo.FindUserByID(ctx, technicianID)
	if err != nil {
		return nil, err
	}
	if !technician.CanTreat() {
		return nil, apperrors.ErrForbidden
	}

	intervention, err := s.interventionRepo.FindIntervention(ctx, payload.InterventionID)
	if err != nil {
		return nil, err
	}

	// Out-of-machine moves (reopening a terminal intervention and the like)
	// are accepted but flagged for the audit trail.
	if !lifecycle.CanTransition(intervention.Status, finalStatus) {
		s.logger.Warn("treatment departs from the nominal status flow",
			zap.Uint64("intervention_id", intervention.ID),
			zap.String("from", string(intervention.Status)),
			zap.String("to", string(finalStatus)),
		)
	}

	var traitementID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.traitementRepo.CreateTraitement(ctx, tx, technicianID, payload)
		if err != nil {
			return err
		}
		traitementID = id

		if err := s.interventionRepo.AssignTechnicianIfUnset(ctx, tx, payload.InterventionID, technicianID); err != nil {
			return err
		}
		return s.interventionRepo.UpdateStatus(ctx, tx, payload.InterventionID, finalStatus)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("traitement recorded",
		zap.Uint64("traitement_id", traitementID),
		zap.Uint64("intervention_id", payload.InterventionID),
		zap.Uint64("technician_id", technicianID),
		zap.String("final_status", payload.FinalStatus),
	)

	return &dto.CreateTraitementResultDTO{
		TraitementID:   traitementID,
		InterventionID: payload.InterventionID,
		Status:         string(finalStatus),
	}, nil
}

// UpdateTraitement edits a treatment the technician owns. When the edit
// changes final_status and the edited treatment is still the latest one for
// its intervention, the intervention follows, in the same transaction.
func (s *TraitementService) UpdateTraitement(ctx context.Context, technicianID uint64, traitementID uint64, payload dto.UpdateTraitementDTO) (*entities.Traitement, error) {
	if payload.FinalStatus != nil {
		if _, err := lifecycle.ParseStatus(*payload.FinalStatus); err != nil {
			return nil, err
		}
	}

	traitement, err := s.traitementRepo.FindTraitementOwnedBy(ctx, traitementID, technicianID)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.traitementRepo.UpdateTraitement(ctx, tx, traitementID, payload); err != nil {
			return err
		}

		if payload.FinalStatus == nil {
			return nil
		}

		latest, err := s.traitementRepo.FindLatestByIntervention(ctx, traitement.InterventionID)
		if err != nil {
			return err
		}
		if latest.ID != traitementID {
			// A newer treatment owns the intervention's status now.
			return nil
		}
		return s.interventionRepo.UpdateStatus(ctx, tx, traitement.InterventionID, lifecycle.Status(*payload.FinalStatus))
	})
	if err != nil {
		return nil, err
	}

	return s.traitementRepo.FindTraitement(ctx, traitementID)
}

func (s *TraitementService) GetMyTraitements(ctx context.Context, technicianID uint64) ([]entities.Traitement, error) {
	return s.traitementRepo.GetTraitementsByTechnician(ctx, technicianID)
}
