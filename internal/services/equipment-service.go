package services

import (
	"context"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/types"
)

const defaultEquipmentPageSize = 100

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, *types.Pagination, error)
	GetEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
}

func NewEquipmentService(equipmentRepo repositories.EquipmentRepositoryInterface) EquipmentServiceInterface {
	return &EquipmentService{equipmentRepo: equipmentRepo}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, *types.Pagination, error) {
	if filter.Limit <= 0 || filter.Limit > defaultEquipmentPageSize {
		filter.Limit = defaultEquipmentPageSize
	}
	if filter.Page > 0 {
		filter.Offset = (filter.Page - 1) * filter.Limit
	}

	list, total, err := s.equipmentRepo.GetEquipments(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	pagination := &types.Pagination{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + uint64(filter.Limit) - 1) / uint64(filter.Limit)),
	}
	if pagination.Page == 0 {
		pagination.Page = 1
	}
	return list, pagination, nil
}

func (s *EquipmentService) GetEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return s.equipmentRepo.FindEquipment(ctx, id)
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	inService := payload.InService
	if inService == "" {
		inService = "active"
	}

	id, err := s.equipmentRepo.CreateEquipment(ctx, payload.Name, payload.Type, inService)
	if err != nil {
		return nil, err
	}
	return s.equipmentRepo.FindEquipment(ctx, id)
}
