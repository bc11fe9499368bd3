package dto

import (
	"maintenance-system/internal/entities"
	"maintenance-system/pkg/types"
)

type CreateEquipmentDTO struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Type      string `json:"type" validate:"required,min=1,max=100"`
	InService string `json:"in_service" validate:"omitempty,oneof=active maintenance stopped"`
}

type EquipmentListDTO struct {
	Pagination *types.Pagination    `json:"pagination"`
	Equipments []entities.Equipment `json:"equipments"`
}

// EquipmentStatusDTO is one row of the fleet status board: the equipment and
// the status of its latest intervention, or "operational" when it has none.
type EquipmentStatusDTO struct {
	EquipmentID          uint64  `json:"equipment_id"`
	Name                 string  `json:"name"`
	Type                 string  `json:"type"`
	InService            string  `json:"in_service"`
	CurrentStatus        string  `json:"current_status"`
	LastInterventionDate *string `json:"last_intervention_date,omitempty"`
}

type EquipmentsStatusSummaryDTO struct {
	TotalEquipments int            `json:"total_equipments"`
	StatusSummary   map[string]int `json:"status_summary"`
}
