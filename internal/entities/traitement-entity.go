package entities

import (
	"maintenance-system/internal/lifecycle"
	"maintenance-system/pkg/types"
)

// Traitement is a single treatment a technician recorded against an
// intervention. The intervention's current status always mirrors the
// final status of its most recent traitement.
type Traitement struct {
	ID             uint64 `json:"id" db:"id"`
	InterventionID uint64 `json:"intervention_id" db:"intervention_id"`
	TechnicianID   uint64 `json:"technician_id" db:"technician_id"`

	RepairDuration       *float64 `json:"repair_duration,omitempty" db:"repair_duration"`
	MachineDowntimeHours *float64 `json:"machine_downtime_hours,omitempty" db:"machine_downtime_hours"`
	RepairDescription    *string  `json:"repair_description,omitempty" db:"repair_description"`
	PartsChanged         *string  `json:"parts_changed,omitempty" db:"parts_changed"`
	FixType              *string  `json:"fix_type,omitempty" db:"fix_type"`
	SpecialistTransfer   bool     `json:"specialist_transfer" db:"specialist_transfer"`

	FinalStatus lifecycle.Status `json:"final_status" db:"final_status"`

	types.BaseEntity
}
