package dto

type CreateTraitementDTO struct {
	InterventionID       uint64   `json:"intervention_id" validate:"required,gt=0"`
	RepairDuration       *float64 `json:"repair_duration,omitempty" validate:"omitempty,gte=0"`
	MachineDowntimeHours *float64 `json:"machine_downtime_hours,omitempty" validate:"omitempty,gte=0"`
	RepairDescription    *string  `json:"repair_description,omitempty"`
	PartsChanged         *string  `json:"parts_changed,omitempty"`
	FixType              *string  `json:"fix_type,omitempty" validate:"omitempty,max=100"`
	SpecialistTransfer   bool     `json:"specialist_transfer"`
	FinalStatus          string   `json:"final_status" validate:"required,status"`
}

type UpdateTraitementDTO struct {
	RepairDuration       *float64 `json:"repair_duration,omitempty" validate:"omitempty,gte=0"`
	MachineDowntimeHours *float64 `json:"machine_downtime_hours,omitempty" validate:"omitempty,gte=0"`
	RepairDescription    *string  `json:"repair_description,omitempty"`
	PartsChanged         *string  `json:"parts_changed,omitempty"`
	FixType              *string  `json:"fix_type,omitempty" validate:"omitempty,max=100"`
	SpecialistTransfer   *bool    `json:"specialist_transfer,omitempty"`
	FinalStatus          *string  `json:"final_status,omitempty" validate:"omitempty,status"`
}

type CreateTraitementResultDTO struct {
	TraitementID   uint64 `json:"traitement_id"`
	InterventionID uint64 `json:"intervention_id"`
	Status         string `json:"status"`
}
