package dto

import "maintenance-system/internal/entities"

type SubmitInterventionDTO struct {
	EquipmentID uint64  `json:"equipment_id" validate:"required,gt=0"`
	StopType    string  `json:"stop_type" validate:"required,stop_type"`
	ProblemType string  `json:"problem_type" validate:"required,problem_type"`
	Priority    string  `json:"priority" validate:"required,priority"`
	Description string  `json:"description" validate:"required,min=1,max=500"`
	PhotoPath   *string `json:"photo_path,omitempty"`

	RequesterName  *string `json:"requester_name,omitempty" validate:"omitempty,max=100"`
	RequesterEmail *string `json:"requester_email,omitempty" validate:"omitempty,email"`
	RequesterPhone *string `json:"requester_phone,omitempty" validate:"omitempty,phone"`
}

// AmendInterventionDTO carries the requester-editable field set. Anything
// else sent by the client is simply not part of this shape.
type AmendInterventionDTO struct {
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,priority"`
	ProblemType *string `json:"problem_type,omitempty" validate:"omitempty,problem_type"`
	PhotoPath   *string `json:"photo_path,omitempty"`

	RequesterName  *string `json:"requester_name,omitempty" validate:"omitempty,max=100"`
	RequesterEmail *string `json:"requester_email,omitempty" validate:"omitempty,email"`
	RequesterPhone *string `json:"requester_phone,omitempty" validate:"omitempty,phone"`
}

// InterventionDetailDTO is the technician's per-intervention view: the full
// record with its equipment plus the latest traitement, when one exists.
type InterventionDetailDTO struct {
	entities.Intervention
	LatestTraitement *entities.Traitement `json:"latest_traitement,omitempty"`
}

type SubmitInterventionResultDTO struct {
	InterventionID uint64 `json:"intervention_id"`
	Status         string `json:"status"`
	Reference      string `json:"reference"`
}

type InterventionTrackingDTO struct {
	InterventionID     uint64  `json:"intervention_id"`
	Reference          string  `json:"reference"`
	Status             string  `json:"status"`
	StatusMessage      string  `json:"status_message"`
	CreatedAt          string  `json:"created_at"`
	EquipmentName      *string `json:"equipment,omitempty"`
	TechnicianAssigned bool    `json:"technician_assigned"`
	TechnicianNotes    *string `json:"technician_notes,omitempty"`
}

type EquipmentProblemDTO struct {
	EquipmentID          uint64  `json:"equipment_id"`
	EquipmentName        string  `json:"equipment_name"`
	CurrentStatus        string  `json:"current_status"`
	LastInterventionDate *string `json:"last_intervention_date,omitempty"`
}

type EquipmentProblemFeedDTO struct {
	TotalEquipmentsWithProblems int                   `json:"total_equipments_with_problems"`
	StatusSummary               map[string]int        `json:"status_summary"`
	Equipments                  []EquipmentProblemDTO `json:"equipments"`
}

type StatusSummaryDTO struct {
	TotalInterventions int            `json:"total_interventions"`
	StatusSummary      map[string]int `json:"status_summary"`
}
