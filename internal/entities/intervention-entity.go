package entities

import (
	"maintenance-system/internal/lifecycle"
	"maintenance-system/pkg/types"
)

type Intervention struct {
	ID          uint64                `json:"id" db:"id"`
	EquipmentID uint64                `json:"equipment_id" db:"equipment_id"`
	StopType    lifecycle.StopType    `json:"stop_type" db:"stop_type"`
	ProblemType lifecycle.ProblemType `json:"problem_type" db:"problem_type"`
	Priority    lifecycle.Priority    `json:"priority" db:"priority"`
	Description string                `json:"description" db:"description"`
	PhotoPath   *string               `json:"photo_path,omitempty" db:"photo_path"`
	Status      lifecycle.Status      `json:"status" db:"status"`

	// Requester identity, captured at creation for public submissions.
	RequesterName  *string `json:"requester_name,omitempty" db:"requester_name"`
	RequesterEmail *string `json:"requester_email,omitempty" db:"requester_email"`
	RequesterPhone *string `json:"requester_phone,omitempty" db:"requester_phone"`

	// Set by the first treatment, never cleared afterwards.
	AssignedTechnicianID *uint64 `json:"assigned_technician_id,omitempty" db:"assigned_technician_id"`
	TechnicianNotes      *string `json:"technician_notes,omitempty" db:"technician_notes"`

	types.BaseEntity

	// Joined data, not columns of the interventions table.
	Equipment *Equipment `json:"equipment,omitempty" db:"-"`
}
