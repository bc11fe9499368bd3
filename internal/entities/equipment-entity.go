package entities

import "maintenance-system/pkg/types"

type Equipment struct {
	ID        uint64 `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Type      string `json:"type" db:"type"`
	InService string `json:"in_service" db:"in_service"` // active | maintenance | stopped

	types.BaseEntity
}
