package entities

import "maintenance-system/pkg/types"

const (
	RoleTechnician = "technician"
	RoleAdmin      = "admin"
)

type User struct {
	ID       uint64  `json:"id" db:"id"`
	Username string  `json:"username" db:"username"`
	Email    string  `json:"email" db:"email"`
	Phone    *string `json:"phone,omitempty" db:"phone"`
	Role     string  `json:"role" db:"role"`

	Password string `json:"-" db:"password"`

	types.BaseEntity
}

// CanTreat reports whether the user may record treatments.
func (u *User) CanTreat() bool {
	return u.Role == RoleTechnician || u.Role == RoleAdmin
}
