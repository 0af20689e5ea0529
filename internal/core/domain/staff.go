package domain

import "time"

// StaffRole defines what a staff member may do.
type StaffRole string

const (
	RoleFrontDesk  StaffRole = "FRONT_DESK"  // Enters postings and payments
	RoleBackOffice StaffRole = "BACK_OFFICE" // Closes days and pulls monthly reports
	RoleAdmin      StaffRole = "ADMIN"
)

// IsValid reports whether r is a known role.
func (r StaffRole) IsValid() bool {
	switch r {
	case RoleFrontDesk, RoleBackOffice, RoleAdmin:
		return true
	}
	return false
}

// Satisfies reports whether a member holding r may perform an action requiring required.
func (r StaffRole) Satisfies(required StaffRole) bool {
	switch required {
	case RoleFrontDesk:
		return r == RoleFrontDesk || r == RoleBackOffice || r == RoleAdmin
	case RoleBackOffice:
		return r == RoleBackOffice || r == RoleAdmin
	case RoleAdmin:
		return r == RoleAdmin
	default:
		return false
	}
}

// StaffUser is a person allowed to operate the ledger.
type StaffUser struct {
	UserID       string    `json:"userID"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         StaffRole `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
