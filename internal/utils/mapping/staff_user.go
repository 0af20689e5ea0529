package mapping

import (
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	"github.com/SscSPs/postal_ledger/internal/models"
)

// ToModelStaffUser converts a domain staff user into its stored shape.
func ToModelStaffUser(u domain.StaffUser) models.StaffUser {
	return models.StaffUser{
		UserID:       u.UserID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

// ToDomainStaffUser converts a stored staff user into the domain type.
func ToDomainStaffUser(m models.StaffUser) domain.StaffUser {
	return domain.StaffUser{
		UserID:       m.UserID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Role:         domain.StaffRole(m.Role),
		CreatedAt:    m.CreatedAt,
	}
}
