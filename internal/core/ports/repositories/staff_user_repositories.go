package repositories

import (
	"context"

	"github.com/SscSPs/postal_ledger/internal/core/domain"
)

// StaffUserRepository defines data access for staff accounts
type StaffUserRepository interface {
	// SaveStaffUser inserts a staff user. A taken username returns apperrors.ErrDuplicate.
	SaveStaffUser(ctx context.Context, user domain.StaffUser) error

	// FindStaffUserByID retrieves a staff user by identifier.
	FindStaffUserByID(ctx context.Context, userID string) (*domain.StaffUser, error)

	// FindStaffUserByUsername retrieves a staff user by login name.
	FindStaffUserByUsername(ctx context.Context, username string) (*domain.StaffUser, error)
}
