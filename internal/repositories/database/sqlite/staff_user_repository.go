package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/postal_ledger/internal/apperrors"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/postal_ledger/internal/models"
	"github.com/SscSPs/postal_ledger/internal/utils/mapping"
	"gorm.io/gorm"
)

// StaffUserRepository stores staff accounts in the embedded database.
type StaffUserRepository struct {
	store *Store
}

var _ portsrepo.StaffUserRepository = (*StaffUserRepository)(nil)

// SaveStaffUser inserts a staff user.
func (r *StaffUserRepository) SaveStaffUser(ctx context.Context, user domain.StaffUser) error {
	m := mapping.ToModelStaffUser(user)
	err := r.store.write(ctx, func(tx *gorm.DB) error {
		return tx.Create(&m).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewConflictError(fmt.Sprintf("username %q is taken", user.Username))
		}
		return persistenceError("failed to save staff user", err)
	}
	return nil
}

func (r *StaffUserRepository) findOne(ctx context.Context, query string, arg any) (*domain.StaffUser, error) {
	var m models.StaffUser
	if err := r.store.read(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, persistenceError("failed to find staff user", err)
	}
	user := mapping.ToDomainStaffUser(m)
	return &user, nil
}

// FindStaffUserByID retrieves a staff user by identifier.
func (r *StaffUserRepository) FindStaffUserByID(ctx context.Context, userID string) (*domain.StaffUser, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

// FindStaffUserByUsername retrieves a staff user by login name.
func (r *StaffUserRepository) FindStaffUserByUsername(ctx context.Context, username string) (*domain.StaffUser, error) {
	return r.findOne(ctx, "username = ?", username)
}
