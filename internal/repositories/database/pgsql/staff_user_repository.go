package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/postal_ledger/internal/apperrors"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/postal_ledger/internal/models"
	"github.com/SscSPs/postal_ledger/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxStaffUserRepository stores staff accounts in Postgres.
type PgxStaffUserRepository struct {
	BaseRepository
}

func newPgxStaffUserRepository(pool *pgxpool.Pool) *PgxStaffUserRepository {
	return &PgxStaffUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.StaffUserRepository = (*PgxStaffUserRepository)(nil)

// SaveStaffUser inserts a staff user.
func (r *PgxStaffUserRepository) SaveStaffUser(ctx context.Context, user domain.StaffUser) error {
	m := mapping.ToModelStaffUser(user)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO staff_users (user_id, username, password_hash, name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		m.UserID, m.Username, m.PasswordHash, m.Name, m.Role, m.CreatedAt)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return apperrors.NewConflictError(fmt.Sprintf("username %s is already taken", m.Username))
		}
		return apperrors.NewPersistenceError("failed to save staff user", err)
	}
	return nil
}

func (r *PgxStaffUserRepository) findOne(ctx context.Context, where string, arg any) (*domain.StaffUser, error) {
	var m models.StaffUser
	err := r.Pool.QueryRow(ctx, `
		SELECT user_id::text, username, password_hash, name, role, created_at
		FROM staff_users
		WHERE `+where+`;`, arg).Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.Name,
		&m.Role,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistenceError("failed to find staff user", err)
	}
	user := mapping.ToDomainStaffUser(m)
	return &user, nil
}

// FindStaffUserByID retrieves a staff user by identifier.
func (r *PgxStaffUserRepository) FindStaffUserByID(ctx context.Context, userID string) (*domain.StaffUser, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperrors.ErrNotFound
	}
	return r.findOne(ctx, "user_id = $1", userID)
}

// FindStaffUserByUsername retrieves a staff user by login name.
func (r *PgxStaffUserRepository) FindStaffUserByUsername(ctx context.Context, username string) (*domain.StaffUser, error) {
	return r.findOne(ctx, "username = $1", username)
}
