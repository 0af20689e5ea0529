package pgsql

import (
	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres repositories onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PostingRepo:   newPgxPostingRepository(dbPool),
		ClosingRepo:   newPgxClosingRepository(dbPool),
		StaffUserRepo: newPgxStaffUserRepository(dbPool),
	}
}
