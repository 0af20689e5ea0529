// Package sqlite implements the embedded storage backend on gorm and SQLite.
//
// SQLite allows one writer at a time, so every write path holds the store's
// write mutex for the whole transaction. Reads go straight to the database.
package sqlite

import (
	"context"
	"sync"

	"github.com/SscSPs/postal_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	"gorm.io/gorm"
)

// Store is the shared state of the embedded repositories.
type Store struct {
	db      *gorm.DB
	writeMu sync.Mutex
}

// NewStore wraps an open gorm handle. The schema must already be migrated.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// write runs fn in a transaction while holding the write mutex.
func (s *Store) write(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *Store) read(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func persistenceError(msg string, err error) error {
	return apperrors.NewPersistenceError(msg, err)
}

// NewRepositoryProvider wires the embedded repositories onto one store.
func NewRepositoryProvider(db *gorm.DB) portsrepo.RepositoryProvider {
	store := NewStore(db)
	return portsrepo.RepositoryProvider{
		PostingRepo:   &PostingRepository{store: store},
		ClosingRepo:   &ClosingRepository{store: store},
		StaffUserRepo: &StaffUserRepository{store: store},
	}
}
