package repositories

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
)

// ClosingBuilder computes the closing to persist from the postings of the key,
// read inside the same unit of work. Returning an error aborts the closing.
type ClosingBuilder func(postings []domain.Posting) (domain.DailyClosing, error)

// ClosingReader defines read operations for daily closings
type ClosingReader interface {
	// FindClosing retrieves the closing of a key.
	FindClosing(ctx context.Context, key domain.ClosingKey) (*domain.DailyClosing, error)

	// ListClosings returns closings with start <= closing_date <= end ordered by date, then location.
	ListClosings(ctx context.Context, start, end civil.Date) ([]domain.DailyClosing, error)

	// ListClosingRevisions returns every revision written for a key, oldest first.
	ListClosingRevisions(ctx context.Context, key domain.ClosingKey) ([]domain.ClosingRevision, error)
}

// ClosingWriter defines write operations for daily closings
type ClosingWriter interface {
	// SaveClosing serializes with other closings of the same key, reads the key's postings,
	// calls build and upserts the result, appending a revision. Nothing is written if build fails.
	SaveClosing(ctx context.Context, key domain.ClosingKey, build ClosingBuilder) (*domain.DailyClosing, error)
}

// ClosingRepositoryFacade combines all closing-related repository interfaces
type ClosingRepositoryFacade interface {
	ClosingReader
	ClosingWriter
}
