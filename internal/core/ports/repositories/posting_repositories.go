package repositories

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
)

// PostingReader defines read operations for posting data
type PostingReader interface {
	// FindPostingByID retrieves a posting by its store-assigned identifier.
	FindPostingByID(ctx context.Context, postingID int64) (*domain.Posting, error)

	// ListPostingsByDay returns the postings of one day, most recently created first.
	// With a nil location all locations are returned ordered by location, then by creation time descending.
	ListPostingsByDay(ctx context.Context, date civil.Date, location *domain.Location) ([]domain.Posting, error)

	// ListPendingPostings returns unpaid postings ordered by posting date ascending.
	ListPendingPostings(ctx context.Context) ([]domain.Posting, error)

	// ListPostingsByRange returns postings with start <= posting_date <= end ordered by posting date ascending.
	ListPostingsByRange(ctx context.Context, start, end civil.Date) ([]domain.Posting, error)
}

// PostingWriter defines write operations for posting data
type PostingWriter interface {
	// SavePosting inserts a posting. The tracking code uniqueness check and the insert are atomic;
	// a conflict returns apperrors.ErrDuplicateTrackingCode and leaves the store unchanged.
	SavePosting(ctx context.Context, posting domain.Posting) (*domain.Posting, error)

	// MarkPostingPaid records a payment. An already paid posting is only overwritten when
	// payment.Correction is set, otherwise apperrors.ErrAlreadyPaid is returned.
	// Empty payment notes keep the existing notes.
	MarkPostingPaid(ctx context.Context, postingID int64, payment domain.Payment) (*domain.Posting, error)
}

// PostingRepositoryFacade combines all posting-related repository interfaces
type PostingRepositoryFacade interface {
	PostingReader
	PostingWriter
}
