package services

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
)

// PostingReaderSvc defines read operations for postings
type PostingReaderSvc interface {
	// GetPosting retrieves a posting by ID.
	GetPosting(ctx context.Context, postingID int64, userID string) (*domain.Posting, error)

	// ListPostingsByDay lists one day's postings, optionally for a single location.
	ListPostingsByDay(ctx context.Context, date civil.Date, location *domain.Location, userID string) ([]domain.Posting, error)

	// ListPostingsByRange lists postings between two dates inclusive, oldest first.
	ListPostingsByRange(ctx context.Context, start, end civil.Date, userID string) ([]domain.Posting, error)
}

// PostingWriterSvc defines write operations for postings
type PostingWriterSvc interface {
	// AddPosting validates and persists a new posting.
	AddPosting(ctx context.Context, req domain.NewPosting, userID string) (*domain.Posting, error)

	// MarkPaid records the payment of a posting.
	MarkPaid(ctx context.Context, postingID int64, payment domain.Payment, userID string) (*domain.Posting, error)
}

// PostingSvcFacade combines all posting-related service interfaces
type PostingSvcFacade interface {
	PostingReaderSvc
	PostingWriterSvc
}

// PendingPaymentsSvc is the outstanding balances view: unpaid postings across all dates.
// Closings summarize paid and unpaid postings alike; this view only lists unpaid ones.
type PendingPaymentsSvc interface {
	// ListPending returns unpaid postings, longest outstanding first.
	ListPending(ctx context.Context, userID string) ([]domain.Posting, error)
}
