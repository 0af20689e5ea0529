package services

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
)

// ClosingReaderSvc defines read operations for daily closings
type ClosingReaderSvc interface {
	// GetClosing retrieves the closing of a key.
	GetClosing(ctx context.Context, key domain.ClosingKey, userID string) (*domain.DailyClosing, error)

	// GetClosingReport returns the closing together with the postings it covers.
	GetClosingReport(ctx context.Context, key domain.ClosingKey, userID string) (*domain.ClosingReport, error)

	// ListClosings lists closings between two dates inclusive.
	ListClosings(ctx context.Context, start, end civil.Date, userID string) ([]domain.DailyClosing, error)

	// ListRevisions lists every revision written for a key.
	ListRevisions(ctx context.Context, key domain.ClosingKey, userID string) ([]domain.ClosingRevision, error)
}

// ClosingWriterSvc defines write operations for daily closings
type ClosingWriterSvc interface {
	// CloseDay computes and persists the closing of a (date, location), replacing any previous one.
	// The report carries the postings the totals were computed from.
	CloseDay(ctx context.Context, req domain.CloseDayRequest, userID string) (*domain.ClosingReport, error)
}

// ClosingSvcFacade combines all closing-related service interfaces
type ClosingSvcFacade interface {
	ClosingReaderSvc
	ClosingWriterSvc
}
