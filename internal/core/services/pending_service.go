package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
)

// pendingService backs the outstanding balances view.
type pendingService struct {
	BaseService
	postingRepo portsrepo.PostingReader
}

// NewPendingPaymentsService creates the outstanding balances service
func NewPendingPaymentsService(repo portsrepo.PostingReader, options ...ServiceOption) portssvc.PendingPaymentsSvc {
	svc := &pendingService{postingRepo: repo}
	svc.apply(options)
	return svc
}

var _ portssvc.PendingPaymentsSvc = (*pendingService)(nil)

func (s *pendingService) ListPending(ctx context.Context, userID string) ([]domain.Posting, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleFrontDesk); err != nil {
		return nil, err
	}
	postings, err := s.postingRepo.ListPendingPostings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending postings")
		return nil, fmt.Errorf("failed to list pending postings: %w", err)
	}
	if postings == nil {
		return []domain.Posting{}, nil
	}
	s.LogDebug(ctx, "Pending postings listed", slog.Int("count", len(postings)))
	return postings, nil
}
