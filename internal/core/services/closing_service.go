package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/apperrors"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/go-playground/validator/v10"
)

// closingService implements the ClosingSvcFacade interface
type closingService struct {
	BaseService
	closingRepo portsrepo.ClosingRepositoryFacade
	postingRepo portsrepo.PostingReader
	validate    *validator.Validate
}

// NewClosingService creates a new closing service with the provided options
func NewClosingService(closingRepo portsrepo.ClosingRepositoryFacade, postingRepo portsrepo.PostingReader, options ...ServiceOption) portssvc.ClosingSvcFacade {
	svc := &closingService{
		closingRepo: closingRepo,
		postingRepo: postingRepo,
		validate:    newValidator(),
	}
	svc.apply(options)
	return svc
}

// Ensure closingService implements the ClosingSvcFacade interface
var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

func (s *closingService) CloseDay(ctx context.Context, req domain.CloseDayRequest, userID string) (*domain.ClosingReport, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleBackOffice); err != nil {
		s.LogError(ctx, err, "User not authorized to close day", slog.String("user_id", userID))
		return nil, err
	}

	req.Operator = strings.TrimSpace(req.Operator)
	req.Notes = strings.TrimSpace(req.Notes)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	key := domain.ClosingKey{Date: req.Date, Location: req.Location}

	// covered is assigned inside the store's unit of work so the report
	// lists exactly the postings the totals were computed from.
	var covered []domain.Posting
	build := func(postings []domain.Posting) (domain.DailyClosing, error) {
		summary := domain.Summarize(postings)
		if summary.TotalPostings == 0 {
			return domain.DailyClosing{}, apperrors.ErrNoPostings
		}
		covered = postings
		closing := domain.DailyClosing{
			ClosingDate: key.Date,
			Location:    key.Location,
			Summary:     summary,
			Operator:    req.Operator,
		}
		if req.Notes != "" {
			notes := req.Notes
			closing.Notes = &notes
		}
		return closing, nil
	}

	closing, err := s.closingRepo.SaveClosing(ctx, key, build)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoPostings) {
			s.LogInfo(ctx, "Nothing to close", slog.String("key", key.String()))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save closing", slog.String("key", key.String()))
		return nil, fmt.Errorf("failed to save closing: %w", err)
	}

	s.LogInfo(ctx, "Day closed",
		slog.String("key", key.String()),
		slog.Int("revision", closing.Revision),
		slog.Int("total_postings", closing.TotalPostings),
		slog.String("total_amount", closing.TotalAmount.StringFixed(domain.MaxAmountScale)),
		slog.String("operator", closing.Operator))
	return &domain.ClosingReport{Closing: *closing, Postings: covered}, nil
}

func (s *closingService) GetClosing(ctx context.Context, key domain.ClosingKey, userID string) (*domain.DailyClosing, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleBackOffice); err != nil {
		return nil, err
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}
	closing, err := s.closingRepo.FindClosing(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find closing", slog.String("key", key.String()))
		}
		return nil, err
	}
	return closing, nil
}

func (s *closingService) GetClosingReport(ctx context.Context, key domain.ClosingKey, userID string) (*domain.ClosingReport, error) {
	closing, err := s.GetClosing(ctx, key, userID)
	if err != nil {
		return nil, err
	}
	postings, err := s.postingRepo.ListPostingsByDay(ctx, key.Date, &key.Location)
	if err != nil {
		s.LogError(ctx, err, "Failed to list postings for closing report", slog.String("key", key.String()))
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}
	if postings == nil {
		postings = []domain.Posting{}
	}
	return &domain.ClosingReport{Closing: *closing, Postings: postings}, nil
}

func (s *closingService) ListClosings(ctx context.Context, start, end civil.Date, userID string) ([]domain.DailyClosing, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleBackOffice); err != nil {
		return nil, err
	}
	if err := domain.ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	closings, err := s.closingRepo.ListClosings(ctx, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to list closings",
			slog.String("from", start.String()),
			slog.String("to", end.String()))
		return nil, fmt.Errorf("failed to list closings: %w", err)
	}
	if closings == nil {
		return []domain.DailyClosing{}, nil
	}
	return closings, nil
}

func (s *closingService) ListRevisions(ctx context.Context, key domain.ClosingKey, userID string) ([]domain.ClosingRevision, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleBackOffice); err != nil {
		return nil, err
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}
	revisions, err := s.closingRepo.ListClosingRevisions(ctx, key)
	if err != nil {
		s.LogError(ctx, err, "Failed to list closing revisions", slog.String("key", key.String()))
		return nil, fmt.Errorf("failed to list closing revisions: %w", err)
	}
	if revisions == nil {
		return []domain.ClosingRevision{}, nil
	}
	return revisions, nil
}

func validateKey(key domain.ClosingKey) error {
	if !key.Date.IsValid() {
		return apperrors.NewValidationFailedError("closing date is required")
	}
	if !key.Location.IsValid() {
		return apperrors.NewValidationFailedError(fmt.Sprintf("unknown location %d", int(key.Location)))
	}
	return nil
}
