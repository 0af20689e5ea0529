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

// postingService implements the PostingSvcFacade interface
type postingService struct {
	BaseService
	postingRepo portsrepo.PostingRepositoryFacade
	validate    *validator.Validate
}

// NewPostingService creates a new posting service with the provided options
func NewPostingService(repo portsrepo.PostingRepositoryFacade, options ...ServiceOption) portssvc.PostingSvcFacade {
	svc := &postingService{
		postingRepo: repo,
		validate:    newValidator(),
	}
	svc.apply(options)
	return svc
}

// Ensure postingService implements the PostingSvcFacade interface
var _ portssvc.PostingSvcFacade = (*postingService)(nil)

func (s *postingService) AddPosting(ctx context.Context, req domain.NewPosting, userID string) (*domain.Posting, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleFrontDesk); err != nil {
		s.LogError(ctx, err, "User not authorized to add posting", slog.String("user_id", userID))
		return nil, err
	}

	req = req.Normalize()
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if !domain.HasValidScale(req.Amount) {
		return nil, apperrors.NewValidationFailedError(
			fmt.Sprintf("amount %s has more than %d decimal places", req.Amount, domain.MaxAmountScale))
	}

	posting := req.ToPosting()
	if err := posting.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.postingRepo.SavePosting(ctx, posting)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogInfo(ctx, "Tracking code already registered", slog.String("tracking_code", posting.TrackingCode))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save posting", slog.String("tracking_code", posting.TrackingCode))
		return nil, fmt.Errorf("failed to save posting: %w", err)
	}

	s.LogInfo(ctx, "Posting added",
		slog.Int64("posting_id", saved.PostingID),
		slog.String("tracking_code", saved.TrackingCode),
		slog.Int("location", int(saved.Location)))
	return saved, nil
}

func (s *postingService) GetPosting(ctx context.Context, postingID int64, userID string) (*domain.Posting, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleFrontDesk); err != nil {
		return nil, err
	}
	posting, err := s.postingRepo.FindPostingByID(ctx, postingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find posting", slog.Int64("posting_id", postingID))
		}
		return nil, err
	}
	return posting, nil
}

func (s *postingService) ListPostingsByDay(ctx context.Context, date civil.Date, location *domain.Location, userID string) ([]domain.Posting, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleFrontDesk); err != nil {
		return nil, err
	}
	if !date.IsValid() {
		return nil, apperrors.NewValidationFailedError("date is required")
	}
	if location != nil && !location.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown location %d", int(*location)))
	}

	postings, err := s.postingRepo.ListPostingsByDay(ctx, date, location)
	if err != nil {
		s.LogError(ctx, err, "Failed to list postings by day", slog.String("date", date.String()))
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}
	if postings == nil {
		return []domain.Posting{}, nil
	}
	return postings, nil
}

func (s *postingService) ListPostingsByRange(ctx context.Context, start, end civil.Date, userID string) ([]domain.Posting, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleFrontDesk); err != nil {
		return nil, err
	}
	if err := domain.ValidateDateRange(start, end); err != nil {
		return nil, err
	}

	postings, err := s.postingRepo.ListPostingsByRange(ctx, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to list postings by range",
			slog.String("from", start.String()),
			slog.String("to", end.String()))
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}
	if postings == nil {
		return []domain.Posting{}, nil
	}
	return postings, nil
}

func (s *postingService) MarkPaid(ctx context.Context, postingID int64, payment domain.Payment, userID string) (*domain.Posting, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleFrontDesk); err != nil {
		s.LogError(ctx, err, "User not authorized to record payment", slog.String("user_id", userID))
		return nil, err
	}

	payment.Notes = strings.TrimSpace(payment.Notes)
	if err := s.validate.Struct(payment); err != nil {
		return nil, validationError(err)
	}

	posting, err := s.postingRepo.MarkPostingPaid(ctx, postingID, payment)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrAlreadyPaid):
			s.LogInfo(ctx, "Payment not recorded",
				slog.Int64("posting_id", postingID),
				slog.String("reason", err.Error()))
			return nil, err
		default:
			s.LogError(ctx, err, "Failed to record payment", slog.Int64("posting_id", postingID))
			return nil, fmt.Errorf("failed to record payment: %w", err)
		}
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.Int64("posting_id", postingID),
		slog.String("payment_method", string(payment.Method)),
		slog.Bool("correction", payment.Correction))
	return posting, nil
}
