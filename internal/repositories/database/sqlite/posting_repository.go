package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/apperrors"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/postal_ledger/internal/models"
	"github.com/SscSPs/postal_ledger/internal/utils/mapping"
	"gorm.io/gorm"
)

// PostingRepository stores postings in the embedded database.
type PostingRepository struct {
	store *Store
}

var _ portsrepo.PostingRepositoryFacade = (*PostingRepository)(nil)

// SavePosting inserts a posting; the UNIQUE column makes the tracking code check atomic.
func (r *PostingRepository) SavePosting(ctx context.Context, posting domain.Posting) (*domain.Posting, error) {
	m := mapping.ToModelPosting(posting)
	m.ID = 0
	m.CreatedAt = time.Now().UTC()

	err := r.store.write(ctx, func(tx *gorm.DB) error {
		return tx.Create(&m).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("tracking code %s: %w", m.TrackingCode, apperrors.ErrDuplicateTrackingCode)
		}
		return nil, persistenceError("failed to save posting", err)
	}

	saved := mapping.ToDomainPosting(m)
	return &saved, nil
}

// FindPostingByID retrieves a posting by its identifier.
func (r *PostingRepository) FindPostingByID(ctx context.Context, postingID int64) (*domain.Posting, error) {
	var m models.Posting
	if err := r.store.read(ctx).First(&m, postingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, persistenceError(fmt.Sprintf("failed to find posting %d", postingID), err)
	}
	posting := mapping.ToDomainPosting(m)
	return &posting, nil
}

func dayQuery(db *gorm.DB, date civil.Date, location domain.Location) *gorm.DB {
	return db.Where("posting_date = ? AND location = ?", models.Date(date), int(location)).
		Order("created_at DESC").Order("id DESC")
}

func (r *PostingRepository) find(q *gorm.DB, msg string) ([]domain.Posting, error) {
	var rows []models.Posting
	if err := q.Find(&rows).Error; err != nil {
		return nil, persistenceError(msg, err)
	}
	return mapping.ToDomainPostingSlice(rows), nil
}

// ListPostingsByDay returns the postings of a day, newest first.
func (r *PostingRepository) ListPostingsByDay(ctx context.Context, date civil.Date, location *domain.Location) ([]domain.Posting, error) {
	if location != nil {
		return r.find(dayQuery(r.store.read(ctx), date, *location), "failed to list postings by day")
	}
	q := r.store.read(ctx).
		Where("posting_date = ?", models.Date(date)).
		Order("location ASC").Order("created_at DESC").Order("id DESC")
	return r.find(q, "failed to list postings by day")
}

// ListPendingPostings returns unpaid postings, oldest posting date first.
func (r *PostingRepository) ListPendingPostings(ctx context.Context) ([]domain.Posting, error) {
	q := r.store.read(ctx).
		Where("paid = ?", false).
		Order("posting_date ASC").Order("created_at ASC").Order("id ASC")
	return r.find(q, "failed to list pending postings")
}

// ListPostingsByRange returns postings between two dates inclusive.
func (r *PostingRepository) ListPostingsByRange(ctx context.Context, start, end civil.Date) ([]domain.Posting, error) {
	q := r.store.read(ctx).
		Where("posting_date BETWEEN ? AND ?", models.Date(start), models.Date(end)).
		Order("posting_date ASC").Order("created_at ASC").Order("id ASC")
	return r.find(q, "failed to list postings by range")
}

// MarkPostingPaid records a payment. The paid check and the update share one transaction.
func (r *PostingRepository) MarkPostingPaid(ctx context.Context, postingID int64, payment domain.Payment) (*domain.Posting, error) {
	var m models.Posting
	err := r.store.write(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&m, postingID).Error; err != nil {
			return err
		}
		if m.Paid && !payment.Correction {
			return apperrors.ErrAlreadyPaid
		}

		updates := map[string]any{
			"paid":           true,
			"payment_method": string(payment.Method),
			"payment_date":   models.Date(payment.Date),
		}
		if payment.Notes != "" {
			updates["notes"] = payment.Notes
		}
		if err := tx.Model(&models.Posting{}).Where("id = ?", postingID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&m, postingID).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperrors.ErrNotFound
		case errors.Is(err, apperrors.ErrAlreadyPaid):
			return nil, fmt.Errorf("posting %d: %w", postingID, err)
		}
		return nil, persistenceError(fmt.Sprintf("failed to mark posting %d paid", postingID), err)
	}

	posting := mapping.ToDomainPosting(m)
	return &posting, nil
}
