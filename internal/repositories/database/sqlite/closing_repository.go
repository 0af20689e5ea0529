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
	"gorm.io/gorm/clause"
)

// ClosingRepository stores daily closings and their revisions in the embedded database.
type ClosingRepository struct {
	store *Store
}

var _ portsrepo.ClosingRepositoryFacade = (*ClosingRepository)(nil)

func keyQuery(db *gorm.DB, key domain.ClosingKey) *gorm.DB {
	return db.Where("closing_date = ? AND location = ?", models.Date(key.Date), int(key.Location))
}

// SaveClosing closes a key inside one write transaction: read postings, build, upsert, append revision.
func (r *ClosingRepository) SaveClosing(ctx context.Context, key domain.ClosingKey, build portsrepo.ClosingBuilder) (*domain.DailyClosing, error) {
	var saved models.DailyClosing
	err := r.store.write(ctx, func(tx *gorm.DB) error {
		var rows []models.Posting
		if err := dayQuery(tx, key.Date, key.Location).Find(&rows).Error; err != nil {
			return persistenceError("failed to read postings for closing", err)
		}

		closing, err := build(mapping.ToDomainPostingSlice(rows))
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		m := mapping.ToModelClosing(closing)
		m.ID = 0
		m.ClosingDate = models.Date(key.Date)
		m.Location = int(key.Location)
		m.Revision = 1
		m.CreatedAt = now
		m.ClosedAt = now

		upsert := clause.OnConflict{
			Columns: []clause.Column{{Name: "closing_date"}, {Name: "location"}},
			DoUpdates: clause.Assignments(map[string]any{
				"total_postings": m.TotalPostings,
				"total_amount":   m.TotalAmount,
				"total_pac":      m.TotalPAC,
				"total_sedex":    m.TotalSEDEX,
				"total_pix":      m.TotalPIX,
				"total_cash":     m.TotalCash,
				"operator":       m.Operator,
				"notes":          m.Notes,
				"revision":       gorm.Expr("daily_closings.revision + 1"),
				"closed_at":      now,
			}),
		}
		if err := tx.Clauses(upsert).Create(&m).Error; err != nil {
			return persistenceError("failed to upsert closing", err)
		}
		if err := keyQuery(tx, key).First(&saved).Error; err != nil {
			return persistenceError("failed to reload closing", err)
		}

		rev := mapping.ToModelClosingRevision(domain.RevisionOf(mapping.ToDomainClosing(saved)))
		if err := tx.Create(&rev).Error; err != nil {
			return persistenceError("failed to append closing revision", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	closing := mapping.ToDomainClosing(saved)
	return &closing, nil
}

// FindClosing retrieves the closing of a key.
func (r *ClosingRepository) FindClosing(ctx context.Context, key domain.ClosingKey) (*domain.DailyClosing, error) {
	var m models.DailyClosing
	if err := keyQuery(r.store.read(ctx), key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, persistenceError(fmt.Sprintf("failed to find closing %s", key), err)
	}
	closing := mapping.ToDomainClosing(m)
	return &closing, nil
}

// ListClosings returns closings between two dates inclusive.
func (r *ClosingRepository) ListClosings(ctx context.Context, start, end civil.Date) ([]domain.DailyClosing, error) {
	var rows []models.DailyClosing
	err := r.store.read(ctx).
		Where("closing_date BETWEEN ? AND ?", models.Date(start), models.Date(end)).
		Order("closing_date ASC").Order("location ASC").
		Find(&rows).Error
	if err != nil {
		return nil, persistenceError("failed to query closings", err)
	}
	return mapping.ToDomainClosingSlice(rows), nil
}

// ListClosingRevisions returns the revisions of a key, oldest first.
func (r *ClosingRepository) ListClosingRevisions(ctx context.Context, key domain.ClosingKey) ([]domain.ClosingRevision, error) {
	var rows []models.ClosingRevision
	if err := keyQuery(r.store.read(ctx), key).Order("revision ASC").Find(&rows).Error; err != nil {
		return nil, persistenceError("failed to query closing revisions", err)
	}
	return mapping.ToDomainClosingRevisionSlice(rows), nil
}
