package pgsql

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/apperrors"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/postal_ledger/internal/models"
	"github.com/SscSPs/postal_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postingColumns = `id, posting_date, location, sender_name, tracking_code, amount, service_tier,
	payment_method, paid, payment_date, notes, created_at`

// PgxPostingRepository stores postings in Postgres.
type PgxPostingRepository struct {
	BaseRepository
}

func newPgxPostingRepository(pool *pgxpool.Pool) *PgxPostingRepository {
	return &PgxPostingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PostingRepositoryFacade = (*PgxPostingRepository)(nil)

func scanPosting(row pgx.Row) (models.Posting, error) {
	var m models.Posting
	err := row.Scan(
		&m.ID,
		&m.PostingDate,
		&m.Location,
		&m.SenderName,
		&m.TrackingCode,
		&m.Amount,
		&m.ServiceTier,
		&m.PaymentMethod,
		&m.Paid,
		&m.PaymentDate,
		&m.Notes,
		&m.CreatedAt,
	)
	return m, err
}

// listPostings runs a posting query on q, which may be the pool or a transaction.
func listPostings(ctx context.Context, q querier, query string, args ...any) ([]domain.Posting, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query postings", err)
	}
	defer rows.Close()

	modelPostings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Posting, error) {
		return scanPosting(row)
	})
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to scan postings", err)
	}
	return mapping.ToDomainPostingSlice(modelPostings), nil
}

// SavePosting inserts a posting; the unique constraint on tracking_code makes the check atomic.
func (r *PgxPostingRepository) SavePosting(ctx context.Context, posting domain.Posting) (*domain.Posting, error) {
	m := mapping.ToModelPosting(posting)
	query := `
		INSERT INTO postings (posting_date, location, sender_name, tracking_code, amount, service_tier,
			payment_method, paid, payment_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + postingColumns

	saved, err := scanPosting(r.Pool.QueryRow(ctx, query,
		m.PostingDate,
		m.Location,
		m.SenderName,
		m.TrackingCode,
		m.Amount,
		m.ServiceTier,
		m.PaymentMethod,
		m.Paid,
		m.PaymentDate,
		m.Notes,
	))
	if err != nil {
		switch code, _ := pgErrorCode(err); code {
		case pgUniqueViolation:
			return nil, fmt.Errorf("tracking code %s: %w", m.TrackingCode, apperrors.ErrDuplicateTrackingCode)
		case pgCheckViolation:
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("posting rejected by store: %v", err))
		}
		return nil, apperrors.NewPersistenceError("failed to save posting", err)
	}

	domainPosting := mapping.ToDomainPosting(saved)
	return &domainPosting, nil
}

// FindPostingByID retrieves a posting by its identifier.
func (r *PgxPostingRepository) FindPostingByID(ctx context.Context, postingID int64) (*domain.Posting, error) {
	query := `SELECT ` + postingColumns + ` FROM postings WHERE id = $1;`
	m, err := scanPosting(r.Pool.QueryRow(ctx, query, postingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistenceError(fmt.Sprintf("failed to find posting %d", postingID), err)
	}
	posting := mapping.ToDomainPosting(m)
	return &posting, nil
}

// ListPostingsByDay returns the postings of a day, newest first.
func (r *PgxPostingRepository) ListPostingsByDay(ctx context.Context, date civil.Date, location *domain.Location) ([]domain.Posting, error) {
	if location != nil {
		return listPostings(ctx, r.Pool, `
			SELECT `+postingColumns+`
			FROM postings
			WHERE posting_date = $1 AND location = $2
			ORDER BY created_at DESC, id DESC;`,
			models.Date(date), int(*location))
	}
	return listPostings(ctx, r.Pool, `
		SELECT `+postingColumns+`
		FROM postings
		WHERE posting_date = $1
		ORDER BY location ASC, created_at DESC, id DESC;`,
		models.Date(date))
}

// ListPendingPostings returns unpaid postings, oldest posting date first.
func (r *PgxPostingRepository) ListPendingPostings(ctx context.Context) ([]domain.Posting, error) {
	return listPostings(ctx, r.Pool, `
		SELECT `+postingColumns+`
		FROM postings
		WHERE NOT paid
		ORDER BY posting_date ASC, created_at ASC, id ASC;`)
}

// ListPostingsByRange returns postings between two dates inclusive.
func (r *PgxPostingRepository) ListPostingsByRange(ctx context.Context, start, end civil.Date) ([]domain.Posting, error) {
	return listPostings(ctx, r.Pool, `
		SELECT `+postingColumns+`
		FROM postings
		WHERE posting_date BETWEEN $1 AND $2
		ORDER BY posting_date ASC, created_at ASC, id ASC;`,
		models.Date(start), models.Date(end))
}

// MarkPostingPaid records a payment with one conditional update so that
// concurrent payments of the same posting cannot both pass the paid check.
func (r *PgxPostingRepository) MarkPostingPaid(ctx context.Context, postingID int64, payment domain.Payment) (*domain.Posting, error) {
	query := `
		UPDATE postings
		SET paid = TRUE,
			payment_method = $2,
			payment_date = $3,
			notes = COALESCE(NULLIF($4::text, ''), notes)
		WHERE id = $1 AND (NOT paid OR $5::boolean)
		RETURNING ` + postingColumns

	m, err := scanPosting(r.Pool.QueryRow(ctx, query,
		postingID,
		string(payment.Method),
		models.Date(payment.Date),
		payment.Notes,
		payment.Correction,
	))
	if err == nil {
		posting := mapping.ToDomainPosting(m)
		return &posting, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewPersistenceError(fmt.Sprintf("failed to mark posting %d paid", postingID), err)
	}

	// Nothing updated: either the posting does not exist or it is already paid.
	// Paid never reverts, so the answer cannot change between the two statements.
	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM postings WHERE id = $1);`, postingID).Scan(&exists); err != nil {
		return nil, apperrors.NewPersistenceError(fmt.Sprintf("failed to look up posting %d", postingID), err)
	}
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	return nil, fmt.Errorf("posting %d: %w", postingID, apperrors.ErrAlreadyPaid)
}
