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

const closingColumns = `id, closing_date, location, total_postings, total_amount, total_pac, total_sedex,
	total_pix, total_cash, operator, notes, revision, created_at, closed_at`

const revisionColumns = `closing_date, location, revision, total_postings, total_amount, total_pac, total_sedex,
	total_pix, total_cash, operator, notes, created_at`

var lockEpoch = civil.Date{Year: 1970, Month: 1, Day: 1}

// PgxClosingRepository stores daily closings and their revisions in Postgres.
type PgxClosingRepository struct {
	BaseRepository
}

func newPgxClosingRepository(pool *pgxpool.Pool) *PgxClosingRepository {
	return &PgxClosingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ClosingRepositoryFacade = (*PgxClosingRepository)(nil)

func scanClosing(row pgx.Row) (models.DailyClosing, error) {
	var m models.DailyClosing
	err := row.Scan(
		&m.ID,
		&m.ClosingDate,
		&m.Location,
		&m.TotalPostings,
		&m.TotalAmount,
		&m.TotalPAC,
		&m.TotalSEDEX,
		&m.TotalPIX,
		&m.TotalCash,
		&m.Operator,
		&m.Notes,
		&m.Revision,
		&m.CreatedAt,
		&m.ClosedAt,
	)
	return m, err
}

// SaveClosing closes a key. A transaction-scoped advisory lock on (location, day)
// serializes closings of the same key while other keys proceed in parallel; the
// postings are read after the lock is held so the totals never mix two reads.
func (r *PgxClosingRepository) SaveClosing(ctx context.Context, key domain.ClosingKey, build portsrepo.ClosingBuilder) (*domain.DailyClosing, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1::int, $2::int);`,
		int32(key.Location), int32(key.Date.DaysSince(lockEpoch))); err != nil {
		return nil, apperrors.NewPersistenceError("failed to lock closing key", err)
	}

	postings, err := listPostings(ctx, tx, `
		SELECT `+postingColumns+`
		FROM postings
		WHERE posting_date = $1 AND location = $2
		ORDER BY created_at DESC, id DESC;`,
		models.Date(key.Date), int(key.Location))
	if err != nil {
		return nil, err
	}

	closing, err := build(postings)
	if err != nil {
		return nil, err
	}
	m := mapping.ToModelClosing(closing)

	saved, err := scanClosing(tx.QueryRow(ctx, `
		INSERT INTO daily_closings (closing_date, location, total_postings, total_amount, total_pac, total_sedex,
			total_pix, total_cash, operator, notes, revision, created_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1, now(), now())
		ON CONFLICT (closing_date, location) DO UPDATE SET
			total_postings = EXCLUDED.total_postings,
			total_amount = EXCLUDED.total_amount,
			total_pac = EXCLUDED.total_pac,
			total_sedex = EXCLUDED.total_sedex,
			total_pix = EXCLUDED.total_pix,
			total_cash = EXCLUDED.total_cash,
			operator = EXCLUDED.operator,
			notes = EXCLUDED.notes,
			revision = daily_closings.revision + 1,
			closed_at = EXCLUDED.closed_at
		RETURNING `+closingColumns,
		models.Date(key.Date),
		int(key.Location),
		m.TotalPostings,
		m.TotalAmount,
		m.TotalPAC,
		m.TotalSEDEX,
		m.TotalPIX,
		m.TotalCash,
		m.Operator,
		m.Notes,
	))
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgCheckViolation {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("closing rejected by store: %v", err))
		}
		return nil, apperrors.NewPersistenceError("failed to upsert closing", err)
	}

	rev := mapping.ToModelClosingRevision(domain.RevisionOf(mapping.ToDomainClosing(saved)))
	if _, err := tx.Exec(ctx, `
		INSERT INTO closing_revisions (`+revisionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
		rev.ClosingDate,
		rev.Location,
		rev.Revision,
		rev.TotalPostings,
		rev.TotalAmount,
		rev.TotalPAC,
		rev.TotalSEDEX,
		rev.TotalPIX,
		rev.TotalCash,
		rev.Operator,
		rev.Notes,
		rev.CreatedAt,
	); err != nil {
		return nil, apperrors.NewPersistenceError("failed to append closing revision", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	domainClosing := mapping.ToDomainClosing(saved)
	return &domainClosing, nil
}

// FindClosing retrieves the closing of a key.
func (r *PgxClosingRepository) FindClosing(ctx context.Context, key domain.ClosingKey) (*domain.DailyClosing, error) {
	m, err := scanClosing(r.Pool.QueryRow(ctx, `
		SELECT `+closingColumns+`
		FROM daily_closings
		WHERE closing_date = $1 AND location = $2;`,
		models.Date(key.Date), int(key.Location)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistenceError(fmt.Sprintf("failed to find closing %s", key), err)
	}
	closing := mapping.ToDomainClosing(m)
	return &closing, nil
}

// ListClosings returns closings between two dates inclusive.
func (r *PgxClosingRepository) ListClosings(ctx context.Context, start, end civil.Date) ([]domain.DailyClosing, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+closingColumns+`
		FROM daily_closings
		WHERE closing_date BETWEEN $1 AND $2
		ORDER BY closing_date ASC, location ASC;`,
		models.Date(start), models.Date(end))
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query closings", err)
	}
	defer rows.Close()

	modelClosings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.DailyClosing, error) {
		return scanClosing(row)
	})
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to scan closings", err)
	}
	return mapping.ToDomainClosingSlice(modelClosings), nil
}

// ListClosingRevisions returns the revisions of a key, oldest first.
func (r *PgxClosingRepository) ListClosingRevisions(ctx context.Context, key domain.ClosingKey) ([]domain.ClosingRevision, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+revisionColumns+`
		FROM closing_revisions
		WHERE closing_date = $1 AND location = $2
		ORDER BY revision ASC;`,
		models.Date(key.Date), int(key.Location))
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query closing revisions", err)
	}
	defer rows.Close()

	modelRevisions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ClosingRevision, error) {
		var m models.ClosingRevision
		err := row.Scan(
			&m.ClosingDate,
			&m.Location,
			&m.Revision,
			&m.TotalPostings,
			&m.TotalAmount,
			&m.TotalPAC,
			&m.TotalSEDEX,
			&m.TotalPIX,
			&m.TotalCash,
			&m.Operator,
			&m.Notes,
			&m.CreatedAt,
		)
		return m, err
	})
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to scan closing revisions", err)
	}
	return mapping.ToDomainClosingRevisionSlice(modelRevisions), nil
}
