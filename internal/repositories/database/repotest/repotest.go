// Package repotest holds the behavior every storage backend must share.
// Backend packages call Run from their own tests with a factory for empty stores.
package repotest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/apperrors"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// Factory returns repositories over an empty store.
type Factory func(t *testing.T) portsrepo.RepositoryProvider

var day = civil.Date{Year: 2024, Month: time.March, Day: 12}

// Run executes the shared repository behavior against a backend.
func Run(t *testing.T, newRepos Factory) {
	t.Run("Postings", func(t *testing.T) { testPostings(t, newRepos) })
	t.Run("MarkPaid", func(t *testing.T) { testMarkPaid(t, newRepos) })
	t.Run("Closings", func(t *testing.T) { testClosings(t, newRepos) })
	t.Run("ConcurrentWrites", func(t *testing.T) { testConcurrentWrites(t, newRepos) })
	t.Run("StaffUsers", func(t *testing.T) { testStaffUsers(t, newRepos) })
}

func posting(code string, loc domain.Location, date civil.Date, amount string, tier domain.ServiceTier) domain.Posting {
	return domain.Posting{
		PostingDate:  date,
		Location:     loc,
		SenderName:   "Maria Souza",
		TrackingCode: code,
		Amount:       decimal.RequireFromString(amount),
		ServiceTier:  tier,
	}
}

func paidPosting(code string, loc domain.Location, date civil.Date, amount string, method domain.PaymentMethod) domain.Posting {
	p := posting(code, loc, date, amount, domain.TierSEDEX)
	p.Paid = true
	p.PaymentMethod = &method
	p.PaymentDate = &date
	return p
}

func save(t *testing.T, repo portsrepo.PostingWriter, p domain.Posting) *domain.Posting {
	t.Helper()
	saved, err := repo.SavePosting(context.Background(), p)
	require.NoError(t, err)
	return saved
}

func trackingCodes(postings []domain.Posting) []string {
	codes := make([]string, len(postings))
	for i, p := range postings {
		codes[i] = p.TrackingCode
	}
	return codes
}

// Builder mirrors the closing service: totals from the postings, nothing to close without them.
func Builder(key domain.ClosingKey, operator string) portsrepo.ClosingBuilder {
	return func(postings []domain.Posting) (domain.DailyClosing, error) {
		if len(postings) == 0 {
			return domain.DailyClosing{}, apperrors.ErrNoPostings
		}
		return domain.DailyClosing{
			ClosingDate: key.Date,
			Location:    key.Location,
			Summary:     domain.Summarize(postings),
			Operator:    operator,
		}, nil
	}
}

func testPostings(t *testing.T, newRepos Factory) {
	ctx := context.Background()
	repo := newRepos(t).PostingRepo

	first := save(t, repo, posting("BR1", domain.HotelFamily, day, "10.00", domain.TierPAC))
	assert.NotZero(t, first.PostingID)
	assert.False(t, first.CreatedAt.IsZero())
	save(t, repo, posting("BR2", domain.ShoppingBolivia, day, "20.50", domain.TierSEDEX))
	save(t, repo, paidPosting("BR3", domain.ShoppingBolivia, day, "5.25", domain.PaymentPIX))
	save(t, repo, posting("BR4", domain.ShoppingBolivia, day.AddDays(-3), "7.00", domain.TierPAC))
	save(t, repo, posting("BR5", domain.ShoppingBolivia, day.AddDays(1), "1.00", domain.TierPAC))

	t.Run("find by id round trips fields", func(t *testing.T) {
		found, err := repo.FindPostingByID(ctx, first.PostingID)
		require.NoError(t, err)
		assert.Equal(t, "BR1", found.TrackingCode)
		assert.Equal(t, day, found.PostingDate)
		assert.Equal(t, domain.HotelFamily, found.Location)
		assert.True(t, decimal.RequireFromString("10").Equal(found.Amount))
		assert.False(t, found.Paid)
		assert.Nil(t, found.PaymentMethod)
		assert.Nil(t, found.PaymentDate)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := repo.FindPostingByID(ctx, 999999)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("duplicate tracking code leaves store unchanged", func(t *testing.T) {
		_, err := repo.SavePosting(ctx, posting("BR1", domain.ShoppingBolivia, day, "99.00", domain.TierPAC))
		assert.ErrorIs(t, err, apperrors.ErrDuplicateTrackingCode)
		assert.ErrorIs(t, err, apperrors.ErrDuplicate)

		byDay, err := repo.ListPostingsByDay(ctx, day, nil)
		require.NoError(t, err)
		assert.Len(t, byDay, 3)
	})

	t.Run("by day and location newest first", func(t *testing.T) {
		loc := domain.ShoppingBolivia
		byDay, err := repo.ListPostingsByDay(ctx, day, &loc)
		require.NoError(t, err)
		assert.Equal(t, []string{"BR3", "BR2"}, trackingCodes(byDay))
	})

	t.Run("by day across locations ordered by location", func(t *testing.T) {
		byDay, err := repo.ListPostingsByDay(ctx, day, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"BR3", "BR2", "BR1"}, trackingCodes(byDay))
	})

	t.Run("empty day is an empty slice", func(t *testing.T) {
		byDay, err := repo.ListPostingsByDay(ctx, day.AddDays(30), nil)
		require.NoError(t, err)
		assert.NotNil(t, byDay)
		assert.Empty(t, byDay)
	})

	t.Run("pending is unpaid oldest first", func(t *testing.T) {
		pending, err := repo.ListPendingPostings(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"BR4", "BR1", "BR2", "BR5"}, trackingCodes(pending))
	})

	t.Run("range is inclusive", func(t *testing.T) {
		inRange, err := repo.ListPostingsByRange(ctx, day.AddDays(-3), day)
		require.NoError(t, err)
		assert.Equal(t, []string{"BR4", "BR1", "BR2", "BR3"}, trackingCodes(inRange))
	})
}

func testMarkPaid(t *testing.T, newRepos Factory) {
	ctx := context.Background()
	repo := newRepos(t).PostingRepo

	withNotes := posting("BR10", domain.ShoppingBolivia, day, "12.00", domain.TierPAC)
	notes := "fragile"
	withNotes.Notes = &notes
	p := save(t, repo, withNotes)

	payDay := day.AddDays(1)

	t.Run("unknown posting", func(t *testing.T) {
		_, err := repo.MarkPostingPaid(ctx, 999999, domain.Payment{Method: domain.PaymentPIX, Date: payDay})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("records payment and keeps notes", func(t *testing.T) {
		paid, err := repo.MarkPostingPaid(ctx, p.PostingID, domain.Payment{Method: domain.PaymentCash, Date: payDay})
		require.NoError(t, err)
		assert.True(t, paid.Paid)
		require.NotNil(t, paid.PaymentMethod)
		assert.Equal(t, domain.PaymentCash, *paid.PaymentMethod)
		require.NotNil(t, paid.PaymentDate)
		assert.Equal(t, payDay, *paid.PaymentDate)
		require.NotNil(t, paid.Notes)
		assert.Equal(t, "fragile", *paid.Notes)
	})

	t.Run("second payment without correction is rejected", func(t *testing.T) {
		_, err := repo.MarkPostingPaid(ctx, p.PostingID, domain.Payment{Method: domain.PaymentPIX, Date: payDay})
		assert.ErrorIs(t, err, apperrors.ErrAlreadyPaid)

		found, err := repo.FindPostingByID(ctx, p.PostingID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentCash, *found.PaymentMethod)
	})

	t.Run("correction overwrites payment and notes", func(t *testing.T) {
		corrected, err := repo.MarkPostingPaid(ctx, p.PostingID, domain.Payment{
			Method:     domain.PaymentPIX,
			Date:       payDay.AddDays(1),
			Notes:      "paid by pix, not cash",
			Correction: true,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentPIX, *corrected.PaymentMethod)
		assert.Equal(t, payDay.AddDays(1), *corrected.PaymentDate)
		assert.Equal(t, "paid by pix, not cash", *corrected.Notes)
	})

	t.Run("paid posting leaves pending list", func(t *testing.T) {
		pending, err := repo.ListPendingPostings(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})
}

func testClosings(t *testing.T, newRepos Factory) {
	ctx := context.Background()
	repos := newRepos(t)
	postings, closings := repos.PostingRepo, repos.ClosingRepo
	key := domain.ClosingKey{Date: day, Location: domain.ShoppingBolivia}

	t.Run("no postings writes nothing", func(t *testing.T) {
		_, err := closings.SaveClosing(ctx, key, Builder(key, "Ana"))
		assert.ErrorIs(t, err, apperrors.ErrNoPostings)

		_, err = closings.FindClosing(ctx, key)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		revisions, err := closings.ListClosingRevisions(ctx, key)
		require.NoError(t, err)
		assert.Empty(t, revisions)
	})

	save(t, postings, posting("BR20", domain.ShoppingBolivia, day, "10.00", domain.TierPAC))
	save(t, postings, paidPosting("BR21", domain.ShoppingBolivia, day, "15.50", domain.PaymentPIX))
	save(t, postings, posting("BR22", domain.HotelFamily, day, "99.00", domain.TierPAC))

	t.Run("first close", func(t *testing.T) {
		closing, err := closings.SaveClosing(ctx, key, Builder(key, "Ana"))
		require.NoError(t, err)
		assert.NotZero(t, closing.ClosingID)
		assert.Equal(t, 1, closing.Revision)
		assert.Equal(t, 2, closing.TotalPostings)
		assert.Equal(t, 1, closing.TotalPAC)
		assert.Equal(t, 1, closing.TotalSEDEX)
		assert.True(t, decimal.RequireFromString("25.50").Equal(closing.TotalAmount))
		assert.True(t, decimal.RequireFromString("15.50").Equal(closing.TotalPIX))
		assert.True(t, closing.TotalCash.IsZero())
		assert.Equal(t, "Ana", closing.Operator)
	})

	save(t, postings, posting("BR23", domain.ShoppingBolivia, day, "4.50", domain.TierPAC))

	t.Run("reclose replaces totals and bumps revision", func(t *testing.T) {
		closing, err := closings.SaveClosing(ctx, key, Builder(key, "Bruno"))
		require.NoError(t, err)
		assert.Equal(t, 2, closing.Revision)
		assert.Equal(t, 3, closing.TotalPostings)
		assert.True(t, decimal.RequireFromString("30.00").Equal(closing.TotalAmount))
		assert.Equal(t, "Bruno", closing.Operator)

		found, err := closings.FindClosing(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, closing.ClosingID, found.ClosingID)
		assert.Equal(t, 2, found.Revision)
		assert.Equal(t, 3, found.TotalPostings)
		assert.False(t, found.ClosedAt.Before(found.CreatedAt))

		revisions, err := closings.ListClosingRevisions(ctx, key)
		require.NoError(t, err)
		require.Len(t, revisions, 2)
		assert.Equal(t, 1, revisions[0].Revision)
		assert.Equal(t, 2, revisions[0].TotalPostings)
		assert.Equal(t, "Ana", revisions[0].Operator)
		assert.Equal(t, 2, revisions[1].Revision)
		assert.Equal(t, "Bruno", revisions[1].Operator)
	})

	t.Run("list by range ordered by date and location", func(t *testing.T) {
		other := domain.ClosingKey{Date: day, Location: domain.HotelFamily}
		_, err := closings.SaveClosing(ctx, other, Builder(other, "Ana"))
		require.NoError(t, err)

		listed, err := closings.ListClosings(ctx, day, day)
		require.NoError(t, err)
		require.Len(t, listed, 2)
		assert.Equal(t, domain.ShoppingBolivia, listed[0].Location)
		assert.Equal(t, domain.HotelFamily, listed[1].Location)

		empty, err := closings.ListClosings(ctx, day.AddDays(1), day.AddDays(5))
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})
}

func testConcurrentWrites(t *testing.T, newRepos Factory) {
	ctx := context.Background()
	repos := newRepos(t)
	const workers = 8

	t.Run("duplicate adds admit exactly one", func(t *testing.T) {
		var saved, duplicates atomic.Int32
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < workers; i++ {
			g.Go(func() error {
				_, err := repos.PostingRepo.SavePosting(gctx, posting("RACE1", domain.ShoppingBolivia, day, "3.00", domain.TierPAC))
				switch {
				case err == nil:
					saved.Add(1)
				case errors.Is(err, apperrors.ErrDuplicateTrackingCode):
					duplicates.Add(1)
				default:
					return err
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())
		assert.Equal(t, int32(1), saved.Load())
		assert.Equal(t, int32(workers-1), duplicates.Load())
	})

	t.Run("closes of one key serialize", func(t *testing.T) {
		key := domain.ClosingKey{Date: day, Location: domain.ShoppingBolivia}
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < workers; i++ {
			operator := fmt.Sprintf("operator-%d", i)
			g.Go(func() error {
				_, err := repos.ClosingRepo.SaveClosing(gctx, key, Builder(key, operator))
				return err
			})
		}
		require.NoError(t, g.Wait())

		closing, err := repos.ClosingRepo.FindClosing(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, workers, closing.Revision)
		assert.Equal(t, 1, closing.TotalPostings)

		revisions, err := repos.ClosingRepo.ListClosingRevisions(ctx, key)
		require.NoError(t, err)
		require.Len(t, revisions, workers)
		for i, rev := range revisions {
			assert.Equal(t, i+1, rev.Revision)
		}
	})
}

func testStaffUsers(t *testing.T, newRepos Factory) {
	ctx := context.Background()
	repo := newRepos(t).StaffUserRepo

	user := domain.StaffUser{
		UserID:       "6f1c1f5e-8a53-4d0e-9a55-5f0b6f7a2c11",
		Username:     "ana",
		PasswordHash: "$2a$10$hash",
		Name:         "Ana Lima",
		Role:         domain.RoleBackOffice,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.SaveStaffUser(ctx, user))

	byName, err := repo.FindStaffUserByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, byName.UserID)
	assert.Equal(t, domain.RoleBackOffice, byName.Role)
	assert.Equal(t, user.PasswordHash, byName.PasswordHash)

	byID, err := repo.FindStaffUserByID(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", byID.Name)

	dup := user
	dup.UserID = "0b0f5a2e-1c11-4a55-8d0e-7a2c115f0b6f"
	assert.ErrorIs(t, repo.SaveStaffUser(ctx, dup), apperrors.ErrDuplicate)

	_, err = repo.FindStaffUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.FindStaffUserByID(ctx, "8d0e7a2c-115f-4b6f-9a55-6f1c1f5e8a53")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
