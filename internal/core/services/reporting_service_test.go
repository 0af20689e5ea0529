package services_test

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/apperrors"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	"github.com/SscSPs/postal_ledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySummary_BothLocations(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPostingRepository)
	svc := services.NewReportingService(repo)

	postings := []domain.Posting{
		{Location: domain.ShoppingBolivia, Amount: decimal.RequireFromString("15.50"), ServiceTier: domain.TierPAC},
		{Location: domain.HotelFamily, Amount: decimal.RequireFromString("10.00"), ServiceTier: domain.TierSEDEX,
			Paid: true, PaymentMethod: methodPtr(domain.PaymentCash), PaymentDate: datePtr(day)},
	}
	repo.On("ListPostingsByDay", ctx, day, (*domain.Location)(nil)).Return(postings, nil).Once()

	report, err := svc.DailySummary(ctx, day, nil, "")
	require.NoError(t, err)

	require.Len(t, report.Locations, 2)
	assert.Equal(t, domain.ShoppingBolivia, report.Locations[0].Location)
	assert.Equal(t, 1, report.Locations[0].TotalPostings)
	assert.Equal(t, domain.HotelFamily, report.Locations[1].Location)
	assert.True(t, decimal.RequireFromString("10.00").Equal(report.Locations[1].TotalCash))
	assert.Equal(t, 2, report.Combined.TotalPostings)
	assert.True(t, decimal.RequireFromString("25.50").Equal(report.Combined.TotalAmount))
	assert.Equal(t, day, report.Date)
}

func TestDailySummary_SingleLocationWithoutActivity(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPostingRepository)
	svc := services.NewReportingService(repo)
	loc := domain.HotelFamily
	repo.On("ListPostingsByDay", ctx, day, &loc).Return([]domain.Posting{}, nil).Once()

	report, err := svc.DailySummary(ctx, day, &loc, "")
	require.NoError(t, err)

	require.Len(t, report.Locations, 1)
	assert.Equal(t, 0, report.Combined.TotalPostings)
	assert.True(t, report.Combined.TotalAmount.IsZero())
}

func TestMonthlySummary_FiltersLocationAndGroupsDays(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPostingRepository)
	svc := services.NewReportingService(repo)
	month := domain.Month{Year: 2024, Month: time.February}

	first := civil.Date{Year: 2024, Month: time.February, Day: 1}
	last := civil.Date{Year: 2024, Month: time.February, Day: 29}
	postings := []domain.Posting{
		{PostingDate: first, Location: domain.ShoppingBolivia, Amount: decimal.NewFromInt(10), ServiceTier: domain.TierPAC},
		{PostingDate: first, Location: domain.HotelFamily, Amount: decimal.NewFromInt(99), ServiceTier: domain.TierPAC},
		{PostingDate: first, Location: domain.ShoppingBolivia, Amount: decimal.NewFromInt(5), ServiceTier: domain.TierSEDEX},
		{PostingDate: last, Location: domain.ShoppingBolivia, Amount: decimal.NewFromInt(7), ServiceTier: domain.TierPAC},
	}
	repo.On("ListPostingsByRange", ctx, first, last).Return(postings, nil).Once()

	loc := domain.ShoppingBolivia
	report, err := svc.MonthlySummary(ctx, month, &loc, "")
	require.NoError(t, err)

	assert.Equal(t, 3, report.Summary.TotalPostings)
	assert.True(t, decimal.NewFromInt(22).Equal(report.Summary.TotalAmount))
	require.Len(t, report.Days, 2)
	assert.Equal(t, first, report.Days[0].Date)
	assert.Equal(t, 2, report.Days[0].TotalPostings)
	assert.Equal(t, last, report.Days[1].Date)
	repo.AssertExpectations(t)
}

func TestMonthlySummary_InvalidInput(t *testing.T) {
	svc := services.NewReportingService(new(MockPostingRepository))

	_, err := svc.MonthlySummary(context.Background(), domain.Month{Year: 2024, Month: 13}, nil, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	bad := domain.Location(3)
	_, err = svc.MonthlySummary(context.Background(), domain.Month{Year: 2024, Month: time.May}, &bad, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
