package services

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
)

// ReportingService computes live summaries from current postings
type ReportingService interface {
	// DailySummary summarizes one day, for one location or for both.
	DailySummary(ctx context.Context, date civil.Date, location *domain.Location, userID string) (*domain.DailyReport, error)

	// MonthlySummary summarizes one month with a per-day breakdown.
	MonthlySummary(ctx context.Context, month domain.Month, location *domain.Location, userID string) (*domain.MonthlyReport, error)
}
