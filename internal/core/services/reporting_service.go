package services

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/apperrors"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	postingRepo portsrepo.PostingReader
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.PostingReader, options ...ServiceOption) portssvc.ReportingService {
	svc := &reportingService{postingRepo: repo}
	svc.apply(options)
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// DailySummary summarizes live postings of a day. Without a location both
// locations are reported, each with its own Summary, plus the combined one.
func (s *reportingService) DailySummary(ctx context.Context, date civil.Date, location *domain.Location, userID string) (*domain.DailyReport, error) {
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
		s.LogError(ctx, err, "Failed to list postings for daily summary", slog.String("date", date.String()))
		return nil, fmt.Errorf("failed to retrieve postings: %w", err)
	}

	locations := domain.Locations
	if location != nil {
		locations = []domain.Location{*location}
	}

	byLocation := make(map[domain.Location][]domain.Posting, len(locations))
	for _, p := range postings {
		byLocation[p.Location] = append(byLocation[p.Location], p)
	}

	report := &domain.DailyReport{
		Date:      date,
		Locations: make([]domain.LocationSummary, 0, len(locations)),
		Combined:  domain.Summarize(nil),
	}
	for _, loc := range locations {
		summary := domain.Summarize(byLocation[loc])
		report.Locations = append(report.Locations, domain.LocationSummary{Location: loc, Summary: summary})
		report.Combined = report.Combined.Add(summary)
	}

	s.LogDebug(ctx, "Daily summary generated",
		slog.String("date", date.String()),
		slog.Int("total_postings", report.Combined.TotalPostings))
	return report, nil
}

// MonthlySummary summarizes a calendar month with one entry per day that has postings.
func (s *reportingService) MonthlySummary(ctx context.Context, month domain.Month, location *domain.Location, userID string) (*domain.MonthlyReport, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleBackOffice); err != nil {
		return nil, err
	}
	if !month.IsValid() {
		return nil, apperrors.NewValidationFailedError("month is invalid")
	}
	if location != nil && !location.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown location %d", int(*location)))
	}

	postings, err := s.postingRepo.ListPostingsByRange(ctx, month.FirstDay(), month.LastDay())
	if err != nil {
		s.LogError(ctx, err, "Failed to list postings for monthly summary", slog.String("month", month.String()))
		return nil, fmt.Errorf("failed to retrieve postings: %w", err)
	}

	if location != nil {
		filtered := postings[:0:0]
		for _, p := range postings {
			if p.Location == *location {
				filtered = append(filtered, p)
			}
		}
		postings = filtered
	}

	report := &domain.MonthlyReport{
		Month:    month,
		Location: location,
		Summary:  domain.Summarize(postings),
		Days:     domain.SummarizeByDay(postings),
	}

	s.LogInfo(ctx, "Monthly summary generated",
		slog.String("month", month.String()),
		slog.Int("days", len(report.Days)),
		slog.Int("total_postings", report.Summary.TotalPostings))
	return report, nil
}
