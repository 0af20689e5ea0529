package dto

import (
	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
)

// LocationSummaryResponse is the summary of one location.
type LocationSummaryResponse struct {
	Location     domain.Location `json:"location"`
	LocationName string          `json:"locationName"`
	Summary      SummaryResponse `json:"summary"`
}

// DailySummaryResponse is the API shape of a daily report.
type DailySummaryResponse struct {
	Date      civil.Date                `json:"date"`
	Locations []LocationSummaryResponse `json:"locations"`
	Combined  SummaryResponse           `json:"combined"`
}

// ToDailySummaryResponse converts a domain daily report.
func ToDailySummaryResponse(r *domain.DailyReport) DailySummaryResponse {
	resp := DailySummaryResponse{
		Date:      r.Date,
		Locations: make([]LocationSummaryResponse, len(r.Locations)),
		Combined:  ToSummaryResponse(r.Combined),
	}
	for i, l := range r.Locations {
		resp.Locations[i] = LocationSummaryResponse{
			Location:     l.Location,
			LocationName: l.Location.Name(),
			Summary:      ToSummaryResponse(l.Summary),
		}
	}
	return resp
}

// DaySummaryResponse is one day of a monthly breakdown.
type DaySummaryResponse struct {
	Date    civil.Date      `json:"date"`
	Summary SummaryResponse `json:"summary"`
}

// MonthlySummaryResponse is the API shape of a monthly report.
type MonthlySummaryResponse struct {
	Month    domain.Month         `json:"month"`
	Location *domain.Location     `json:"location,omitempty"`
	Summary  SummaryResponse      `json:"summary"`
	Days     []DaySummaryResponse `json:"days"`
}

// ToMonthlySummaryResponse converts a domain monthly report.
func ToMonthlySummaryResponse(r *domain.MonthlyReport) MonthlySummaryResponse {
	resp := MonthlySummaryResponse{
		Month:    r.Month,
		Location: r.Location,
		Summary:  ToSummaryResponse(r.Summary),
		Days:     make([]DaySummaryResponse, len(r.Days)),
	}
	for i, d := range r.Days {
		resp.Days[i] = DaySummaryResponse{Date: d.Date, Summary: ToSummaryResponse(d.Summary)}
	}
	return resp
}
