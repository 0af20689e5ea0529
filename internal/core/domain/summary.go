package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Summary aggregates a set of postings. All monetary totals are exact decimals.
type Summary struct {
	TotalPostings int             `json:"totalPostings"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalPAC      int             `json:"totalPac"`
	TotalSEDEX    int             `json:"totalSedex"`
	TotalPIX      decimal.Decimal `json:"totalPix"`
	TotalCash     decimal.Decimal `json:"totalCash"`
}

// Summarize folds postings into a Summary in a single pass. It is agnostic of
// date and location; callers pre-filter. An empty input yields an all-zero Summary.
func Summarize(postings []Posting) Summary {
	s := Summary{
		TotalAmount: decimal.Zero,
		TotalPIX:    decimal.Zero,
		TotalCash:   decimal.Zero,
	}
	for _, p := range postings {
		s.TotalPostings++
		s.TotalAmount = s.TotalAmount.Add(p.Amount)

		switch p.ServiceTier {
		case TierPAC:
			s.TotalPAC++
		case TierSEDEX:
			s.TotalSEDEX++
		}

		if !p.Paid || p.PaymentMethod == nil {
			continue
		}
		switch *p.PaymentMethod {
		case PaymentPIX:
			s.TotalPIX = s.TotalPIX.Add(p.Amount)
		case PaymentCash:
			s.TotalCash = s.TotalCash.Add(p.Amount)
		}
	}
	return s
}

// Add merges two summaries.
func (s Summary) Add(o Summary) Summary {
	return Summary{
		TotalPostings: s.TotalPostings + o.TotalPostings,
		TotalAmount:   s.TotalAmount.Add(o.TotalAmount),
		TotalPAC:      s.TotalPAC + o.TotalPAC,
		TotalSEDEX:    s.TotalSEDEX + o.TotalSEDEX,
		TotalPIX:      s.TotalPIX.Add(o.TotalPIX),
		TotalCash:     s.TotalCash.Add(o.TotalCash),
	}
}

// TotalPaid is the amount already settled by any payment method.
func (s Summary) TotalPaid() decimal.Decimal {
	return s.TotalPIX.Add(s.TotalCash)
}

// TotalPending is the amount still outstanding.
func (s Summary) TotalPending() decimal.Decimal {
	return s.TotalAmount.Sub(s.TotalPaid())
}

// LocationSummary is a Summary for one location.
type LocationSummary struct {
	Location Location `json:"location"`
	Summary
}

// DailyReport summarizes one calendar day, per location and combined.
type DailyReport struct {
	Date      civil.Date        `json:"date"`
	Locations []LocationSummary `json:"locations"`
	Combined  Summary           `json:"combined"`
}

// DaySummary is a Summary for one calendar day.
type DaySummary struct {
	Date civil.Date `json:"date"`
	Summary
}

// MonthlyReport summarizes a calendar month, optionally restricted to one location.
type MonthlyReport struct {
	Month    Month        `json:"month"`
	Location *Location    `json:"location,omitempty"`
	Summary  Summary      `json:"summary"`
	Days     []DaySummary `json:"days"` // Only days with postings, ascending
}

// SummarizeByDay groups postings by posting date and summarizes each group.
// Postings must already be ordered by posting date ascending.
func SummarizeByDay(postings []Posting) []DaySummary {
	days := []DaySummary{}
	start := 0
	for i := 1; i <= len(postings); i++ {
		if i < len(postings) && postings[i].PostingDate == postings[start].PostingDate {
			continue
		}
		days = append(days, DaySummary{
			Date:    postings[start].PostingDate,
			Summary: Summarize(postings[start:i]),
		})
		start = i
	}
	return days
}
