package dto

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CloseDayRequest is the body of POST /closings.
type CloseDayRequest struct {
	Date     string `json:"date" binding:"required"`
	Location int    `json:"location" binding:"required"`
	Operator string `json:"operator" binding:"required"`
	Notes    string `json:"notes"`
}

// ToDomain parses the request into the domain input.
func (r CloseDayRequest) ToDomain() (domain.CloseDayRequest, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.CloseDayRequest{}, err
	}
	loc, err := domain.ParseLocation(r.Location)
	if err != nil {
		return domain.CloseDayRequest{}, err
	}
	return domain.CloseDayRequest{
		Date:     date,
		Location: loc,
		Operator: r.Operator,
		Notes:    r.Notes,
	}, nil
}

// SummaryResponse is the API shape of a Summary with derived paid and pending totals.
type SummaryResponse struct {
	TotalPostings int             `json:"totalPostings"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalPAC      int             `json:"totalPac"`
	TotalSEDEX    int             `json:"totalSedex"`
	TotalPIX      decimal.Decimal `json:"totalPix"`
	TotalCash     decimal.Decimal `json:"totalCash"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	TotalPending  decimal.Decimal `json:"totalPending"`
}

// ToSummaryResponse converts a domain summary.
func ToSummaryResponse(s domain.Summary) SummaryResponse {
	return SummaryResponse{
		TotalPostings: s.TotalPostings,
		TotalAmount:   s.TotalAmount,
		TotalPAC:      s.TotalPAC,
		TotalSEDEX:    s.TotalSEDEX,
		TotalPIX:      s.TotalPIX,
		TotalCash:     s.TotalCash,
		TotalPaid:     s.TotalPaid(),
		TotalPending:  s.TotalPending(),
	}
}

// ClosingResponse is the API shape of a daily closing.
type ClosingResponse struct {
	ClosingID    int64           `json:"closingID"`
	ClosingDate  civil.Date      `json:"closingDate"`
	Location     domain.Location `json:"location"`
	LocationName string          `json:"locationName"`
	Summary      SummaryResponse `json:"summary"`
	Operator     string          `json:"operator"`
	Notes        *string         `json:"notes,omitempty"`
	Revision     int             `json:"revision"`
	CreatedAt    time.Time       `json:"createdAt"`
	ClosedAt     time.Time       `json:"closedAt"`
}

// ToClosingResponse converts a domain closing.
func ToClosingResponse(c *domain.DailyClosing) ClosingResponse {
	return ClosingResponse{
		ClosingID:    c.ClosingID,
		ClosingDate:  c.ClosingDate,
		Location:     c.Location,
		LocationName: c.Location.Name(),
		Summary:      ToSummaryResponse(c.Summary),
		Operator:     c.Operator,
		Notes:        c.Notes,
		Revision:     c.Revision,
		CreatedAt:    c.CreatedAt,
		ClosedAt:     c.ClosedAt,
	}
}

// ListClosingsResponse wraps a list of closings.
type ListClosingsResponse struct {
	Closings []ClosingResponse `json:"closings"`
}

// ToListClosingsResponse converts domain closings.
func ToListClosingsResponse(closings []domain.DailyClosing) ListClosingsResponse {
	resp := ListClosingsResponse{Closings: make([]ClosingResponse, len(closings))}
	for i := range closings {
		resp.Closings[i] = ToClosingResponse(&closings[i])
	}
	return resp
}

// ClosingReportResponse is what the report generator renders: the closing and its postings.
type ClosingReportResponse struct {
	Closing  ClosingResponse   `json:"closing"`
	Postings []PostingResponse `json:"postings"`
}

// ToClosingReportResponse converts a domain closing report.
func ToClosingReportResponse(r *domain.ClosingReport) ClosingReportResponse {
	return ClosingReportResponse{
		Closing:  ToClosingResponse(&r.Closing),
		Postings: ToListPostingsResponse(r.Postings).Postings,
	}
}

// RevisionResponse is the API shape of a closing revision.
type RevisionResponse struct {
	Revision  int             `json:"revision"`
	Summary   SummaryResponse `json:"summary"`
	Operator  string          `json:"operator"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ListRevisionsResponse lists the revisions of one closing key.
type ListRevisionsResponse struct {
	Date      civil.Date         `json:"date"`
	Location  domain.Location    `json:"location"`
	Revisions []RevisionResponse `json:"revisions"`
}

// ToListRevisionsResponse converts domain revisions of key.
func ToListRevisionsResponse(key domain.ClosingKey, revisions []domain.ClosingRevision) ListRevisionsResponse {
	resp := ListRevisionsResponse{
		Date:      key.Date,
		Location:  key.Location,
		Revisions: make([]RevisionResponse, len(revisions)),
	}
	for i, r := range revisions {
		resp.Revisions[i] = RevisionResponse{
			Revision:  r.Revision,
			Summary:   ToSummaryResponse(r.Summary),
			Operator:  r.Operator,
			Notes:     r.Notes,
			CreatedAt: r.CreatedAt,
		}
	}
	return resp
}
