package dto

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePostingRequest is the body of POST /postings.
// Dates accept YYYY-MM-DD, DD/MM/YYYY and DD-MM-YYYY; amount accepts a JSON number or string.
type CreatePostingRequest struct {
	PostingDate   string          `json:"postingDate"`
	Location      int             `json:"location" binding:"required"`
	SenderName    string          `json:"senderName" binding:"required"`
	TrackingCode  string          `json:"trackingCode" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	ServiceTier   string          `json:"serviceTier" binding:"required"`
	Paid          bool            `json:"paid"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	PaymentDate   string          `json:"paymentDate,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// ToNewPosting parses the request into the domain input. An empty posting date means today.
func (r CreatePostingRequest) ToNewPosting() (domain.NewPosting, error) {
	postingDate, err := ParseDateOrToday(r.PostingDate)
	if err != nil {
		return domain.NewPosting{}, err
	}
	loc, err := domain.ParseLocation(r.Location)
	if err != nil {
		return domain.NewPosting{}, err
	}
	tier, err := domain.ParseServiceTier(r.ServiceTier)
	if err != nil {
		return domain.NewPosting{}, err
	}

	np := domain.NewPosting{
		PostingDate:  postingDate,
		Location:     loc,
		SenderName:   r.SenderName,
		TrackingCode: r.TrackingCode,
		Amount:       r.Amount,
		ServiceTier:  tier,
		Paid:         r.Paid,
		Notes:        r.Notes,
	}
	if r.Paid {
		if r.PaymentMethod != "" {
			method, err := domain.ParsePaymentMethod(r.PaymentMethod)
			if err != nil {
				return domain.NewPosting{}, err
			}
			np.PaymentMethod = &method
		}
		if r.PaymentDate != "" {
			paymentDate, err := domain.ParseDate(r.PaymentDate)
			if err != nil {
				return domain.NewPosting{}, err
			}
			np.PaymentDate = &paymentDate
		}
	}
	return np, nil
}

// MarkPaidRequest is the body of POST /postings/:id/payment.
type MarkPaidRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	PaymentDate   string `json:"paymentDate"`
	Notes         string `json:"notes"`
	Correction    bool   `json:"correction"`
}

// ToPayment parses the request. An empty payment date means today.
func (r MarkPaidRequest) ToPayment() (domain.Payment, error) {
	method, err := domain.ParsePaymentMethod(r.PaymentMethod)
	if err != nil {
		return domain.Payment{}, err
	}
	date, err := ParseDateOrToday(r.PaymentDate)
	if err != nil {
		return domain.Payment{}, err
	}
	return domain.Payment{
		Method:     method,
		Date:       date,
		Notes:      r.Notes,
		Correction: r.Correction,
	}, nil
}

// PostingResponse is the API shape of a posting.
type PostingResponse struct {
	PostingID     int64           `json:"postingID"`
	PostingDate   civil.Date      `json:"postingDate"`
	Location      domain.Location `json:"location"`
	LocationName  string          `json:"locationName"`
	SenderName    string          `json:"senderName"`
	TrackingCode  string          `json:"trackingCode"`
	Amount        decimal.Decimal `json:"amount"`
	ServiceTier   string          `json:"serviceTier"`
	Paid          bool            `json:"paid"`
	PaymentMethod *string         `json:"paymentMethod,omitempty"`
	PaymentDate   *civil.Date     `json:"paymentDate,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToPostingResponse converts a domain posting.
func ToPostingResponse(p *domain.Posting) PostingResponse {
	resp := PostingResponse{
		PostingID:    p.PostingID,
		PostingDate:  p.PostingDate,
		Location:     p.Location,
		LocationName: p.Location.Name(),
		SenderName:   p.SenderName,
		TrackingCode: p.TrackingCode,
		Amount:       p.Amount,
		ServiceTier:  string(p.ServiceTier),
		Paid:         p.Paid,
		PaymentDate:  p.PaymentDate,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
	}
	if p.PaymentMethod != nil {
		method := string(*p.PaymentMethod)
		resp.PaymentMethod = &method
	}
	return resp
}

// ListPostingsResponse wraps a list of postings.
type ListPostingsResponse struct {
	Postings []PostingResponse `json:"postings"`
}

// ToListPostingsResponse converts domain postings, keeping their order.
func ToListPostingsResponse(postings []domain.Posting) ListPostingsResponse {
	resp := ListPostingsResponse{Postings: make([]PostingResponse, len(postings))}
	for i := range postings {
		resp.Postings[i] = ToPostingResponse(&postings[i])
	}
	return resp
}

// PendingResponse lists unpaid postings with their outstanding total.
type PendingResponse struct {
	Postings     []PostingResponse `json:"postings"`
	TotalPending decimal.Decimal   `json:"totalPending"`
}

// ToPendingResponse converts unpaid postings.
func ToPendingResponse(postings []domain.Posting) PendingResponse {
	total := decimal.Zero
	for _, p := range postings {
		total = total.Add(p.Amount)
	}
	return PendingResponse{
		Postings:     ToListPostingsResponse(postings).Postings,
		TotalPending: total,
	}
}
