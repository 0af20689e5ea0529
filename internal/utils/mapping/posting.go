package mapping

import (
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	"github.com/SscSPs/postal_ledger/internal/models"
)

// ToModelPosting converts a domain posting into its stored shape.
func ToModelPosting(p domain.Posting) models.Posting {
	m := models.Posting{
		ID:           p.PostingID,
		PostingDate:  models.Date(p.PostingDate),
		Location:     int(p.Location),
		SenderName:   p.SenderName,
		TrackingCode: p.TrackingCode,
		Amount:       p.Amount,
		ServiceTier:  string(p.ServiceTier),
		Paid:         p.Paid,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
	}
	if p.PaymentMethod != nil {
		method := string(*p.PaymentMethod)
		m.PaymentMethod = &method
	}
	if p.PaymentDate != nil {
		date := models.Date(*p.PaymentDate)
		m.PaymentDate = &date
	}
	return m
}

// ToDomainPosting converts a stored posting into the domain type.
func ToDomainPosting(m models.Posting) domain.Posting {
	p := domain.Posting{
		PostingID:    m.ID,
		PostingDate:  m.PostingDate.Civil(),
		Location:     domain.Location(m.Location),
		SenderName:   m.SenderName,
		TrackingCode: m.TrackingCode,
		Amount:       m.Amount,
		ServiceTier:  domain.ServiceTier(m.ServiceTier),
		Paid:         m.Paid,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
	}
	if m.PaymentMethod != nil {
		method := domain.PaymentMethod(*m.PaymentMethod)
		p.PaymentMethod = &method
	}
	if m.PaymentDate != nil {
		date := m.PaymentDate.Civil()
		p.PaymentDate = &date
	}
	return p
}

// ToDomainPostingSlice converts stored postings, never returning nil.
func ToDomainPostingSlice(ms []models.Posting) []domain.Posting {
	postings := make([]domain.Posting, len(ms))
	for i, m := range ms {
		postings[i] = ToDomainPosting(m)
	}
	return postings
}
