package mapping

import (
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	"github.com/SscSPs/postal_ledger/internal/models"
)

func toModelTotals(s domain.Summary) models.ClosingTotals {
	return models.ClosingTotals{
		TotalPostings: s.TotalPostings,
		TotalAmount:   s.TotalAmount,
		TotalPAC:      s.TotalPAC,
		TotalSEDEX:    s.TotalSEDEX,
		TotalPIX:      s.TotalPIX,
		TotalCash:     s.TotalCash,
	}
}

func toDomainSummary(t models.ClosingTotals) domain.Summary {
	return domain.Summary{
		TotalPostings: t.TotalPostings,
		TotalAmount:   t.TotalAmount,
		TotalPAC:      t.TotalPAC,
		TotalSEDEX:    t.TotalSEDEX,
		TotalPIX:      t.TotalPIX,
		TotalCash:     t.TotalCash,
	}
}

// ToModelClosing converts a domain closing into its stored shape.
func ToModelClosing(c domain.DailyClosing) models.DailyClosing {
	return models.DailyClosing{
		ID:            c.ClosingID,
		ClosingDate:   models.Date(c.ClosingDate),
		Location:      int(c.Location),
		ClosingTotals: toModelTotals(c.Summary),
		Operator:      c.Operator,
		Notes:         c.Notes,
		Revision:      c.Revision,
		CreatedAt:     c.CreatedAt,
		ClosedAt:      c.ClosedAt,
	}
}

// ToDomainClosing converts a stored closing into the domain type.
func ToDomainClosing(m models.DailyClosing) domain.DailyClosing {
	return domain.DailyClosing{
		ClosingID:   m.ID,
		ClosingDate: m.ClosingDate.Civil(),
		Location:    domain.Location(m.Location),
		Summary:     toDomainSummary(m.ClosingTotals),
		Operator:    m.Operator,
		Notes:       m.Notes,
		Revision:    m.Revision,
		CreatedAt:   m.CreatedAt,
		ClosedAt:    m.ClosedAt,
	}
}

// ToDomainClosingSlice converts stored closings, never returning nil.
func ToDomainClosingSlice(ms []models.DailyClosing) []domain.DailyClosing {
	closings := make([]domain.DailyClosing, len(ms))
	for i, m := range ms {
		closings[i] = ToDomainClosing(m)
	}
	return closings
}

// ToModelClosingRevision converts a domain revision into its stored shape.
func ToModelClosingRevision(r domain.ClosingRevision) models.ClosingRevision {
	return models.ClosingRevision{
		ClosingDate:   models.Date(r.ClosingDate),
		Location:      int(r.Location),
		Revision:      r.Revision,
		ClosingTotals: toModelTotals(r.Summary),
		Operator:      r.Operator,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
	}
}

// ToDomainClosingRevisionSlice converts stored revisions, never returning nil.
func ToDomainClosingRevisionSlice(ms []models.ClosingRevision) []domain.ClosingRevision {
	revisions := make([]domain.ClosingRevision, len(ms))
	for i, m := range ms {
		revisions[i] = domain.ClosingRevision{
			ClosingDate: m.ClosingDate.Civil(),
			Location:    domain.Location(m.Location),
			Revision:    m.Revision,
			Summary:     toDomainSummary(m.ClosingTotals),
			Operator:    m.Operator,
			Notes:       m.Notes,
			CreatedAt:   m.CreatedAt,
		}
	}
	return revisions
}
