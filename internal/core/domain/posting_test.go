package domain_test

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/apperrors"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPosting_Validate(t *testing.T) {
	pix := domain.PaymentPIX
	bogus := domain.PaymentMethod("CHEQUE")

	tests := []struct {
		name    string
		mutate  func(p *domain.Posting)
		wantErr bool
		errMsg  string
	}{
		{name: "valid unpaid", mutate: func(p *domain.Posting) {}},
		{name: "valid paid", mutate: func(p *domain.Posting) {
			p.Paid = true
			p.PaymentMethod = &pix
			p.PaymentDate = &today
		}},
		{name: "missing sender", mutate: func(p *domain.Posting) { p.SenderName = "  " }, wantErr: true, errMsg: "sender name"},
		{name: "missing tracking code", mutate: func(p *domain.Posting) { p.TrackingCode = "" }, wantErr: true, errMsg: "tracking code"},
		{name: "zero amount", mutate: func(p *domain.Posting) { p.Amount = decimal.Zero }, wantErr: true, errMsg: "amount"},
		{name: "negative amount", mutate: func(p *domain.Posting) { p.Amount = decimal.NewFromInt(-1) }, wantErr: true, errMsg: "amount"},
		{name: "unknown location", mutate: func(p *domain.Posting) { p.Location = 3 }, wantErr: true, errMsg: "location"},
		{name: "unknown tier", mutate: func(p *domain.Posting) { p.ServiceTier = "EXPRESS" }, wantErr: true, errMsg: "service tier"},
		{name: "paid without method", mutate: func(p *domain.Posting) {
			p.Paid = true
			p.PaymentDate = &today
		}, wantErr: true, errMsg: "payment method"},
		{name: "paid with unknown method", mutate: func(p *domain.Posting) {
			p.Paid = true
			p.PaymentMethod = &bogus
			p.PaymentDate = &today
		}, wantErr: true, errMsg: "payment method"},
		{name: "unpaid with payment details", mutate: func(p *domain.Posting) { p.PaymentMethod = &pix }, wantErr: true, errMsg: "unpaid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := unpaid("BR1", domain.TierPAC, "15.50")
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewPosting_Normalize(t *testing.T) {
	pix := domain.PaymentPIX
	in := domain.NewPosting{
		PostingDate:   today,
		Location:      domain.HotelFamily,
		SenderName:    "  Maria  ",
		TrackingCode:  " br123xy ",
		Amount:        decimal.RequireFromString("15.5"),
		ServiceTier:   domain.TierPAC,
		PaymentMethod: &pix,
		PaymentDate:   &today,
		Notes:         "   ",
	}

	got := in.Normalize()

	assert.Equal(t, "Maria", got.SenderName)
	assert.Equal(t, "BR123XY", got.TrackingCode)
	assert.Nil(t, got.PaymentMethod, "unpaid postings drop payment method")
	assert.Nil(t, got.PaymentDate, "unpaid postings drop payment date")
	assert.Nil(t, got.ToPosting().Notes)
}

func TestParsers(t *testing.T) {
	loc, err := domain.ParseLocation(2)
	assert.NoError(t, err)
	assert.Equal(t, domain.HotelFamily, loc)
	_, err = domain.ParseLocation(0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	tier, err := domain.ParseServiceTier(" sedex ")
	assert.NoError(t, err)
	assert.Equal(t, domain.TierSEDEX, tier)
	_, err = domain.ParseServiceTier("carta")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	method, err := domain.ParsePaymentMethod("dinheiro")
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentCash, method)
	_, err = domain.ParsePaymentMethod("card")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	amount, err := domain.ParseAmount("15,50")
	assert.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("15.50")))
	assert.True(t, domain.HasValidScale(amount))
	assert.False(t, domain.HasValidScale(decimal.RequireFromString("1.005")))
}

func TestParseDate(t *testing.T) {
	want := civil.Date{Year: 2025, Month: 3, Day: 4}
	for _, in := range []string{"2025-03-04", "04/03/2025", "04-03-2025"} {
		got, err := domain.ParseDate(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := domain.ParseDate("03/2025")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = domain.ParseDate("")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMonth(t *testing.T) {
	m, err := domain.ParseMonth("2024-02")
	assert.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2024, Month: 2, Day: 1}, m.FirstDay())
	assert.Equal(t, civil.Date{Year: 2024, Month: 2, Day: 29}, m.LastDay())
	assert.Equal(t, "2024-02", m.String())

	dec := domain.Month{Year: 2024, Month: 12}
	assert.Equal(t, civil.Date{Year: 2024, Month: 12, Day: 31}, dec.LastDay())

	_, err = domain.ParseMonth("2024-13")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestStaffRole_Satisfies(t *testing.T) {
	assert.True(t, domain.RoleAdmin.Satisfies(domain.RoleBackOffice))
	assert.True(t, domain.RoleBackOffice.Satisfies(domain.RoleFrontDesk))
	assert.False(t, domain.RoleFrontDesk.Satisfies(domain.RoleBackOffice))
	assert.False(t, domain.StaffRole("GUEST").Satisfies(domain.RoleFrontDesk))
}
