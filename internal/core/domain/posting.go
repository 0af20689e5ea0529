package domain

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Location is one of the two fixed service points where parcels are accepted.
type Location int

const (
	ShoppingBolivia Location = 1
	HotelFamily     Location = 2
)

// Locations lists every valid location in code order.
var Locations = []Location{ShoppingBolivia, HotelFamily}

// ParseLocation converts a numeric location code into a Location.
func ParseLocation(code int) (Location, error) {
	loc := Location(code)
	if !loc.IsValid() {
		return 0, apperrors.NewValidationFailedError(fmt.Sprintf("unknown location %d", code))
	}
	return loc, nil
}

// IsValid reports whether l is one of the fixed locations.
func (l Location) IsValid() bool {
	return l == ShoppingBolivia || l == HotelFamily
}

// Name returns the human readable name used on reports.
func (l Location) Name() string {
	switch l {
	case ShoppingBolivia:
		return "Shopping Bolivia"
	case HotelFamily:
		return "Hotel Family"
	default:
		return fmt.Sprintf("Location %d", int(l))
	}
}

// ServiceTier is the postal service level chosen for a posting.
type ServiceTier string

const (
	TierPAC   ServiceTier = "PAC"
	TierSEDEX ServiceTier = "SEDEX"
)

// ParseServiceTier normalizes and validates a tier name.
func ParseServiceTier(s string) (ServiceTier, error) {
	tier := ServiceTier(strings.ToUpper(strings.TrimSpace(s)))
	if tier != TierPAC && tier != TierSEDEX {
		return "", apperrors.NewValidationFailedError(fmt.Sprintf("unknown service tier %q", s))
	}
	return tier, nil
}

// PaymentMethod is how a posting's fee was settled.
type PaymentMethod string

const (
	PaymentPIX  PaymentMethod = "PIX"
	PaymentCash PaymentMethod = "CASH"
)

// ParsePaymentMethod normalizes and validates a payment method. DINHEIRO is accepted for CASH.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PIX":
		return PaymentPIX, nil
	case "CASH", "DINHEIRO":
		return PaymentCash, nil
	default:
		return "", apperrors.NewValidationFailedError(fmt.Sprintf("unknown payment method %q", s))
	}
}

// Posting is a single parcel accepted for shipment.
type Posting struct {
	PostingID     int64           `json:"postingID"`
	PostingDate   civil.Date      `json:"postingDate"`
	Location      Location        `json:"location"`
	SenderName    string          `json:"senderName"`
	TrackingCode  string          `json:"trackingCode"` // Unique, uppercase
	Amount        decimal.Decimal `json:"amount"`
	ServiceTier   ServiceTier     `json:"serviceTier"`
	PaymentMethod *PaymentMethod  `json:"paymentMethod,omitempty"` // Set only when Paid
	Paid          bool            `json:"paid"`
	PaymentDate   *civil.Date     `json:"paymentDate,omitempty"` // Set only when Paid
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Validate checks the posting invariants that every store relies on.
func (p Posting) Validate() error {
	if !p.PostingDate.IsValid() {
		return apperrors.NewValidationFailedError("posting date is required")
	}
	if !p.Location.IsValid() {
		return apperrors.NewValidationFailedError(fmt.Sprintf("unknown location %d", int(p.Location)))
	}
	if strings.TrimSpace(p.SenderName) == "" {
		return apperrors.NewValidationFailedError("sender name is required")
	}
	if strings.TrimSpace(p.TrackingCode) == "" {
		return apperrors.NewValidationFailedError("tracking code is required")
	}
	if !p.Amount.IsPositive() {
		return apperrors.NewValidationFailedError("amount must be greater than zero")
	}
	if p.ServiceTier != TierPAC && p.ServiceTier != TierSEDEX {
		return apperrors.NewValidationFailedError(fmt.Sprintf("unknown service tier %q", p.ServiceTier))
	}
	if p.Paid {
		if p.PaymentMethod == nil || p.PaymentDate == nil {
			return apperrors.NewValidationFailedError("paid postings require payment method and payment date")
		}
		if *p.PaymentMethod != PaymentPIX && *p.PaymentMethod != PaymentCash {
			return apperrors.NewValidationFailedError(fmt.Sprintf("unknown payment method %q", *p.PaymentMethod))
		}
		if !p.PaymentDate.IsValid() {
			return apperrors.NewValidationFailedError("payment date is invalid")
		}
	} else if p.PaymentMethod != nil || p.PaymentDate != nil {
		return apperrors.NewValidationFailedError("unpaid postings cannot carry payment details")
	}
	return nil
}

// NewPosting carries the fields supplied by front-desk staff when a parcel is accepted.
type NewPosting struct {
	PostingDate   civil.Date      `validate:"required"`
	Location      Location        `validate:"oneof=1 2"`
	SenderName    string          `validate:"required,max=200"`
	TrackingCode  string          `validate:"required,max=64"`
	Amount        decimal.Decimal `validate:"gt=0"`
	ServiceTier   ServiceTier     `validate:"oneof=PAC SEDEX"`
	Paid          bool
	PaymentMethod *PaymentMethod `validate:"required_if=Paid true"`
	PaymentDate   *civil.Date    `validate:"required_if=Paid true"`
	Notes         string         `validate:"max=1000"`
}

// Normalize trims free text, uppercases the tracking code and clears payment
// fields on unpaid postings.
func (n NewPosting) Normalize() NewPosting {
	n.SenderName = strings.TrimSpace(n.SenderName)
	n.TrackingCode = strings.ToUpper(strings.TrimSpace(n.TrackingCode))
	n.Notes = strings.TrimSpace(n.Notes)
	if !n.Paid {
		n.PaymentMethod = nil
		n.PaymentDate = nil
	}
	return n
}

// ToPosting builds the posting to persist. ID and CreatedAt are assigned by the store.
func (n NewPosting) ToPosting() Posting {
	p := Posting{
		PostingDate:   n.PostingDate,
		Location:      n.Location,
		SenderName:    n.SenderName,
		TrackingCode:  n.TrackingCode,
		Amount:        n.Amount,
		ServiceTier:   n.ServiceTier,
		Paid:          n.Paid,
		PaymentMethod: n.PaymentMethod,
		PaymentDate:   n.PaymentDate,
	}
	if n.Notes != "" {
		notes := n.Notes
		p.Notes = &notes
	}
	return p
}

// Payment records how and when a posting was settled.
type Payment struct {
	Method PaymentMethod `validate:"oneof=PIX CASH"`
	Date   civil.Date    `validate:"required"`
	Notes  string        `validate:"max=1000"`
	// Correction allows overwriting the payment of an already paid posting.
	Correction bool
}

// MaxAmountScale is the number of fractional digits allowed on currency amounts.
const MaxAmountScale = 2

// ParseAmount parses a currency amount exactly.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, apperrors.NewValidationFailedError(fmt.Sprintf("invalid amount %q", s))
	}
	return amount, nil
}

// HasValidScale reports whether the amount has at most MaxAmountScale fractional digits.
func HasValidScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(MaxAmountScale))
}
