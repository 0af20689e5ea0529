package domain

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/apperrors"
)

// ISODateLayout is the canonical wire format for calendar dates.
const ISODateLayout = "2006-01-02"

// Layouts accepted on input. Front-desk forms historically sent day-first dates.
var acceptedDateLayouts = []string{
	ISODateLayout,
	"02/01/2006",
	"02-01-2006",
}

// ParseDate parses a calendar date in any accepted layout.
func ParseDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, apperrors.NewValidationFailedError("date is required")
	}
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return civil.DateOf(t), nil
		}
	}
	return civil.Date{}, apperrors.NewValidationFailedError(fmt.Sprintf("invalid date %q, use YYYY-MM-DD", s))
}

// Today returns the current calendar date in the given location (UTC if nil).
func Today(loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.UTC
	}
	return civil.DateOf(time.Now().In(loc))
}

// ValidateDateRange checks that both bounds are valid and start <= end.
func ValidateDateRange(start, end civil.Date) error {
	if !start.IsValid() || !end.IsValid() {
		return apperrors.NewValidationFailedError("date range bounds must be valid dates")
	}
	if start.After(end) {
		return apperrors.NewValidationFailedError("start date must be before or equal to end date")
	}
	return nil
}

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses YYYY-MM.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Month{}, apperrors.NewValidationFailedError(fmt.Sprintf("invalid month %q, use YYYY-MM", s))
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf returns the month containing d.
func MonthOf(d civil.Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// FirstDay returns the first calendar day of the month.
func (m Month) FirstDay() civil.Date {
	return civil.Date{Year: m.Year, Month: m.Month, Day: 1}
}

// LastDay returns the last calendar day of the month.
func (m Month) LastDay() civil.Date {
	return civil.Date{Year: m.Year, Month: m.Month + 1, Day: 1}.AddDays(-1)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// IsValid reports whether the month is a real calendar month.
func (m Month) IsValid() bool {
	return m.Month >= time.January && m.Month <= time.December
}

// MarshalJSON renders the month as "YYYY-MM".
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}
