package dto

import (
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/apperrors"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
)

// ParseLocationParam parses an optional location code. Empty means all locations.
func ParseLocationParam(s string) (*domain.Location, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	code, err := strconv.Atoi(s)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("location must be 1 (Shopping Bolivia) or 2 (Hotel Family)")
	}
	loc, err := domain.ParseLocation(code)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// ParseDateOrToday parses a date parameter, defaulting to today in UTC when empty.
func ParseDateOrToday(s string) (civil.Date, error) {
	if strings.TrimSpace(s) == "" {
		return domain.Today(nil), nil
	}
	return domain.ParseDate(s)
}

// ParseClosingKey parses the :date and :location path segments of a closing.
func ParseClosingKey(date, location string) (domain.ClosingKey, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return domain.ClosingKey{}, err
	}
	loc, err := ParseLocationParam(location)
	if err != nil {
		return domain.ClosingKey{}, err
	}
	if loc == nil {
		return domain.ClosingKey{}, apperrors.NewValidationFailedError("location is required")
	}
	return domain.ClosingKey{Date: d, Location: *loc}, nil
}

// DateRangeParams are the from/to query parameters of range listings.
type DateRangeParams struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// Parse validates the bounds.
func (p DateRangeParams) Parse() (civil.Date, civil.Date, error) {
	from, err := domain.ParseDate(p.From)
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	to, err := domain.ParseDate(p.To)
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	if err := domain.ValidateDateRange(from, to); err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	return from, to, nil
}

// DayParams select one day and optionally one location.
type DayParams struct {
	Date     string `form:"date"`
	Location string `form:"location"`
}

// MonthParams select one month and optionally one location.
type MonthParams struct {
	Month    string `form:"month" binding:"required"`
	Location string `form:"location"`
}
