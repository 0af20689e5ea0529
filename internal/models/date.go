package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Date is a calendar date column. It is written as YYYY-MM-DD on every backend
// and accepts both native DATE values and text on read.
type Date civil.Date

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = Date(civil.DateOf(v))
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		return fmt.Errorf("cannot scan NULL into a non-null date")
	default:
		return fmt.Errorf("cannot scan %T into a date", src)
	}
}

func (d *Date) parse(s string) error {
	if len(s) > len("2006-01-02") {
		s = s[:len("2006-01-02")]
	}
	parsed, err := civil.ParseDate(s)
	if err != nil {
		return fmt.Errorf("invalid stored date %q: %w", s, err)
	}
	*d = Date(parsed)
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return civil.Date(d).String(), nil
}

// Civil returns the date as a civil.Date.
func (d Date) Civil() civil.Date {
	return civil.Date(d)
}
