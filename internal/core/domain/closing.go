package domain

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// ClosingKey identifies a daily closing. At most one DailyClosing exists per key.
type ClosingKey struct {
	Date     civil.Date `json:"date"`
	Location Location   `json:"location"`
}

func (k ClosingKey) String() string {
	return fmt.Sprintf("%s/%d", k.Date, int(k.Location))
}

// DailyClosing is the official reconciled summary for one (date, location).
// A repeat closing replaces the totals, operator and notes of the existing row.
type DailyClosing struct {
	ClosingID   int64      `json:"closingID"`
	ClosingDate civil.Date `json:"closingDate"`
	Location    Location   `json:"location"`
	Summary
	Operator  string    `json:"operator"`
	Notes     *string   `json:"notes,omitempty"`
	Revision  int       `json:"revision"`  // Number of times this key has been closed
	CreatedAt time.Time `json:"createdAt"` // First closing of the key
	ClosedAt  time.Time `json:"closedAt"`  // Latest closing of the key
}

// Key returns the closing key.
func (c DailyClosing) Key() ClosingKey {
	return ClosingKey{Date: c.ClosingDate, Location: c.Location}
}

// ClosingRevision is an append-only copy of a DailyClosing as written by one close call.
type ClosingRevision struct {
	ClosingDate civil.Date `json:"closingDate"`
	Location    Location   `json:"location"`
	Revision    int        `json:"revision"`
	Summary
	Operator  string    `json:"operator"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RevisionOf snapshots the closing as a revision.
func RevisionOf(c DailyClosing) ClosingRevision {
	return ClosingRevision{
		ClosingDate: c.ClosingDate,
		Location:    c.Location,
		Revision:    c.Revision,
		Summary:     c.Summary,
		Operator:    c.Operator,
		Notes:       c.Notes,
		CreatedAt:   c.ClosedAt,
	}
}

// CloseDayRequest carries the input of a closing.
type CloseDayRequest struct {
	Date     civil.Date `validate:"required"`
	Location Location   `validate:"oneof=1 2"`
	Operator string     `validate:"required,max=200"`
	Notes    string     `validate:"max=1000"`
}

// ClosingReport is consumed by the report generator: the closing and the postings it covers.
type ClosingReport struct {
	Closing  DailyClosing `json:"closing"`
	Postings []Posting    `json:"postings"` // Most recently created first
}
