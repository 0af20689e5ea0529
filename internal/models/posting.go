package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Posting is the stored shape of a posting row.
type Posting struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	PostingDate   Date            `gorm:"column:posting_date"`
	Location      int             `gorm:"column:location"`
	SenderName    string          `gorm:"column:sender_name"`
	TrackingCode  string          `gorm:"column:tracking_code"`
	Amount        decimal.Decimal `gorm:"column:amount"`
	ServiceTier   string          `gorm:"column:service_tier"`
	PaymentMethod *string         `gorm:"column:payment_method"`
	Paid          bool            `gorm:"column:paid"`
	PaymentDate   *Date           `gorm:"column:payment_date"`
	Notes         *string         `gorm:"column:notes"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
}

// TableName implements gorm's tabler.
func (Posting) TableName() string { return "postings" }
