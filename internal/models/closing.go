package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosingTotals are the aggregate columns shared by closings and their revisions.
type ClosingTotals struct {
	TotalPostings int             `gorm:"column:total_postings"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount"`
	TotalPAC      int             `gorm:"column:total_pac"`
	TotalSEDEX    int             `gorm:"column:total_sedex"`
	TotalPIX      decimal.Decimal `gorm:"column:total_pix"`
	TotalCash     decimal.Decimal `gorm:"column:total_cash"`
}

// DailyClosing is the stored shape of a daily_closings row.
type DailyClosing struct {
	ID            int64 `gorm:"column:id;primaryKey;autoIncrement"`
	ClosingDate   Date  `gorm:"column:closing_date"`
	Location      int   `gorm:"column:location"`
	ClosingTotals `gorm:"embedded"`
	Operator      string    `gorm:"column:operator"`
	Notes         *string   `gorm:"column:notes"`
	Revision      int       `gorm:"column:revision"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	ClosedAt      time.Time `gorm:"column:closed_at"`
}

// TableName implements gorm's tabler.
func (DailyClosing) TableName() string { return "daily_closings" }

// ClosingRevision is the stored shape of a closing_revisions row.
type ClosingRevision struct {
	ClosingDate   Date `gorm:"column:closing_date;primaryKey"`
	Location      int  `gorm:"column:location;primaryKey"`
	Revision      int  `gorm:"column:revision;primaryKey"`
	ClosingTotals `gorm:"embedded"`
	Operator      string    `gorm:"column:operator"`
	Notes         *string   `gorm:"column:notes"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

// TableName implements gorm's tabler.
func (ClosingRevision) TableName() string { return "closing_revisions" }
