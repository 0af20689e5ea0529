package models

import "time"

// StaffUser is the stored shape of a staff_users row.
type StaffUser struct {
	UserID       string    `gorm:"column:user_id;primaryKey"`
	Username     string    `gorm:"column:username"`
	PasswordHash string    `gorm:"column:password_hash"`
	Name         string    `gorm:"column:name"`
	Role         string    `gorm:"column:role"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

// TableName implements gorm's tabler.
func (StaffUser) TableName() string { return "staff_users" }
