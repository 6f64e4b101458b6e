package domain

import "time"

// Subscription is a day pass: one row per user per distinct booking date.
type Subscription struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Date      string `gorm:"index"` // YYYY-MM-DD
	CreatedAt time.Time
}
