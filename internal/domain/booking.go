package domain

import "time"

// Booking is one date row of a seasonal multi-date booking. Rows live in the
// configured booking schema ("seasonal" by default).
type Booking struct {
	ID             string `gorm:"primaryKey"`
	UserID         string `gorm:"index"`
	BookingDate    string `gorm:"index"` // YYYY-MM-DD
	DayPass        bool   `gorm:"index"`
	StandardCount  int
	PremiumCount   int
	Amount         int
	CouponID       string
	CouponDiscount int
	Status         string `gorm:"index"` // PENDING|CONFIRMED
	TransactionID  string `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BookingSelection is the client-submitted shape for one date of a booking
// form, JSON-encoded in the "bookings" field.
type BookingSelection struct {
	Date          string `json:"date"`
	DayPass       bool   `json:"day_pass"`
	StandardCount int    `json:"standard_count"`
	PremiumCount  int    `json:"premium_count"`
}
