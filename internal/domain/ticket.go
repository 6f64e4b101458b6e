package domain

import "time"

const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
)

type Ticket struct {
	ID            string `gorm:"primaryKey"`
	UserID        string `gorm:"index"`
	EventID       string `gorm:"index"`
	TicketTypeID  uint
	Quantity      int
	Price         int
	Status        string `gorm:"index"` // PENDING|CONFIRMED
	TransactionID string `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
