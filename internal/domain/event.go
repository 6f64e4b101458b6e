package domain

import "time"

type Event struct {
	ID               string `gorm:"primaryKey"`
	Title            string
	Date             string // YYYY-MM-DD
	StartTime        string
	EndTime          string
	Description      string
	IsPaid           bool
	Status           string `gorm:"index"` // active|draft|closed
	StreetAddress    string
	Latitude         float64
	Longitude        float64
	Remaining        int
	OrganisationName string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type TicketType struct {
	ID   uint `gorm:"primaryKey;autoIncrement"`
	Name string
}

// EventTicketType is a priced ticket-type row for an event, valid inside the
// [StartDate, EndDate] window.
type EventTicketType struct {
	ID           uint `gorm:"primaryKey;autoIncrement"`
	EventID      string `gorm:"index"`
	TicketTypeID uint   `gorm:"index"`
	TicketType   TicketType
	Price        int
	StartDate    time.Time
	EndDate      time.Time
}
