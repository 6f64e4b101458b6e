package domain

import "time"

// Metadata kinds recorded on a transaction; the payment callback dispatches
// on this.
const (
	TxnKindTicket  = "ticket"
	TxnKindBooking = "booking"
)

type Transaction struct {
	ID        string `gorm:"primaryKey"` // provider reference
	UserID    string `gorm:"index"`
	Amount    int
	Currency  string
	Status    string
	Metadata  string // JSON TxnMetadata
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TxnMetadata links a transaction to the rows it settles.
type TxnMetadata struct {
	Kind         string   `json:"kind"`
	EventID      string   `json:"event_id,omitempty"`
	TicketTypeID uint     `json:"ticket_type_id,omitempty"`
	Quantity     int      `json:"quantity,omitempty"`
	BookingIDs   []string `json:"bookingIds,omitempty"`
}
