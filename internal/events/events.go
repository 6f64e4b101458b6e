package events

import (
	"encoding/json"
	"fmt"
)

const (
	RKTicketIssued     = "ticket.issued"
	RKBookingCreated   = "booking.created"
	RKBookingConfirmed = "booking.confirmed"
	RKPaymentSettled   = "payment.settled"
)

type TicketIssued struct {
	TicketID string `json:"ticket_id"`
	UserID   string `json:"user_id"`
	EventID  string `json:"event_id"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"`
}

type BookingCreated struct {
	BookingIDs    []string `json:"booking_ids"`
	UserID        string   `json:"user_id"`
	TransactionID string   `json:"transaction_id"`
	Amount        int      `json:"amount"`
}

type BookingConfirmed struct {
	BookingIDs    []string `json:"booking_ids"`
	UserID        string   `json:"user_id"`
	TransactionID string   `json:"transaction_id"`
}

type PaymentSettled struct {
	TransactionID string `json:"transaction_id"`
	UserID        string `json:"user_id"`
	Amount        int    `json:"amount"`
	Currency      string `json:"currency"`
}

// Decode unmarshals an event payload into its typed form.
func Decode[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
