package service

import (
	"context"
	"encoding/json"

	"github.com/you/eventpass/internal/domain"
	"github.com/you/eventpass/pkg/logger"
)

// PaymentCallback is the provider's post-payment payload. Ticket fields are
// present for single-event ticket purchases, booking ids for seasonal
// bookings; the recorded transaction metadata decides which flow settles.
type PaymentCallback struct {
	Email         string   `json:"email"`
	TransactionID string   `json:"transaction_id"`
	EventID       string   `json:"event_id"`
	TicketTypeID  uint     `json:"ticket_type_id"`
	Quantity      int      `json:"quantity"`
	BookingIDs    []string `json:"booking_ids"`
}

type PaymentConfirmResult struct {
	Message  string
	Ticket   *domain.Ticket
	Bookings []domain.Booking
}

type PaymentSvc struct {
	txns     TransactionRepository
	tickets  *TicketSvc
	bookings *BookingSvc
	log      logger.Logger
}

func NewPaymentSvc(txns TransactionRepository, tickets *TicketSvc, bookings *BookingSvc, log logger.Logger) *PaymentSvc {
	return &PaymentSvc{txns: txns, tickets: tickets, bookings: bookings, log: log}
}

// Confirm settles a payment callback against the pending transaction it
// references.
func (s *PaymentSvc) Confirm(ctx context.Context, cb PaymentCallback) (*PaymentConfirmResult, error) {
	if cb.TransactionID == "" {
		return nil, NewError(CodeValidation, "Missing transaction id")
	}
	txn, err := s.txns.ByID(ctx, cb.TransactionID)
	if err != nil {
		return nil, NewError(CodeNotFound, "Transaction not found")
	}

	var meta domain.TxnMetadata
	_ = json.Unmarshal([]byte(txn.Metadata), &meta)

	switch meta.Kind {
	case domain.TxnKindBooking:
		res, err := s.bookings.ConfirmAfterPayment(ctx, ConfirmBookingInput{
			Email:         cb.Email,
			TransactionID: cb.TransactionID,
			BookingIDs:    cb.BookingIDs,
		})
		if err != nil {
			return nil, err
		}
		return &PaymentConfirmResult{Message: res.Message, Bookings: res.Bookings}, nil
	case domain.TxnKindTicket:
		in := ConfirmTicketInput{
			Email:         cb.Email,
			EventID:       cb.EventID,
			TicketTypeID:  cb.TicketTypeID,
			Quantity:      cb.Quantity,
			TransactionID: cb.TransactionID,
		}
		if in.EventID == "" {
			in.EventID = meta.EventID
		}
		if in.TicketTypeID == 0 {
			in.TicketTypeID = meta.TicketTypeID
		}
		if in.Quantity == 0 {
			in.Quantity = meta.Quantity
		}
		res, err := s.tickets.ConfirmAfterPayment(ctx, in)
		if err != nil {
			return nil, err
		}
		return &PaymentConfirmResult{Message: res.Message, Ticket: res.Ticket}, nil
	default:
		s.log.Warn("transaction with unknown metadata kind", "transaction_id", txn.ID, "kind", meta.Kind)
		return nil, NewError(CodeValidation, "Unknown transaction kind")
	}
}
