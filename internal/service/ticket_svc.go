package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/you/eventpass/internal/domain"
	"github.com/you/eventpass/internal/events"
	"github.com/you/eventpass/internal/mailer"
	"github.com/you/eventpass/internal/payment"
	"github.com/you/eventpass/pkg/logger"
	"github.com/you/eventpass/pkg/validate"
)

// TicketDeps bundles the collaborators of the ticket orchestrator.
type TicketDeps struct {
	Users   *UserSvc
	Pricing *PricingSvc
	Tickets TicketRepository
	Txns    TransactionRepository
	Gateway PaymentGateway
	Mailer  Mailer
	QR      QRGenerator
	Pub     EventPublisher // nil disables event publishing

	BaseURL    string
	HashSecret string
	Currency   string

	Log logger.Logger
}

type TicketSvc struct {
	d TicketDeps
}

func NewTicketSvc(d TicketDeps) *TicketSvc {
	return &TicketSvc{d: d}
}

type RegisterTicketInput struct {
	EventID      string
	Quantity     int
	TicketPrice  int
	TicketTypeID uint
	SecureHash   string
	FirstName    string
	LastName     string
	Phone        string
	Email        string
}

type RegisterTicketResult struct {
	PaymentURL string
	TicketURL  string
	TicketID   string
}

// Register runs the registration pipeline: validate, verify integrity hash,
// resolve price, resolve user, then either hand off to the payment provider
// or issue the ticket directly for free events.
func (s *TicketSvc) Register(ctx context.Context, in RegisterTicketInput) (*RegisterTicketResult, error) {
	if in.EventID == "" || in.FirstName == "" || in.LastName == "" || in.Quantity < 1 {
		return nil, NewError(CodeValidation, "Missing or malformed registration fields")
	}
	if !validate.BDPhoneNumber(in.Phone) {
		return nil, ErrInvalidPhone
	}
	if !validate.Email(in.Email) {
		return nil, ErrInvalidEmail
	}

	// Integrity check runs before any storage access: the submitted
	// price/type must match the hash issued with the form.
	if !VerifyEventHash(s.d.HashSecret, in.EventID, in.TicketPrice, in.TicketTypeID, in.SecureHash) {
		s.d.Log.Warn("integrity hash mismatch", "event_id", in.EventID, "email", in.Email)
		return nil, ErrTampered
	}

	price, err := s.d.Pricing.PriceForEvent(ctx, in.EventID, in.TicketTypeID)
	if err != nil {
		return nil, err
	}

	userID, err := s.d.Users.CreateOrReuse(ctx, CreateUserInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
	})
	if err != nil {
		return nil, err
	}

	if price.Price > 0 {
		url, err := s.startCheckout(ctx, userID, in, price)
		if err != nil {
			return nil, err
		}
		return &RegisterTicketResult{PaymentURL: url}, nil
	}

	return s.issueFreeTicket(ctx, userID, in, price)
}

func (s *TicketSvc) startCheckout(ctx context.Context, userID string, in RegisterTicketInput, price *TicketPrice) (string, error) {
	meta := domain.TxnMetadata{
		Kind:         domain.TxnKindTicket,
		EventID:      in.EventID,
		TicketTypeID: price.TicketTypeID,
		Quantity:     in.Quantity,
	}
	rawMeta, _ := json.Marshal(meta)

	txn := &domain.Transaction{
		ID:       uuid.NewString(),
		UserID:   userID,
		Amount:   price.Price * in.Quantity,
		Currency: s.d.Currency,
		Status:   domain.StatusPending,
		Metadata: string(rawMeta),
	}
	if err := s.d.Txns.Insert(ctx, txn); err != nil {
		return "", NewError(CodeStorage, "Failed to record transaction: "+err.Error())
	}

	url, err := s.d.Gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		ReferenceID:   txn.ID,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		CustomerEmail: in.Email,
		CallbackURL:   s.d.BaseURL + "/api/payments/confirm",
		Metadata: map[string]any{
			"kind":           domain.TxnKindTicket,
			"user_id":        userID,
			"event_id":       in.EventID,
			"ticket_type_id": price.TicketTypeID,
			"quantity":       in.Quantity,
		},
	})
	if err != nil {
		return "", NewError(CodeExternal, err.Error())
	}
	return url, nil
}

func (s *TicketSvc) issueFreeTicket(ctx context.Context, userID string, in RegisterTicketInput, price *TicketPrice) (*RegisterTicketResult, error) {
	t := &domain.Ticket{
		UserID:       userID,
		EventID:      in.EventID,
		TicketTypeID: price.TicketTypeID,
		Quantity:     in.Quantity,
		Price:        0,
		Status:       domain.StatusConfirmed,
	}
	if err := s.d.Tickets.Insert(ctx, t); err != nil {
		return nil, NewError(CodeStorage, "Failed to create ticket: "+err.Error())
	}

	if err := s.emailTicket(ctx, in.Email, in.FirstName, t); err != nil {
		return nil, err
	}
	s.publish(ctx, events.RKTicketIssued, events.TicketIssued{
		TicketID: t.ID, UserID: userID, EventID: t.EventID, Quantity: t.Quantity, Price: 0,
	})

	return &RegisterTicketResult{
		TicketURL: fmt.Sprintf("%s/ticket?ticketId=%s", s.d.BaseURL, t.ID),
		TicketID:  t.ID,
	}, nil
}

type ConfirmTicketInput struct {
	Email         string
	EventID       string
	TicketTypeID  uint
	Quantity      int
	TransactionID string
}

type ConfirmTicketResult struct {
	Ticket    *domain.Ticket
	EmailSent bool
	Message   string
}

// ConfirmAfterPayment issues the ticket once the provider reports the
// transaction settled.
func (s *TicketSvc) ConfirmAfterPayment(ctx context.Context, in ConfirmTicketInput) (*ConfirmTicketResult, error) {
	txn, err := s.d.Txns.ByID(ctx, in.TransactionID)
	if err != nil {
		return nil, NewError(CodeNotFound, "Transaction not found")
	}

	t := &domain.Ticket{
		UserID:        txn.UserID,
		EventID:       in.EventID,
		TicketTypeID:  in.TicketTypeID,
		Quantity:      in.Quantity,
		Price:         txn.Amount,
		Status:        domain.StatusConfirmed,
		TransactionID: txn.ID,
	}
	if err := s.d.Tickets.Insert(ctx, t); err != nil {
		return nil, NewError(CodeStorage, "Failed to create ticket: "+err.Error())
	}
	if err := s.d.Txns.MarkSettled(ctx, txn.ID); err != nil {
		return nil, NewError(CodeStorage, "Failed to settle transaction: "+err.Error())
	}

	firstName := ""
	if u, err := s.d.Users.ByID(ctx, txn.UserID); err == nil {
		firstName = u.FirstName
	}
	if err := s.emailTicket(ctx, in.Email, firstName, t); err != nil {
		return nil, err
	}

	s.publish(ctx, events.RKTicketIssued, events.TicketIssued{
		TicketID: t.ID, UserID: txn.UserID, EventID: t.EventID, Quantity: t.Quantity, Price: t.Price,
	})
	s.publish(ctx, events.RKPaymentSettled, events.PaymentSettled{
		TransactionID: txn.ID, UserID: txn.UserID, Amount: txn.Amount, Currency: txn.Currency,
	})

	return &ConfirmTicketResult{
		Ticket:    t,
		EmailSent: true,
		Message:   "Ticket confirmed. A confirmation email has been sent.",
	}, nil
}

func (s *TicketSvc) emailTicket(ctx context.Context, email, firstName string, t *domain.Ticket) error {
	png, err := s.d.QR.Encode(fmt.Sprintf("%s/verify?ticketId=%s", s.d.BaseURL, t.ID))
	if err != nil {
		return NewError(CodeExternal, "Failed to generate ticket QR code")
	}
	greeting := firstName
	if greeting == "" {
		greeting = "there"
	}
	err = s.d.Mailer.Send(ctx, mailer.Mail{
		To:      email,
		Subject: "Your ticket is confirmed",
		Body: fmt.Sprintf("<p>Hi %s,</p><p>Your ticket is confirmed. Present the attached QR code at the gate.</p>",
			greeting),
		Attachments: []mailer.Attachment{{Name: "ticket-" + t.ID + ".png", Data: png}},
	})
	if err != nil {
		return NewError(CodeExternal, "Failed to send confirmation email")
	}
	return nil
}

func (s *TicketSvc) publish(ctx context.Context, key string, v any) {
	if s.d.Pub == nil {
		return
	}
	if err := s.d.Pub.PublishJSON(ctx, key, v); err != nil {
		s.d.Log.Warn("publish event failed", "key", key, "error", err)
	}
}
