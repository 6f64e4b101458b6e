package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/you/eventpass/internal/domain"
	"github.com/you/eventpass/internal/events"
	"github.com/you/eventpass/internal/mailer"
	"github.com/you/eventpass/internal/payment"
	"github.com/you/eventpass/pkg/logger"
	"github.com/you/eventpass/pkg/validate"
)

// Submitted selection dates arrive as DD/MM/YYYY; stored dates are ISO.
const (
	selectionDateLayout = "02/01/2006"
	storedDateLayout    = "2006-01-02"
)

type BookingDeps struct {
	Users    *UserSvc
	Bookings BookingRepository
	Txns     TransactionRepository
	Gateway  PaymentGateway
	Mailer   Mailer
	QR       QRGenerator
	Pub      EventPublisher // nil disables event publishing

	BaseURL      string
	Currency     string
	StandardRate int
	PremiumRate  int

	Log logger.Logger
}

type BookingSvc struct {
	d BookingDeps
}

func NewBookingSvc(d BookingDeps) *BookingSvc {
	return &BookingSvc{d: d}
}

type CreateBookingInput struct {
	FirstName      string
	LastName       string
	Phone          string
	Email          string
	Age            *int
	Profession     *int
	Gender         *bool
	CouponID       string
	CouponDiscount int
	Selections     []domain.BookingSelection
}

type CreateBookingResult struct {
	PaymentURL string
	BookingIDs []string
}

// Create validates the booking form, creates pending rows for each selected
// date and hands the total off to the payment provider.
func (s *BookingSvc) Create(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error) {
	if in.FirstName == "" || in.LastName == "" || len(in.Selections) == 0 {
		return nil, NewError(CodeValidation, "Missing or malformed booking fields")
	}
	if !validate.BDPhoneNumber(in.Phone) {
		return nil, ErrInvalidPhone
	}
	if !validate.Email(in.Email) {
		return nil, ErrInvalidEmail
	}

	rows := make([]domain.Booking, 0, len(in.Selections))
	total := 0
	for _, sel := range in.Selections {
		d, err := time.Parse(selectionDateLayout, sel.Date)
		if err != nil {
			return nil, NewError(CodeValidation, "Invalid booking date: "+sel.Date)
		}
		if sel.StandardCount < 0 || sel.PremiumCount < 0 || (sel.StandardCount == 0 && sel.PremiumCount == 0) {
			return nil, NewError(CodeValidation, "Invalid seat counts for "+sel.Date)
		}
		amount := sel.StandardCount*s.d.StandardRate + sel.PremiumCount*s.d.PremiumRate
		total += amount
		rows = append(rows, domain.Booking{
			BookingDate:   d.Format(storedDateLayout),
			DayPass:       sel.DayPass,
			StandardCount: sel.StandardCount,
			PremiumCount:  sel.PremiumCount,
			Amount:        amount,
			CouponID:      in.CouponID,
			Status:        domain.StatusPending,
		})
	}

	total -= in.CouponDiscount
	if total <= 0 {
		return nil, NewError(CodeValidation, "Invalid booking amount")
	}
	// the coupon applies once per booking, recorded on the first row
	rows[0].CouponDiscount = in.CouponDiscount

	userID, err := s.d.Users.CreateOrReuse(ctx, CreateUserInput{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      in.Phone,
		Age:        in.Age,
		Profession: in.Profession,
		Gender:     in.Gender,
	})
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].UserID = userID
	}

	inserted, err := s.d.Bookings.InsertBatch(ctx, rows)
	if err != nil {
		return nil, NewError(CodeStorage, "Failed to create booking: "+err.Error())
	}
	ids := make([]string, len(inserted))
	for i, b := range inserted {
		ids[i] = b.ID
	}

	meta := domain.TxnMetadata{Kind: domain.TxnKindBooking, BookingIDs: ids}
	rawMeta, _ := json.Marshal(meta)
	txn := &domain.Transaction{
		ID:       uuid.NewString(),
		UserID:   userID,
		Amount:   total,
		Currency: s.d.Currency,
		Status:   domain.StatusPending,
		Metadata: string(rawMeta),
	}
	if err := s.d.Txns.Insert(ctx, txn); err != nil {
		return nil, NewError(CodeStorage, "Failed to record transaction: "+err.Error())
	}

	url, err := s.d.Gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		ReferenceID:   txn.ID,
		Amount:        total,
		Currency:      s.d.Currency,
		CustomerEmail: in.Email,
		CallbackURL:   s.d.BaseURL + "/api/payments/confirm",
		Metadata: map[string]any{
			"kind":       domain.TxnKindBooking,
			"user_id":    userID,
			"bookingIds": ids,
		},
	})
	if err != nil {
		return nil, NewError(CodeExternal, err.Error())
	}

	s.publish(ctx, events.RKBookingCreated, events.BookingCreated{
		BookingIDs: ids, UserID: userID, TransactionID: txn.ID, Amount: total,
	})
	return &CreateBookingResult{PaymentURL: url, BookingIDs: ids}, nil
}

type ConfirmBookingInput struct {
	Email         string
	TransactionID string
	BookingIDs    []string
}

type ConfirmBookingResult struct {
	Message   string
	Bookings  []domain.Booking
	EmailSent bool
}

// ConfirmAfterPayment marks the pending rows confirmed, emails the QR codes
// and settles the transaction.
func (s *BookingSvc) ConfirmAfterPayment(ctx context.Context, in ConfirmBookingInput) (*ConfirmBookingResult, error) {
	txn, err := s.d.Txns.ByID(ctx, in.TransactionID)
	if err != nil {
		return nil, NewError(CodeNotFound, "Transaction not found")
	}

	ids := in.BookingIDs
	var meta domain.TxnMetadata
	if err := json.Unmarshal([]byte(txn.Metadata), &meta); err == nil && len(meta.BookingIDs) > 0 {
		ids = meta.BookingIDs
	}
	if len(ids) == 0 {
		return nil, NewError(CodeValidation, "No bookings referenced by this transaction")
	}

	if err := s.d.Bookings.ConfirmByIDs(ctx, ids, txn.ID); err != nil {
		return nil, NewError(CodeStorage, "Failed to confirm booking: "+err.Error())
	}
	if err := s.d.Txns.MarkSettled(ctx, txn.ID); err != nil {
		return nil, NewError(CodeStorage, "Failed to settle transaction: "+err.Error())
	}

	firstName := ""
	if u, err := s.d.Users.ByID(ctx, txn.UserID); err == nil {
		firstName = u.FirstName
	}

	rows, err := s.d.Bookings.ByIDs(ctx, ids)
	if err != nil {
		return nil, NewError(CodeStorage, "Failed to load bookings: "+err.Error())
	}

	attachments := make([]mailer.Attachment, 0, len(ids))
	for _, id := range ids {
		png, err := s.d.QR.Encode(fmt.Sprintf("%s/verify?bookingId=%s", s.d.BaseURL, id))
		if err != nil {
			return nil, NewError(CodeExternal, "Failed to generate booking QR code")
		}
		attachments = append(attachments, mailer.Attachment{Name: "booking-" + id + ".png", Data: png})
	}

	greeting := firstName
	if greeting == "" {
		greeting = "there"
	}
	err = s.d.Mailer.Send(ctx, mailer.Mail{
		To:      in.Email,
		Subject: "Your booking is confirmed",
		Body: fmt.Sprintf("<p>Hi %s,</p><p>Your booking is confirmed. One QR code per date is attached.</p>",
			greeting),
		Attachments: attachments,
	})
	if err != nil {
		return nil, NewError(CodeExternal, "Failed to send confirmation email")
	}

	s.publish(ctx, events.RKBookingConfirmed, events.BookingConfirmed{
		BookingIDs: ids, UserID: txn.UserID, TransactionID: txn.ID,
	})
	s.publish(ctx, events.RKPaymentSettled, events.PaymentSettled{
		TransactionID: txn.ID, UserID: txn.UserID, Amount: txn.Amount, Currency: txn.Currency,
	})

	return &ConfirmBookingResult{
		Message:   fmt.Sprintf("Booking confirmed for %s. A confirmation email has been sent.", greeting),
		Bookings:  rows,
		EmailSent: true,
	}, nil
}

func (s *BookingSvc) publish(ctx context.Context, key string, v any) {
	if s.d.Pub == nil {
		return
	}
	if err := s.d.Pub.PublishJSON(ctx, key, v); err != nil {
		s.d.Log.Warn("publish event failed", "key", key, "error", err)
	}
}
