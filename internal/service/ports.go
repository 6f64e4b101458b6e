package service

import (
	"context"
	"time"

	"github.com/you/eventpass/internal/domain"
	"github.com/you/eventpass/internal/mailer"
	"github.com/you/eventpass/internal/payment"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, u *domain.User) error
	ByID(ctx context.Context, id string) (*domain.User, error)
}

type PricingRepository interface {
	PriceByType(ctx context.Context, eventID string, ticketTypeID uint) (*domain.EventTicketType, error)
	PriceByDate(ctx context.Context, eventID string, now time.Time) (*domain.EventTicketType, error)
}

type EventRepository interface {
	ByID(ctx context.Context, id string) (*domain.Event, error)
}

type TicketRepository interface {
	Insert(ctx context.Context, t *domain.Ticket) error
	ByID(ctx context.Context, id string) (*domain.Ticket, error)
}

type BookingRepository interface {
	InsertBatch(ctx context.Context, rows []domain.Booking) ([]domain.Booking, error)
	ConfirmByIDs(ctx context.Context, ids []string, transactionID string) error
	ByIDs(ctx context.Context, ids []string) ([]domain.Booking, error)
	DistinctDayPassDates(ctx context.Context, ids []string) ([]string, error)
}

type TransactionRepository interface {
	Insert(ctx context.Context, t *domain.Transaction) error
	ByID(ctx context.Context, id string) (*domain.Transaction, error)
	MarkSettled(ctx context.Context, id string) error
}

type SubscriptionRepository interface {
	InsertBatch(ctx context.Context, rows []domain.Subscription) ([]domain.Subscription, error)
}

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (string, error)
}

type Mailer interface {
	Send(ctx context.Context, m mailer.Mail) error
}

type QRGenerator interface {
	Encode(payload string) ([]byte, error)
}

// EventPublisher is satisfied by *mq.Publisher; services tolerate nil.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type ImageLister interface {
	List(ctx context.Context, eventID string) ([]string, error)
}
