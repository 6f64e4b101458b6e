package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/you/eventpass/internal/domain"
	"github.com/you/eventpass/internal/mailer"
	"github.com/you/eventpass/internal/payment"
)

var domainNotFound = errors.New("record not found")

// Hand-rolled fakes for the service ports, one per collaborator.

type fakeUserRepo struct {
	users     map[string]*domain.User // keyed by lowercased email
	findErr   error
	insertErr error
	findCalls int
	inserted  []*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.users[strings.ToLower(email)], nil
}

func (f *fakeUserRepo) Insert(_ context.Context, u *domain.User) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if u.ID == "" {
		u.ID = "user123"
	}
	f.users[strings.ToLower(u.Email)] = u
	f.inserted = append(f.inserted, u)
	return nil
}

func (f *fakeUserRepo) ByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainNotFound
}

type fakePricingRepo struct {
	byType    *domain.EventTicketType
	byDate    *domain.EventTicketType
	err       error
	typeCalls int
	dateCalls int
}

func (f *fakePricingRepo) PriceByType(_ context.Context, _ string, _ uint) (*domain.EventTicketType, error) {
	f.typeCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.byType, nil
}

func (f *fakePricingRepo) PriceByDate(_ context.Context, _ string, _ time.Time) (*domain.EventTicketType, error) {
	f.dateCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.byDate, nil
}

type fakeTicketRepo struct {
	insertErr error
	inserted  []*domain.Ticket
}

func (f *fakeTicketRepo) Insert(_ context.Context, t *domain.Ticket) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if t.ID == "" {
		t.ID = "ticket789"
	}
	f.inserted = append(f.inserted, t)
	return nil
}

func (f *fakeTicketRepo) ByID(_ context.Context, id string) (*domain.Ticket, error) {
	for _, t := range f.inserted {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domainNotFound
}

type fakeBookingRepo struct {
	insertErr    error
	confirmErr   error
	datesErr     error
	dates        []string
	inserted     []domain.Booking
	confirmedIDs []string
	confirmTxn   string
}

func (f *fakeBookingRepo) InsertBatch(_ context.Context, rows []domain.Booking) ([]domain.Booking, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	for i := range rows {
		if rows[i].ID == "" {
			rows[i].ID = "booking" + string(rune('1'+len(f.inserted)+i))
		}
	}
	f.inserted = append(f.inserted, rows...)
	return rows, nil
}

func (f *fakeBookingRepo) ConfirmByIDs(_ context.Context, ids []string, transactionID string) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmedIDs = ids
	f.confirmTxn = transactionID
	return nil
}

func (f *fakeBookingRepo) ByIDs(_ context.Context, ids []string) ([]domain.Booking, error) {
	rows := make([]domain.Booking, len(ids))
	for i, id := range ids {
		rows[i] = domain.Booking{ID: id, Status: domain.StatusConfirmed}
	}
	return rows, nil
}

func (f *fakeBookingRepo) DistinctDayPassDates(_ context.Context, _ []string) ([]string, error) {
	if f.datesErr != nil {
		return nil, f.datesErr
	}
	return f.dates, nil
}

type fakeTxnRepo struct {
	txns      map[string]*domain.Transaction
	insertErr error
	settled   []string
}

func newFakeTxnRepo() *fakeTxnRepo {
	return &fakeTxnRepo{txns: map[string]*domain.Transaction{}}
}

func (f *fakeTxnRepo) Insert(_ context.Context, t *domain.Transaction) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.txns[t.ID] = t
	return nil
}

func (f *fakeTxnRepo) ByID(_ context.Context, id string) (*domain.Transaction, error) {
	t, ok := f.txns[id]
	if !ok {
		return nil, domainNotFound
	}
	return t, nil
}

func (f *fakeTxnRepo) MarkSettled(_ context.Context, id string) error {
	f.settled = append(f.settled, id)
	return nil
}

type fakeSubRepo struct {
	insertErr error
	inserted  []domain.Subscription
}

func (f *fakeSubRepo) InsertBatch(_ context.Context, rows []domain.Subscription) ([]domain.Subscription, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	for i := range rows {
		if rows[i].ID == "" {
			rows[i].ID = "sub" + string(rune('1'+i))
		}
	}
	f.inserted = append(f.inserted, rows...)
	return rows, nil
}

type fakeGateway struct {
	url     string
	err     error
	lastReq payment.CheckoutRequest
	calls   int
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, req payment.CheckoutRequest) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeMailer struct {
	err  error
	sent []mailer.Mail
}

func (f *fakeMailer) Send(_ context.Context, m mailer.Mail) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

type fakeQR struct{}

func (fakeQR) Encode(payload string) ([]byte, error) {
	return []byte("qr:" + payload), nil
}

type fakePublisher struct {
	keys []string
}

func (f *fakePublisher) PublishJSON(_ context.Context, key string, _ any) error {
	f.keys = append(f.keys, key)
	return nil
}

type fakeEventRepo struct {
	event *domain.Event
	err   error
}

func (f *fakeEventRepo) ByID(_ context.Context, _ string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

type fakeImages struct {
	names []string
	err   error
}

func (f *fakeImages) List(_ context.Context, _ string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.names, nil
}
