package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/you/eventpass/internal/domain"
	"github.com/you/eventpass/internal/mailer"
	"github.com/you/eventpass/internal/payment"
	"github.com/you/eventpass/internal/qr"
	"github.com/you/eventpass/internal/repository"
	"github.com/you/eventpass/internal/service"
	"github.com/you/eventpass/pkg/logger"
)

const testHashSecret = "test-secret"

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	// reference ids the fake provider saw, in order
	checkoutRefs []string
}

// newTestApp wires the full stack against an in-memory database and a stub
// payment provider.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	app := &testApp{db: db}

	users := repository.NewUserRepo(db)
	eventsRepo := repository.NewEventRepo(db)
	tickets := repository.NewTicketRepo(db)
	bookings := repository.NewBookingRepo(db, "")
	txns := repository.NewTransactionRepo(db)
	subs := repository.NewSubscriptionRepo(db)
	for _, m := range []func() error{
		users.Migrate, eventsRepo.Migrate, tickets.Migrate,
		bookings.Migrate, txns.Migrate, subs.Migrate,
	} {
		require.NoError(t, m())
	}

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req payment.CheckoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		app.checkoutRefs = append(app.checkoutRefs, req.ReferenceID)
		_, _ = w.Write([]byte(`{"url":"https://pay.example.com/session/abc"}`))
	}))
	t.Cleanup(provider.Close)

	lg := logger.NewNop()
	userSvc := service.NewUserSvc(users, lg)
	pricingSvc := service.NewPricingSvc(eventsRepo)
	gateway := payment.NewClient(provider.URL, "sk_test_123")

	ticketSvc := service.NewTicketSvc(service.TicketDeps{
		Users:      userSvc,
		Pricing:    pricingSvc,
		Tickets:    tickets,
		Txns:       txns,
		Gateway:    gateway,
		Mailer:     mailer.Console{},
		QR:         qr.PNG{Size: 64},
		BaseURL:    "https://tickets.example.com",
		HashSecret: testHashSecret,
		Currency:   "BDT",
		Log:        lg,
	})
	bookingSvc := service.NewBookingSvc(service.BookingDeps{
		Users:        userSvc,
		Bookings:     bookings,
		Txns:         txns,
		Gateway:      gateway,
		Mailer:       mailer.Console{},
		QR:           qr.PNG{Size: 64},
		BaseURL:      "https://tickets.example.com",
		Currency:     "BDT",
		StandardRate: 500,
		PremiumRate:  900,
		Log:          lg,
	})

	r := gin.New()
	RegisterRoutes(r, &Handlers{
		Users:    userSvc,
		Events:   service.NewEventSvc(eventsRepo, pricingSvc, staticImages{}, lg),
		Tickets:  ticketSvc,
		Bookings: bookingSvc,
		Payments: service.NewPaymentSvc(txns, ticketSvc, bookingSvc, lg),
		Subs:     service.NewSubscriptionSvc(bookings, subs, lg),
		Log:      lg,
	})
	app.router = r
	return app
}

type staticImages struct{}

func (staticImages) List(_ context.Context, _ string) ([]string, error) {
	return []string{"banner.jpg", "stage.jpg"}, nil
}

func (a *testApp) seedPricedEvent(t *testing.T) {
	t.Helper()
	now := time.Now()
	require.NoError(t, a.db.Create(&domain.Event{
		ID: "event123", Title: "Summer Music Festival", Date: "2026-03-10",
		IsPaid: true, Status: "active", Remaining: 50, OrganisationName: "City Events",
	}).Error)
	require.NoError(t, a.db.Create(&domain.TicketType{ID: 2, Name: "Premium"}).Error)
	require.NoError(t, a.db.Create(&domain.EventTicketType{
		EventID: "event123", TicketTypeID: 2, Price: 500,
		StartDate: now.Add(-24 * time.Hour), EndDate: now.Add(24 * time.Hour),
	}).Error)
}

func (a *testApp) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateUserEndpoint(t *testing.T) {
	app := newTestApp(t)

	w := app.postJSON(t, "/v1/users", gin.H{
		"first_name": "John", "last_name": "Doe",
		"email": "john@example.com", "phone": "01712345678",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, true, body["success"])
	require.NotEmpty(t, body["userId"])

	// same email again
	w = app.postJSON(t, "/v1/users", gin.H{
		"first_name": "John", "last_name": "Doe",
		"email": "john@example.com", "phone": "01712345678",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "A user with the same email already exists", decodeBody(t, w)["message"])
}

func TestCreateUserEndpointInvalidPhone(t *testing.T) {
	app := newTestApp(t)

	w := app.postJSON(t, "/v1/users", gin.H{
		"first_name": "John", "last_name": "Doe",
		"email": "john@example.com", "phone": "12345",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Invalid Phone Number", body["message"])
}

func TestGetEventEndpoint(t *testing.T) {
	app := newTestApp(t)
	app.seedPricedEvent(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/events/event123", nil)
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	ev := body["event"].(map[string]any)
	require.Equal(t, "Summer Music Festival", ev["title"])
	require.EqualValues(t, 500, ev["price"])
	require.EqualValues(t, 10, ev["limit"])
	require.Equal(t, []any{"stage.jpg"}, ev["images"])
}

func ticketForm(price int) url.Values {
	return url.Values{
		"eventId":     {"event123"},
		"quantity":    {"2"},
		"ticketPrice": {fmt.Sprint(price)},
		"ticketType":  {"2"},
		"secureHash":  {service.SecureEventHash(testHashSecret, "event123", price, 2)},
		"firstName":   {"John"},
		"lastName":    {"Doe"},
		"phoneNumber": {"01712345678"},
		"email":       {"john@example.com"},
	}
}

func TestRegisterTicketEndpointPaid(t *testing.T) {
	app := newTestApp(t)
	app.seedPricedEvent(t)

	w := app.postForm(t, "/v1/tickets", ticketForm(500))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, true, body["success"])
	require.Equal(t, "https://pay.example.com/session/abc", body["paymentUrl"])
	require.Len(t, app.checkoutRefs, 1)
}

func TestRegisterTicketEndpointTamperedHash(t *testing.T) {
	app := newTestApp(t)
	app.seedPricedEvent(t)

	form := ticketForm(500)
	form.Set("ticketPrice", "1") // hash no longer matches
	w := app.postForm(t, "/v1/tickets", form)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Ticket details could not be verified", decodeBody(t, w)["message"])
	require.Empty(t, app.checkoutRefs)
}

func TestRegisterTicketEndpointMalformedForm(t *testing.T) {
	app := newTestApp(t)

	form := ticketForm(500)
	form.Del("quantity")
	w := app.postForm(t, "/v1/tickets", form)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Missing or malformed registration fields", decodeBody(t, w)["message"])
}

func TestTicketPaymentConfirmFlow(t *testing.T) {
	app := newTestApp(t)
	app.seedPricedEvent(t)

	w := app.postForm(t, "/v1/tickets", ticketForm(500))
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, app.checkoutRefs, 1)

	w = app.postJSON(t, "/api/payments/confirm", gin.H{
		"email":          "john@example.com",
		"transaction_id": app.checkoutRefs[0],
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "Ticket confirmed. A confirmation email has been sent.", body["message"])
	require.NotNil(t, body["ticket"])

	var count int64
	require.NoError(t, app.db.Model(&domain.Ticket{}).Where("status = ?", domain.StatusConfirmed).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func bookingForm(selections string) url.Values {
	return url.Values{
		"bookings":    {selections},
		"firstName":   {"John"},
		"lastName":    {"Doe"},
		"phoneNumber": {"01712345678"},
		"email":       {"john@example.com"},
	}
}

func TestBookingAndDayPassFlow(t *testing.T) {
	app := newTestApp(t)

	// two day-pass dates, one of them selected twice
	sel := `[{"date":"10/03/2026","day_pass":true,"standard_count":1,"premium_count":0},` +
		`{"date":"10/03/2026","day_pass":true,"standard_count":0,"premium_count":1},` +
		`{"date":"11/03/2026","day_pass":true,"standard_count":1,"premium_count":0}]`
	w := app.postForm(t, "/v1/bookings", bookingForm(sel))
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "https://pay.example.com/session/abc", body["paymentUrl"])
	ids := body["bookingIds"].([]any)
	require.Len(t, ids, 3)
	require.Len(t, app.checkoutRefs, 1)

	w = app.postJSON(t, "/api/payments/confirm", gin.H{
		"email":          "john@example.com",
		"transaction_id": app.checkoutRefs[0],
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, decodeBody(t, w)["message"], "Booking confirmed for John")

	var user domain.User
	require.NoError(t, app.db.First(&user, "email = ?", "john@example.com").Error)
	bookingIDs := make([]string, len(ids))
	for i, v := range ids {
		bookingIDs[i] = v.(string)
	}
	w = app.postJSON(t, "/v1/subscriptions/day-pass", gin.H{
		"user_id": user.ID, "booking_ids": bookingIDs,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	subs := decodeBody(t, w)["subscriptions"].([]any)
	require.Len(t, subs, 2, "one pass per distinct date")
}

func TestDayPassEndpointNoneFound(t *testing.T) {
	app := newTestApp(t)

	w := app.postJSON(t, "/v1/subscriptions/day-pass", gin.H{
		"user_id": "user123", "booking_ids": []string{"missing1", "missing2"},
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"No day pass bookings found"}`, w.Body.String())
}

func TestRespondErrorHidesRawFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/users", nil)

	h := &Handlers{Log: logger.NewNop()}
	h.respondError(c, "Failed to create user due to an unexpected error.", errors.New("pq: connection reset"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Failed to create user due to an unexpected error.", body["message"])
	require.NotContains(t, w.Body.String(), "connection reset")
}

func TestConfirmPaymentEndpointUnknownTransaction(t *testing.T) {
	app := newTestApp(t)

	w := app.postJSON(t, "/api/payments/confirm", gin.H{
		"email":          "john@example.com",
		"transaction_id": "missing",
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Transaction not found", decodeBody(t, w)["message"])
}
