package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/you/eventpass/internal/config"
	"github.com/you/eventpass/internal/handlers"
	"github.com/you/eventpass/internal/mailer"
	"github.com/you/eventpass/internal/payment"
	"github.com/you/eventpass/internal/qr"
	"github.com/you/eventpass/internal/repository"
	"github.com/you/eventpass/internal/service"
	"github.com/you/eventpass/internal/storage"
	"github.com/you/eventpass/pkg/db"
	"github.com/you/eventpass/pkg/logger"
	"github.com/you/eventpass/pkg/mq"
	"github.com/you/eventpass/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()
	cfg := must(config.Load())

	lg := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer lg.Sync()

	shutdownTracer := obs.InitTracer("eventpass-server")
	defer shutdownTracer(context.Background())

	// DB
	gdb := db.Open(cfg.PGDSN)
	userRepo := repository.NewUserRepo(gdb)
	eventRepo := repository.NewEventRepo(gdb)
	ticketRepo := repository.NewTicketRepo(gdb)
	bookingRepo := repository.NewBookingRepo(gdb, cfg.BookingSchema)
	txnRepo := repository.NewTransactionRepo(gdb)
	subRepo := repository.NewSubscriptionRepo(gdb)
	must(0, userRepo.Migrate())
	must(0, eventRepo.Migrate())
	must(0, ticketRepo.Migrate())
	must(0, bookingRepo.Migrate())
	must(0, txnRepo.Migrate())
	must(0, subRepo.Migrate())

	// Events (optional)
	var pub service.EventPublisher
	if cfg.RabbitURL != "" {
		p := must(mq.NewPublisher(cfg.RabbitURL, cfg.EventExchange))
		defer p.Close()
		pub = p
	}

	// Collaborators
	gateway := payment.NewClient(cfg.PaymentEndpoint, cfg.PaymentAPIKey)
	var mail mailer.Mailer = mailer.Console{}
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword,
			cfg.EmailFrom, cfg.EmailAttempts, cfg.EmailRetryDelay)
	}
	qrg := qr.PNG{}

	// Services
	userSvc := service.NewUserSvc(userRepo, lg)
	pricingSvc := service.NewPricingSvc(eventRepo)
	ticketSvc := service.NewTicketSvc(service.TicketDeps{
		Users: userSvc, Pricing: pricingSvc, Tickets: ticketRepo, Txns: txnRepo,
		Gateway: gateway, Mailer: mail, QR: qrg, Pub: pub,
		BaseURL: cfg.BaseURL, HashSecret: cfg.HashSecret, Currency: cfg.PaymentCurrency,
		Log: lg,
	})
	bookingSvc := service.NewBookingSvc(service.BookingDeps{
		Users: userSvc, Bookings: bookingRepo, Txns: txnRepo,
		Gateway: gateway, Mailer: mail, QR: qrg, Pub: pub,
		BaseURL: cfg.BaseURL, Currency: cfg.PaymentCurrency,
		StandardRate: cfg.StandardRate, PremiumRate: cfg.PremiumRate,
		Log: lg,
	})
	paymentSvc := service.NewPaymentSvc(txnRepo, ticketSvc, bookingSvc, lg)
	subSvc := service.NewSubscriptionSvc(bookingRepo, subRepo, lg)
	eventSvc := service.NewEventSvc(eventRepo, pricingSvc, storage.DirImages{Root: cfg.EventImageDir}, lg)

	r := gin.Default()
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	handlers.RegisterRoutes(r, &handlers.Handlers{
		Users: userSvc, Events: eventSvc, Tickets: ticketSvc,
		Bookings: bookingSvc, Payments: paymentSvc, Subs: subSvc, Log: lg,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		lg.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatal("http server", "error", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	lg.Info("stopped")
}
