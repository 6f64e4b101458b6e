package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/you/eventpass/internal/events"
	"github.com/you/eventpass/internal/notify"
	"github.com/you/eventpass/pkg/logger"
	"github.com/you/eventpass/pkg/mq"
)

type Cfg struct {
	RabbitURL     string `envconfig:"RABBIT_URL" required:"true"`
	EventExchange string `envconfig:"EVENT_EXCHANGE" default:"ticketing.exchange"`
	Queue         string `envconfig:"NOTIFY_QUEUE" default:"notify.q"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"LOG_FORMAT" default:"console"`
}

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()
	var cfg Cfg
	must(0, envconfig.Process("", &cfg))

	lg := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer lg.Sync()

	keys := []string{
		events.RKTicketIssued,
		events.RKBookingCreated,
		events.RKBookingConfirmed,
		events.RKPaymentSettled,
	}
	consumer := must(mq.NewConsumer(cfg.RabbitURL, cfg.EventExchange, cfg.Queue, keys))
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker := notify.NewWorker(consumer, notify.NewConsole(), lg)
	go func() {
		if err := worker.Run(ctx); err != nil {
			lg.Fatal("worker", "error", err)
		}
	}()
	lg.Info("notify worker started", "queue", cfg.Queue)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	cancel()
	lg.Info("stopped")
}
