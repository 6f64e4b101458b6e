package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// Network
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// DB
	PGDSN string `envconfig:"PG_DSN" required:"true"`
	// Schema holding the seasonal (day-pass eligible) bookings table. Empty
	// means unqualified table names, which is what the sqlite tests rely on.
	BookingSchema string `envconfig:"BOOKING_SCHEMA" default:"seasonal"`

	// Links and integrity
	BaseURL    string `envconfig:"BASE_URL" required:"true"`
	HashSecret string `envconfig:"HASH_SECRET" required:"true"`

	// Payment provider (hosted checkout)
	PaymentEndpoint string `envconfig:"PAYMENT_ENDPOINT" required:"true"`
	PaymentAPIKey   string `envconfig:"PAYMENT_API_KEY" required:"true"`
	PaymentCurrency string `envconfig:"PAYMENT_CURRENCY" default:"BDT"`

	// Seasonal booking seat rates (minor units)
	StandardRate int `envconfig:"STANDARD_RATE" default:"500"`
	PremiumRate  int `envconfig:"PREMIUM_RATE" default:"900"`

	// Email
	SMTPHost        string        `envconfig:"SMTP_HOST"`
	SMTPPort        int           `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser        string        `envconfig:"SMTP_USER"`
	SMTPPassword    string        `envconfig:"SMTP_PASSWORD"`
	EmailFrom       string        `envconfig:"EMAIL_FROM" default:"no-reply@eventpass.local"`
	EmailAttempts   uint          `envconfig:"EMAIL_ATTEMPTS" default:"3"`
	EmailRetryDelay time.Duration `envconfig:"EMAIL_RETRY_DELAY" default:"500ms"`

	// RabbitMQ (optional; events are skipped when unset)
	RabbitURL     string `envconfig:"RABBIT_URL"`
	EventExchange string `envconfig:"EVENT_EXCHANGE" default:"ticketing.exchange"`

	// Event images
	EventImageDir string `envconfig:"EVENT_IMAGE_DIR" default:"./images"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
