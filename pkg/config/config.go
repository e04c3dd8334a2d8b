package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	Env string `envconfig:"ENV" default:"dev"`
	// HTTP
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	// Tracing
	OTELEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"otel-collector:4317"`
	// DB
	PGDSN string `envconfig:"PG_DSN" required:"true"`
	// JWT
	JWTSecret       string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin    int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`
	RefreshExpireHr int    `envconfig:"REFRESH_EXPIRE_HR" default:"720"`
	// RabbitMQ (optional; events are skipped when unset)
	RabbitURL       string `envconfig:"RABBIT_URL" default:""`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`
	PaymentExchange string `envconfig:"PAYMENT_EXCHANGE" default:"payment.exchange"`
	NotifyQueue     string `envconfig:"NOTIFY_QUEUE" default:"notify.q"`
	// Payment processor
	OmisePublicKey    string `envconfig:"OMISE_PUBLIC_KEY" default:""`
	OmiseSecretKey    string `envconfig:"OMISE_SECRET_KEY" default:""`
	PaymentCurrency   string `envconfig:"PAYMENT_CURRENCY" default:"usd"`
	PaymentTimeoutSec int    `envconfig:"PAYMENT_TIMEOUT_SEC" default:"15"`
	// Invoices: 0 means due on issue
	InvoiceDueDays int `envconfig:"INVOICE_DUE_DAYS" default:"0"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
