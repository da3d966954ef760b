package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config is the full application configuration, loaded from the environment
// with an optional .env file.
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// TransportRatePerKm is the per-kilometre transport charge used by the
	// pricing engine. Kept as a string so the rate stays exact.
	TransportRatePerKm string `env:"TRANSPORT_RATE_PER_KM" envDefault:"50"`

	// InvoiceNumberFallback enables the degraded timestamp-derived invoice
	// number when the database sequence is unavailable. Numbers minted this
	// way are not guaranteed unique, so it is off by default.
	InvoiceNumberFallback bool `env:"INVOICE_NUMBER_FALLBACK" envDefault:"false"`

	Auth    Auth
	Redis   Redis
	Minio   Minio
	SMTP    SMTP
	Company Company

	transportRate decimal.Decimal
}

// Auth configures verification of identity-provider issued JWTs.
type Auth struct {
	JWTSecret string `env:"SUPABASE_JWT_SECRET"`
	JWKSURL   string `env:"SUPABASE_JWKS_URL"`
}

type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type Minio struct {
	Endpoint  string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey string `env:"MINIO_SECRET_KEY" envDefault:"minioadmin"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	Bucket    string `env:"MINIO_INVOICE_BUCKET" envDefault:"invoices"`
}

type SMTP struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"SMTP_FROM"`
	FromName string `env:"SMTP_FROM_NAME" envDefault:"Ultimate Media"`
}

// Company is the issuer identity printed on invoices.
type Company struct {
	Name    string `env:"COMPANY_NAME" envDefault:"Ultimate Media"`
	Address string `env:"COMPANY_ADDRESS" envDefault:"Nairobi, Kenya"`
	Phone   string `env:"COMPANY_PHONE" envDefault:"+254 777 122 800"`
	Email   string `env:"COMPANY_EMAIL" envDefault:"info@ultimatemedia.co.ke"`
}

// New loads configuration from envPath (ignored when missing) and the process
// environment.
func New(envPath string) (*Config, error) {
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	rate, err := decimal.NewFromString(cfg.TransportRatePerKm)
	if err != nil || rate.IsNegative() {
		return nil, fmt.Errorf("TRANSPORT_RATE_PER_KM must be a non-negative number, got %q", cfg.TransportRatePerKm)
	}
	cfg.transportRate = rate

	return cfg, nil
}

// TransportRate returns the parsed per-kilometre transport rate.
func (c *Config) TransportRate() decimal.Decimal {
	return c.transportRate
}
