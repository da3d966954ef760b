package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusFailed    = "failed"
)

// Payment is one entry in the append-only log of payment attempts and
// confirmations against an invoice.
type Payment struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	InvoiceID        uuid.UUID       `json:"invoice_id" db:"invoice_id"`
	PaymentReference string          `json:"payment_reference" db:"payment_reference"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	PaymentMethod    string          `json:"payment_method" db:"payment_method"`
	Status           string          `json:"status" db:"status"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}
