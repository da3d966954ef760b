package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	InvoicePaymentStatusUnpaid = "unpaid"
	InvoicePaymentStatusPaid   = "paid"
)

// Invoice is the billing document tied 1:1 to a booking. amount_due equals
// the booking's total_amount at creation time and is never recalculated.
type Invoice struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	UserID        uuid.UUID       `json:"user_id" db:"user_id"`
	BookingID     uuid.UUID       `json:"booking_id" db:"booking_id"`
	InvoiceNumber string          `json:"invoice_number" db:"invoice_number"`
	AmountDue     decimal.Decimal `json:"amount_due" db:"amount_due"`
	PaymentStatus string          `json:"payment_status" db:"payment_status"`
	AmountPaid    decimal.Decimal `json:"amount_paid" db:"amount_paid"`
	IssuedDate    time.Time       `json:"issued_date" db:"issued_date"`
	DueDate       time.Time       `json:"due_date" db:"due_date"`
	PDFURL        *string         `json:"pdf_url" db:"pdf_url"`
	EmailSent     bool            `json:"email_sent" db:"email_sent"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}
