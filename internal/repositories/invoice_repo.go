package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"ultimedia/internal/models"
)

// InvoiceRepository persists invoices and owns the serialized per-year
// invoice counter.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Invoice, error)
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*models.Invoice, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Invoice, error)
	NextInvoiceSequence(ctx context.Context, year int) (int, error)
	SetPDFURL(ctx context.Context, id uuid.UUID, url string) error
	MarkEmailSent(ctx context.Context, id uuid.UUID) error
	MarkPaid(ctx context.Context, id uuid.UUID, amountPaid decimal.Decimal) error
}

type invoiceRepo struct {
	db Database
}

func NewInvoiceRepo(db Database) InvoiceRepository {
	return &invoiceRepo{db: db}
}

const invoiceColumns = `id, user_id, booking_id, invoice_number, amount_due, payment_status, amount_paid, issued_date, due_date, pdf_url, email_sent, created_at, updated_at`

func (r *invoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	query := `
		INSERT INTO invoices (id, user_id, booking_id, invoice_number, amount_due, payment_status, amount_paid, issued_date, due_date, pdf_url, email_sent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		invoice.ID, invoice.UserID, invoice.BookingID, invoice.InvoiceNumber,
		invoice.AmountDue, invoice.PaymentStatus, invoice.AmountPaid,
		invoice.IssuedDate, invoice.DueDate, invoice.PDFURL, invoice.EmailSent)
	return err
}

func (r *invoiceRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE user_id = $1 AND id = $2
	`
	invoice := &models.Invoice{}
	err := r.db.QueryRow(ctx, query, userID, id).Scan(
		&invoice.ID, &invoice.UserID, &invoice.BookingID, &invoice.InvoiceNumber,
		&invoice.AmountDue, &invoice.PaymentStatus, &invoice.AmountPaid,
		&invoice.IssuedDate, &invoice.DueDate, &invoice.PDFURL, &invoice.EmailSent,
		&invoice.CreatedAt, &invoice.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *invoiceRepo) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*models.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE booking_id = $1
	`
	invoice := &models.Invoice{}
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&invoice.ID, &invoice.UserID, &invoice.BookingID, &invoice.InvoiceNumber,
		&invoice.AmountDue, &invoice.PaymentStatus, &invoice.AmountPaid,
		&invoice.IssuedDate, &invoice.DueDate, &invoice.PDFURL, &invoice.EmailSent,
		&invoice.CreatedAt, &invoice.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *invoiceRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE user_id = $1
		ORDER BY issued_date DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice := &models.Invoice{}
		if err := rows.Scan(
			&invoice.ID, &invoice.UserID, &invoice.BookingID, &invoice.InvoiceNumber,
			&invoice.AmountDue, &invoice.PaymentStatus, &invoice.AmountPaid,
			&invoice.IssuedDate, &invoice.DueDate, &invoice.PDFURL, &invoice.EmailSent,
			&invoice.CreatedAt, &invoice.UpdatedAt); err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

// NextInvoiceSequence atomically advances and returns the per-year counter.
// The upsert serializes concurrent callers on the year row, so two requests
// can never observe the same value.
func (r *invoiceRepo) NextInvoiceSequence(ctx context.Context, year int) (int, error) {
	query := `
		WITH upsert AS (
			INSERT INTO invoice_sequences (year, last_number)
			VALUES ($1, 1)
			ON CONFLICT (year)
			DO UPDATE SET
				last_number = invoice_sequences.last_number + 1,
				updated_at = NOW()
			RETURNING last_number
		)
		SELECT last_number FROM upsert;
	`
	var sequence int
	if err := r.db.QueryRow(ctx, query, year).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("advance invoice sequence: %w", err)
	}
	return sequence, nil
}

func (r *invoiceRepo) SetPDFURL(ctx context.Context, id uuid.UUID, url string) error {
	query := `
		UPDATE invoices
		SET pdf_url = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, url, id)
	return err
}

func (r *invoiceRepo) MarkEmailSent(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE invoices
		SET email_sent = true, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *invoiceRepo) MarkPaid(ctx context.Context, id uuid.UUID, amountPaid decimal.Decimal) error {
	query := `
		UPDATE invoices
		SET payment_status = 'paid', amount_paid = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, amountPaid, id)
	return err
}
