package repositories

import (
	"context"

	"github.com/google/uuid"

	"ultimedia/internal/models"
)

// PaymentRepository is the append-only payment log. Rows are never updated
// or deleted.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*models.Payment, error)
}

type paymentRepo struct {
	db Database
}

func NewPaymentRepo(db Database) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, invoice_id, payment_reference, amount, payment_method, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query,
		payment.ID, payment.InvoiceID, payment.PaymentReference,
		payment.Amount, payment.PaymentMethod, payment.Status)
	return err
}

func (r *paymentRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*models.Payment, error) {
	query := `
		SELECT id, invoice_id, payment_reference, amount, payment_method, status, created_at
		FROM payments
		WHERE invoice_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(&payment.ID, &payment.InvoiceID, &payment.PaymentReference,
			&payment.Amount, &payment.PaymentMethod, &payment.Status, &payment.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}
