package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ultimedia/internal/models"
)

// BookingRepository persists bookings. Monetary fields are written once at
// creation and never updated.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Booking, error)
	ListPendingWithoutInvoice(ctx context.Context, createdBefore time.Time) ([]*models.Booking, error)
}

type bookingRepo struct {
	db Database
}

func NewBookingRepo(db Database) BookingRepository {
	return &bookingRepo{db: db}
}

const bookingColumns = `id, user_id, service_ids, equipment_option_id, event_date, event_location, distance_km, transport_cost, base_amount, vat_amount, levy_amount, total_amount, additional_notes, status, created_at, updated_at`

func (r *bookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, service_ids, equipment_option_id, event_date, event_location, distance_km, transport_cost, base_amount, vat_amount, levy_amount, total_amount, additional_notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		booking.ID, booking.UserID, booking.ServiceIDs, booking.EquipmentOptionID,
		booking.EventDate, booking.EventLocation, booking.DistanceKm,
		booking.TransportCost, booking.BaseAmount, booking.VATAmount,
		booking.LevyAmount, booking.TotalAmount, booking.AdditionalNotes, booking.Status)
	return err
}

func (r *bookingRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1 AND id = $2
	`
	booking := &models.Booking{}
	err := r.db.QueryRow(ctx, query, userID, id).Scan(
		&booking.ID, &booking.UserID, &booking.ServiceIDs, &booking.EquipmentOptionID,
		&booking.EventDate, &booking.EventLocation, &booking.DistanceKm,
		&booking.TransportCost, &booking.BaseAmount, &booking.VATAmount,
		&booking.LevyAmount, &booking.TotalAmount, &booking.AdditionalNotes,
		&booking.Status, &booking.CreatedAt, &booking.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *bookingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListPendingWithoutInvoice returns pending bookings older than createdBefore
// that have no invoice row. These are the accepted inconsistent intermediate
// state left behind when invoice creation fails mid-sequence.
func (r *bookingRepo) ListPendingWithoutInvoice(ctx context.Context, createdBefore time.Time) ([]*models.Booking, error) {
	query := `
		SELECT b.id, b.user_id, b.service_ids, b.equipment_option_id, b.event_date, b.event_location, b.distance_km, b.transport_cost, b.base_amount, b.vat_amount, b.levy_amount, b.total_amount, b.additional_notes, b.status, b.created_at, b.updated_at
		FROM bookings b
		LEFT JOIN invoices i ON i.booking_id = b.id
		WHERE b.status = 'pending' AND i.id IS NULL AND b.created_at < $1
		ORDER BY b.created_at
	`
	rows, err := r.db.Query(ctx, query, createdBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]*models.Booking, error) {
	var bookings []*models.Booking
	for rows.Next() {
		booking := &models.Booking{}
		if err := rows.Scan(
			&booking.ID, &booking.UserID, &booking.ServiceIDs, &booking.EquipmentOptionID,
			&booking.EventDate, &booking.EventLocation, &booking.DistanceKm,
			&booking.TransportCost, &booking.BaseAmount, &booking.VATAmount,
			&booking.LevyAmount, &booking.TotalAmount, &booking.AdditionalNotes,
			&booking.Status, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}
