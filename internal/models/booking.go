package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a customer's request for services/equipment at a date and
// location. All monetary fields are computed once at submission and are
// immutable afterwards; total_amount = base_amount + vat_amount + levy_amount.
type Booking struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	UserID            uuid.UUID       `json:"user_id" db:"user_id"`
	ServiceIDs        []uuid.UUID     `json:"service_ids" db:"service_ids"`
	EquipmentOptionID *uuid.UUID      `json:"equipment_option_id" db:"equipment_option_id"`
	EventDate         time.Time       `json:"event_date" db:"event_date"`
	EventLocation     string          `json:"event_location" db:"event_location"`
	DistanceKm        decimal.Decimal `json:"distance_km" db:"distance_km"`
	TransportCost     decimal.Decimal `json:"transport_cost" db:"transport_cost"`
	BaseAmount        decimal.Decimal `json:"base_amount" db:"base_amount"`
	VATAmount         decimal.Decimal `json:"vat_amount" db:"vat_amount"`
	LevyAmount        decimal.Decimal `json:"levy_amount" db:"levy_amount"`
	TotalAmount       decimal.Decimal `json:"total_amount" db:"total_amount"`
	AdditionalNotes   *string         `json:"additional_notes" db:"additional_notes"`
	Status            string          `json:"status" db:"status"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}
