package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is a bookable catalog entry. Prices are copied onto bookings at
// creation time and never re-read afterwards.
type Service struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Description *string         `json:"description" db:"description"`
	Category    string          `json:"category" db:"category"`
	BasePrice   decimal.Decimal `json:"base_price" db:"base_price"`
	IsActive    bool            `json:"is_active" db:"is_active"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}
