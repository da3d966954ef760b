package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the billed-to identity for a user. The ID matches the
// identity provider's subject claim.
type Profile struct {
	ID          uuid.UUID `json:"id" db:"id"`
	FullName    string    `json:"full_name" db:"full_name"`
	Email       string    `json:"email" db:"email"`
	PhoneNumber *string   `json:"phone_number" db:"phone_number"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
