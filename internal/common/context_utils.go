package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
)

// GetUserIDFromContext extracts the authenticated user ID from request context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmailFromContext extracts the authenticated user's email, if present.
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// Envelope is the uniform response shape for every JSON endpoint.
type Envelope struct {
	Success bool           `json:"success"`
	Data    interface{}    `json:"data,omitempty"`
	Error   *EnvelopeError `json:"error,omitempty"`
}

// EnvelopeError pairs the stable error kind with a human-readable message.
type EnvelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendData writes a success envelope.
func SendData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

// SendError classifies err and writes a failure envelope with the matching
// HTTP status.
func SendError(c echo.Context, err error) error {
	kind := KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case KindValidation, KindPricing:
		status = http.StatusBadRequest
	case KindNotFound:
		status = http.StatusNotFound
	case KindUnauthorized:
		status = http.StatusUnauthorized
	case KindPersistence, KindGenerationUnavailable:
		status = http.StatusInternalServerError
	}
	return c.JSON(status, Envelope{
		Success: false,
		Error:   &EnvelopeError{Code: string(kind), Message: MessageOf(err)},
	})
}

// SendUnauthorized writes the failure envelope for missing/invalid credentials.
func SendUnauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, Envelope{
		Success: false,
		Error:   &EnvelopeError{Code: string(KindUnauthorized), Message: message},
	})
}

// ValidateUUID parses an id string, reporting the offending field name.
func ValidateUUID(idStr, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID", fieldName)
	}
	return id, nil
}

// ValidateEventDate parses a YYYY-MM-DD event date.
func ValidateEventDate(dateStr string) (time.Time, error) {
	if strings.TrimSpace(dateStr) == "" {
		return time.Time{}, fmt.Errorf("event date is required")
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("event date must be in YYYY-MM-DD format")
	}
	return date, nil
}
