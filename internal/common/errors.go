package common

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable machine-readable classification surfaced to callers.
type ErrorKind string

const (
	KindValidation            ErrorKind = "VALIDATION_ERROR"
	KindPricing               ErrorKind = "PRICING_ERROR"
	KindPersistence           ErrorKind = "PERSISTENCE_ERROR"
	KindGenerationUnavailable ErrorKind = "GENERATION_UNAVAILABLE"
	KindNotFound              ErrorKind = "NOT_FOUND"
	KindUnauthorized          ErrorKind = "UNAUTHORIZED"
)

// DomainError carries an ErrorKind together with a human-readable message.
// None of these errors crash the process; handlers translate them into the
// response envelope.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError builds a DomainError wrapping an optional cause.
func NewDomainError(kind ErrorKind, message string, cause error) *DomainError {
	return &DomainError{Kind: kind, Message: message, Err: cause}
}

func ValidationError(message string) *DomainError {
	return NewDomainError(KindValidation, message, nil)
}

func PricingError(message string, cause error) *DomainError {
	return NewDomainError(KindPricing, message, cause)
}

func PersistenceError(message string, cause error) *DomainError {
	return NewDomainError(KindPersistence, message, cause)
}

func GenerationUnavailable(message string, cause error) *DomainError {
	return NewDomainError(KindGenerationUnavailable, message, cause)
}

func NotFoundError(resource string) *DomainError {
	return NewDomainError(KindNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// KindOf extracts the ErrorKind from an error chain. Unclassified errors
// report as persistence failures so callers always get retry guidance.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindPersistence
}

// MessageOf returns the human-readable message for an error chain.
func MessageOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}
