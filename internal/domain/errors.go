package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or request fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidDate is returned when a calendar date cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
)

// FieldError describes a single field that failed validation.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a FieldError for the given field.
// The wrapped error allows callers to match on the underlying kind with errors.Is.
func NewValidationError(field, message string, err error) *FieldError {
	if err == nil {
		err = ErrValidation
	}
	return &FieldError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error kind.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationErrors collects every field that failed validation for a request.
// It is produced by the request boundary before any business rule runs.
type ValidationErrors []*FieldError

// Error joins the individual field messages.
func (v ValidationErrors) Error() string {
	return strings.Join(v.Messages(), "; ")
}

// Unwrap lets errors.Is(err, ErrValidation) match any non-empty collection.
func (v ValidationErrors) Unwrap() error {
	return ErrValidation
}

// Messages returns the "field: message" pairs in the order they were recorded.
func (v ValidationErrors) Messages() []string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Error())
	}
	return msgs
}

// Add appends a field failure.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, NewValidationError(field, message, ErrValidation))
}

// OrNil returns nil when no failures were recorded, so callers can write
// `return errs.OrNil()` without returning a typed nil.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
