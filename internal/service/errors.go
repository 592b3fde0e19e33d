package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Rule violation kinds. Callers check them with errors.Is.
var (
	// ErrEmailAlreadyExists indicates that the email of a new user is already in use.
	// API layer should map this to HTTP 409 Conflict.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserLowAge indicates that a new user is younger than the configured minimum age.
	ErrUserLowAge = errors.New("user is below minimum age")

	// ErrUserNotFound indicates that the target user of an update or removal does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidDateRange indicates a birth date search whose start is after its end.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// UserError is a rule violation raised by UserService.
// Message is safe to show to clients; Kind is one of the sentinel errors above.
type UserError struct {
	Kind    error
	Message string
}

// Error implements the error interface.
func (e *UserError) Error() string {
	return e.Message
}

// Unwrap returns the kind so errors.Is matches the sentinel.
func (e *UserError) Unwrap() error {
	return e.Kind
}

func emailAlreadyExists(email string) error {
	return &UserError{Kind: ErrEmailAlreadyExists, Message: "This email already exists: " + email}
}

func userLowAge(minAge int) error {
	return &UserError{Kind: ErrUserLowAge, Message: fmt.Sprintf("User must be at least %d years old.", minAge)}
}

func userNotFound(id uuid.UUID) error {
	return &UserError{Kind: ErrUserNotFound, Message: fmt.Sprintf("User with ID: %s was not found", id)}
}

func invalidDateRange() error {
	return &UserError{Kind: ErrInvalidDateRange, Message: "Start date must be before end date"}
}
