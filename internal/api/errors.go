package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/profile-api/internal/api/shared"
	"github.com/phrazzld/profile-api/internal/domain"
	"github.com/phrazzld/profile-api/internal/service"
)

const (
	msgValidation    = "Validation error"
	msgInvalidFormat = "Invalid request format"
	msgUnexpected    = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return http.StatusConflict

	case errors.Is(err, service.ErrUserLowAge),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrInvalidDateRange):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
// Rule violations carry their own message; anything unknown is generic.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var userErr *service.UserError
	if errors.As(err, &userErr) {
		return userErr.Message
	}

	switch {
	case errors.Is(err, domain.ErrInvalidFormat):
		return msgInvalidFormat
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidDate):
		return msgValidation
	default:
		return msgUnexpected
	}
}

// validationDetails lists the "field: message" pairs carried by err, if any.
func validationDetails(err error) []string {
	var errs domain.ValidationErrors
	if errors.As(err, &errs) {
		return errs.Messages()
	}
	var fieldErr *domain.FieldError
	if errors.As(err, &fieldErr) {
		return []string{fieldErr.Error()}
	}
	return nil
}

// HandleAPIError writes the error response for err and logs it.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(
		w, r,
		MapErrorToStatusCode(err),
		GetSafeErrorMessage(err),
		err,
		validationDetails(err)...,
	)
}
