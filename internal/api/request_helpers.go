package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/profile-api/internal/domain"
)

// getPathUUID extracts a UUID from the URL path parameters.
// A missing or malformed value yields a validation error on paramName.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.ValidationErrors{
			domain.NewValidationError(paramName, "is required", domain.ErrValidation),
		}
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.ValidationErrors{
			domain.NewValidationError(paramName, "must be a valid UUID", domain.ErrInvalidID),
		}
	}

	return id, nil
}

// parseDateField parses a validated YYYY-MM-DD value.
func parseDateField(field, value string) (time.Time, error) {
	d, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, domain.ValidationErrors{
			domain.NewValidationError(field, "must be a date in YYYY-MM-DD format", domain.ErrInvalidDate),
		}
	}
	return d, nil
}

// parseOptionalDate parses value when it is set.
func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	d, err := parseDateField(field, *value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
