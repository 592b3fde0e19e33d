package api

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/profile-api/internal/domain"
)

// fieldMessages holds client-facing messages keyed by "field.tag".
var fieldMessages = map[string]string{
	"email.email":        "Invalid email format",
	"birthDate.past":     "Birth date must be in the past",
	"startDate.required": "Start date is required",
	"endDate.required":   "End date is required",
}

// tagMessages is the fallback when no field-specific message exists.
var tagMessages = map[string]string{
	"required": "must not be blank",
	"email":    "must be a well-formed email address",
	"datetime": "must be a date in YYYY-MM-DD format",
	"past":     "must be a date in the past",
}

// RequestValidator checks request payloads before they reach the service layer.
type RequestValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewRequestValidator creates a RequestValidator.
// now is the time source for the `past` tag; nil means the current UTC time.
func NewRequestValidator(now func() time.Time) *RequestValidator {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	v := &RequestValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// ALLOW-PANIC: registration only fails for an empty tag or nil func
	if err := v.validate.RegisterValidation("past", v.isPast); err != nil {
		panic(err)
	}

	return v
}

// isPast reports whether a YYYY-MM-DD string names a day strictly before today.
func (v *RequestValidator) isPast(fl validator.FieldLevel) bool {
	d, err := domain.ParseDate(fl.Field().String())
	if err != nil {
		return false
	}
	return d.Before(domain.TruncateToDate(v.now()))
}

// Validate checks req and returns domain.ValidationErrors listing every failed field.
func (v *RequestValidator) Validate(req interface{}) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var errs domain.ValidationErrors
	for _, fe := range fieldErrs {
		errs = append(errs, domain.NewValidationError(fe.Field(), validationMessage(fe), domain.ErrValidation))
	}
	return errs.OrNil()
}

func validationMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg
	}
	return "is invalid"
}
