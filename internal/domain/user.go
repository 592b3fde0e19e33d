package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a user profile, the single entity managed by the service.
type User struct {
	// ID is assigned by the store on first save and never changes afterwards.
	// It is uuid.Nil until then.
	ID          uuid.UUID
	Email       string
	FirstName   string
	LastName    string
	BirthDate   time.Time // calendar date, UTC midnight
	Address     string
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUser builds an unsaved User from the profile fields.
// The birth date is normalized to a calendar date.
func NewUser(email, firstName, lastName string, birthDate time.Time, address, phoneNumber string) *User {
	return &User{
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		BirthDate:   TruncateToDate(birthDate),
		Address:     address,
		PhoneNumber: phoneNumber,
	}
}

// IsNew reports whether the user has not been saved yet.
func (u *User) IsNew() bool {
	return u.ID == uuid.Nil
}

// BirthDateBetween reports whether the birth date falls in [start, end], inclusive.
func (u *User) BirthDateBetween(start, end time.Time) bool {
	bd := TruncateToDate(u.BirthDate)
	return !bd.Before(TruncateToDate(start)) && !bd.After(TruncateToDate(end))
}
