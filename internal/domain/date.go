package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates (ISO 8601, date only).
const DateLayout = "2006-01-02"

// ParseDate parses an ISO 8601 calendar date into a UTC midnight time.Time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders the calendar date part of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// TruncateToDate drops the clock part of t, keeping its calendar date in t's location,
// and returns it as UTC midnight.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AgeOn returns the number of whole years elapsed between birthDate and on.
// A birthday that has not yet been reached in the year of on does not count.
// Returns a negative value when birthDate is after on.
func AgeOn(birthDate, on time.Time) int {
	by, bm, bd := birthDate.Date()
	oy, om, od := on.Date()

	years := oy - by
	if om < bm || (om == bm && od < bd) {
		years--
	}
	return years
}
