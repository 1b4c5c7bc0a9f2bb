package core

import (
	"strings"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

// NowFunc returns the current time; tests replace it.
var NowFunc = time.Now

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ParseDate parses a `YYYY-MM-DD` form value as a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, CleanString(s), time.UTC)
}

// ParseDateTime parses a `YYYY-MM-DDTHH:MM` (datetime-local) form value as UTC.
func ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, CleanString(s), time.UTC)
}

// CheckOwner returns ErrForbidden unless the record owner is the acting account.
func CheckOwner(recordOwnerID, ownerID int64) error {
	if recordOwnerID != ownerID {
		return ErrForbidden
	}
	return nil
}
