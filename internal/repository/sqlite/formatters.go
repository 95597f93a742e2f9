package sqlite

import (
	"time"
)

// DateLayout is how due dates are stored.
const DateLayout = "2006-01-02"

// FormatTimeForDB formats a time.Time value as RFC3339 string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FormatDateForDB keeps only the calendar date of t.
func FormatDateForDB(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateFromDB parses a stored due date into midnight UTC.
func ParseDateFromDB(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
