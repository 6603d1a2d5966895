package utils

import (
	"time"

	"github.com/mohammad-ariqat/taskManager/internal/constants"
)

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the first instant of the following day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24 * time.Hour)
}

// ParseDate parses a calendar date in YYYY-MM-DD form. The result is local
// midnight so that it lands in the same day window StartOfDay and EndOfDay
// produce, regardless of the server's zone.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(constants.DateLayout, value, time.Local)
}

// FormatDate renders a calendar date in YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateLayout)
}
