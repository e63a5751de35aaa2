// Package dateutils provides common date and time operations used throughout the application.
package dateutils

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutSwiss     = "02.01.2006"
	DateLayoutEuropean  = "02/01/2006"
	DateLayoutJSISO     = "2006-01-02T15:04:05.000Z07:00"
	DateLayoutLocalTime = "2006-01-02T15:04"
)

// CommonFormats is the list of layouts tried by ParseDate, most specific first.
// Stored dates are ISO strings as produced by JavaScript's toISOString; CAMT
// statements use plain ISO dates.
var CommonFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	DateLayoutJSISO,
	"2006-01-02T15:04:05",
	DateLayoutLocalTime,
	DateLayoutISO,
	DateLayoutSwiss,
	DateLayoutEuropean,
}

// ParseDate parses a date string using the first matching layout of
// CommonFormats. Strings without a zone are interpreted as UTC.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := strings.TrimSpace(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date '%s'", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// StartOfDay returns midnight of the given date in its location.
func StartOfDay(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location())
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// MonthsAgo returns the instant n calendar months before date. Day overflow
// normalizes forward (March 31 minus one month is March 3 or 2).
func MonthsAgo(date time.Time, n int) time.Time {
	return date.AddDate(0, -n, 0)
}

// DaysAgo returns the instant n days before date.
func DaysAgo(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, -n)
}

// CeilDays returns the number of days from "from" to "to", rounded up.
// Negative when "to" is in the past.
func CeilDays(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// FloorDays returns the number of whole days elapsed from "from" to "to".
func FloorDays(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}

// SameMonth reports whether both dates fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
