// utils/time_utils.go
package utils

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used by the trip form and in
// itinerary documents.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// InclusiveDayCount returns the number of calendar days from start to end,
// both included. It returns 0 when end is before start.
func InclusiveDayCount(start, end time.Time) int {
	s := truncateToDay(start)
	e := truncateToDay(end)
	if e.Before(s) {
		return 0
	}
	// Dates are UTC midnights, so every day is exactly 24h.
	return int(e.Sub(s)/(24*time.Hour)) + 1
}

// AddDays moves a date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return truncateToDay(t).AddDate(0, 0, n)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
