package reminder

import (
	"errors"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

var errEmptyDate = errors.New("empty date")

// ParseDate parses an ISO-8601 date or date-time and returns the calendar
// date it falls on, at midnight UTC. Date-only values are taken literally;
// values with a time of day are moved into loc first.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errEmptyDate
	}
	if loc == nil {
		loc = time.UTC
	}
	if d, err := time.Parse(dateLayout, value); err == nil {
		return d, nil
	}
	var firstErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return DateOnly(t.In(loc)), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// DateOnly takes the calendar date of t in t's location and returns it at
// midnight UTC. Convert t with In first to read the date in another zone.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a calendar date the way reminders store it.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// daysBetween counts calendar days from a to b; both must come from DateOnly.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
