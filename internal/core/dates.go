package core

import (
	"strings"
	"time"
)

// DateFormats are tried in order when parsing a transaction's date string.
// First successful parse wins.
var DateFormats = []string{
	"2006-01-02",
	"02 Jan 2006",
	"2-Jan-2006",
	"02/01/2006",
}

// ParseDate tries each accepted format in turn, in UTC. The second result
// is false when no format matches; range filters treat that as fail-open
// and keep the record.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range DateFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateOnly truncates to calendar-day granularity in UTC so that range
// comparisons never mix instants across time zones.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InRange reports whether day is within the inclusive bounds of r,
// compared at day granularity.
func (r DateRange) InRange(day time.Time) bool {
	d := dateOnly(day)
	if !r.From.IsZero() && d.Before(dateOnly(r.From)) {
		return false
	}
	if !r.To.IsZero() && d.After(dateOnly(r.To)) {
		return false
	}
	return true
}
