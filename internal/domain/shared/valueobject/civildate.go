package valueobject

import (
	"strings"
	"time"
)

// CivilDate is a date-only value object used for scheduling comparisons.
// Time-of-day is discarded on construction, so a date compared against a
// clock reading from any moment of the same day yields zero days distance.
// The zero CivilDate means "no date": it fails every threshold check instead
// of producing an error.
type CivilDate struct {
	year  int
	month time.Month
	day   int
	valid bool
}

// CivilDateOf creates a CivilDate from a time value, discarding time-of-day.
func CivilDateOf(t time.Time) CivilDate {
	year, month, day := t.Date()
	return CivilDate{year: year, month: month, day: day, valid: true}
}

// ParseCivilDate parses "2006-01-02" or an RFC3339 timestamp into a CivilDate.
// Unparseable or empty input yields the zero CivilDate, never an error.
func ParseCivilDate(value string) CivilDate {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return CivilDate{}
	}
	if idx := strings.IndexByte(trimmed, 'T'); idx > 0 {
		trimmed = trimmed[:idx]
	}
	parsed, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return CivilDate{}
	}
	return CivilDateOf(parsed)
}

// IsZero reports whether the date is absent.
func (d CivilDate) IsZero() bool {
	return !d.valid
}

// Time returns the date at midnight UTC. Zero dates return the zero time.
func (d CivilDate) Time() time.Time {
	if !d.valid {
		return time.Time{}
	}
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// String returns the ISO date representation, or "" for the zero date.
func (d CivilDate) String() string {
	if !d.valid {
		return ""
	}
	return d.Time().Format("2006-01-02")
}

// Equal reports whether two dates name the same day.
func (d CivilDate) Equal(other CivilDate) bool {
	return d == other
}

// Before reports whether d names an earlier day than other.
// A zero date is never before anything.
func (d CivilDate) Before(other CivilDate) bool {
	if !d.valid || !other.valid {
		return false
	}
	return d.Time().Before(other.Time())
}

// DaysUntil returns the signed number of whole days from now's calendar day
// to this date. The second return value is false when the date is absent;
// callers treat that as "threshold not met".
func (d CivilDate) DaysUntil(now time.Time) (int, bool) {
	if !d.valid {
		return 0, false
	}
	today := CivilDateOf(now).Time()
	diff := d.Time().Sub(today)
	return int(diff.Hours() / 24), true
}
