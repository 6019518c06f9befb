package period

import (
	"fmt"
	"time"
)

// Key is the canonical identity of one period instance: the Unix timestamp
// of the period's normalized start, taken as a UTC wall-clock date. Two
// machines in different timezones derive the same Key for the same period.
type Key int64

// KeyOf normalizes t to its period start and returns the canonical Key.
func KeyOf(t time.Time, g Granularity) Key {
	s := StartOf(t, g)
	return Key(time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC).Unix())
}

// Time returns the period start instant in UTC.
func (k Key) Time() time.Time {
	return time.Unix(int64(k), 0).UTC()
}

// String renders the start date, e.g. "2024-02-01".
func (k Key) String() string {
	return k.Time().Format("2006-01-02")
}

// Label renders a human-readable period name for the given granularity.
func (k Key) Label(g Granularity) string {
	t := k.Time()
	switch g {
	case Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return t.Format("January 2006")
	case Quarterly:
		return fmt.Sprintf("Q%d %d", QuarterOf(t.Month()), t.Year())
	case Yearly:
		return t.Format("2006")
	default: // Daily
		return t.Format("Mon, Jan 2 2006")
	}
}
