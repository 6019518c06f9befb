package period

import "time"

// StartOf projects a date to the first instant of its enclosing period.
// Weekly periods start on the ISO Monday of the date's ISO week, so a week
// that straddles a year boundary normalizes into the previous calendar year.
// Idempotent: StartOf(StartOf(d, g), g) == StartOf(d, g).
func StartOf(t time.Time, g Granularity) time.Time {
	switch g {
	case Weekly:
		return startOfISOWeek(t)
	case Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case Quarterly:
		m := quarterFirstMonth(t.Month())
		return time.Date(t.Year(), m, 1, 0, 0, 0, 0, t.Location())
	case Yearly:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	default: // Daily
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// EndOf returns the last instant within the same period as StartOf(t, g).
// Variable month lengths and leap years fall out of stepping to the next
// period start and backing off one nanosecond.
func EndOf(t time.Time, g Granularity) time.Time {
	return Next(t, g).Add(-time.Nanosecond)
}

// Next returns the start of the period immediately after the one holding t.
// Stepping always starts from the normalized period start, so repeated
// iteration cannot drift across month-length or leap-day boundaries.
func Next(t time.Time, g Granularity) time.Time {
	return Add(t, g, 1)
}

// Prev returns the start of the period immediately before the one holding t.
func Prev(t time.Time, g Granularity) time.Time {
	return Add(t, g, -1)
}

// Add returns the start of the period n steps away from the one holding t.
// Negative n steps backward; n == 0 normalizes only.
func Add(t time.Time, g Granularity, n int) time.Time {
	s := StartOf(t, g)
	switch g {
	case Weekly:
		return s.AddDate(0, 0, 7*n)
	case Monthly:
		return s.AddDate(0, n, 0)
	case Quarterly:
		return s.AddDate(0, 3*n, 0)
	case Yearly:
		return s.AddDate(n, 0, 0)
	default: // Daily
		return s.AddDate(0, 0, n)
	}
}

// Range returns the start of every period that overlaps [start, end]
// inclusive, in ascending order. The first entry is the period holding
// start even when that period began earlier. An inverted range is empty.
func Range(start, end time.Time, g Granularity) []time.Time {
	if end.Before(start) {
		return nil
	}
	var out []time.Time
	for cur := StartOf(start, g); !cur.After(end); cur = Add(cur, g, 1) {
		out = append(out, cur)
	}
	return out
}

// Overlaps reports whether the period holding t at granularity g shares at
// least one instant with [rangeStart, rangeEnd]. A week spanning a month,
// quarter, or year boundary overlaps both adjacent periods.
func Overlaps(t time.Time, g Granularity, rangeStart, rangeEnd time.Time) bool {
	s := StartOf(t, g)
	e := EndOf(t, g)
	return !s.After(rangeEnd) && !e.Before(rangeStart)
}

// startOfISOWeek returns midnight of the ISO Monday of t's week.
func startOfISOWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday is day 7 in ISO weeks
	}
	return day.AddDate(0, 0, -(weekday - 1))
}

// quarterFirstMonth maps a month to the first month of its quarter.
func quarterFirstMonth(m time.Month) time.Month {
	return time.Month((int(m)-1)/3*3 + 1)
}

// QuarterOf returns the quarter number (1-4) holding the given month.
func QuarterOf(m time.Month) int {
	return (int(m)-1)/3 + 1
}
