package period

import "time"

// fallbackCandidates bounds the candidate list when no enabled ancestor
// carries a concrete selection.
const fallbackCandidates = 12

// Selection is a partial hierarchical period selection. Zero values mean
// unset. Week is an ISO week number owned by WeekYear, which can differ
// from Year around the new year (2024-12-30 falls in 2025-W01).
type Selection struct {
	Year     int
	Quarter  int // 1-4
	Month    time.Month
	Week     int // ISO week 1-53
	WeekYear int
	Day      time.Time
}

// SelectYear sets the year and drops every more specific selection.
func (s Selection) SelectYear(year int) Selection {
	return Selection{Year: year}
}

// SelectQuarter sets the quarter within the current year selection.
func (s Selection) SelectQuarter(q int) Selection {
	return Selection{Year: s.Year, Quarter: q}
}

// SelectMonth sets the month, aligning the quarter with it.
func (s Selection) SelectMonth(m time.Month) Selection {
	return Selection{Year: s.Year, Quarter: QuarterOf(m), Month: m}
}

// SelectWeek sets the ISO week. The month is left untouched because a week
// may straddle two months.
func (s Selection) SelectWeek(weekYear, week int) Selection {
	s.Week = week
	s.WeekYear = weekYear
	s.Day = time.Time{}
	return s
}

// SelectDay sets the day and realigns every ancestor selection with it.
func (s Selection) SelectDay(d time.Time) Selection {
	wy, wk := d.ISOWeek()
	return Selection{
		Year:     d.Year(),
		Quarter:  QuarterOf(d.Month()),
		Month:    d.Month(),
		Week:     wk,
		WeekYear: wy,
		Day:      d,
	}
}

// concreteFor reports whether the selection pins down one period at the
// given granularity.
func (s Selection) concreteFor(g Granularity) bool {
	switch g {
	case Yearly:
		return s.Year != 0
	case Quarterly:
		return s.Year != 0 && s.Quarter >= 1 && s.Quarter <= 4
	case Monthly:
		return s.Year != 0 && s.Month >= time.January && s.Month <= time.December
	case Weekly:
		return s.Week != 0 && (s.WeekYear != 0 || s.Year != 0)
	case Daily:
		return !s.Day.IsZero()
	default:
		return false
	}
}

// boundsFor returns the span of the selected period at granularity g.
func (s Selection) boundsFor(g Granularity) (start, end time.Time, ok bool) {
	if !s.concreteFor(g) {
		return time.Time{}, time.Time{}, false
	}
	switch g {
	case Yearly:
		start = time.Date(s.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	case Quarterly:
		start = time.Date(s.Year, time.Month((s.Quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	case Monthly:
		start = time.Date(s.Year, s.Month, 1, 0, 0, 0, 0, time.UTC)
	case Weekly:
		wy := s.WeekYear
		if wy == 0 {
			wy = s.Year
		}
		start = ISOWeekStart(wy, s.Week)
	case Daily:
		start = StartOf(s.Day, Daily)
	}
	return start, EndOf(start, g), true
}

// Candidates generates the candidate period starts for the requested
// granularity. The nearest enabled ancestor with a concrete selection
// bounds the range; ancestors are consulted from most specific to least,
// and a disabled ancestor's selection is never consulted directly. Without
// any such ancestor the result is a bounded window of the most recent
// periods ending at the period holding now.
func Candidates(g Granularity, sel Selection, enabled map[Granularity]bool, now time.Time) []time.Time {
	for _, anc := range g.Ancestors() {
		if !enabled[anc] {
			continue
		}
		if start, end, ok := sel.boundsFor(anc); ok {
			return Range(start, end, g)
		}
	}
	end := EndOf(now, g)
	start := Add(now, g, -(fallbackCandidates - 1))
	return Range(start, end, g)
}

// ISOWeekStart returns midnight of the Monday opening the given ISO week.
// January 4 always falls in week 1 of its ISO year.
func ISOWeekStart(weekYear, week int) time.Time {
	jan4 := time.Date(weekYear, time.January, 4, 0, 0, 0, 0, time.UTC)
	return StartOf(jan4, Weekly).AddDate(0, 0, 7*(week-1))
}
