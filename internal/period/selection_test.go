package period

import (
	"testing"
	"time"
)

func assertStarts(t *testing.T, got, want []time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d candidates %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("candidate %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCandidates(t *testing.T) {
	now := date(2024, 6, 15)

	t.Run("month selection bounds the weeks", func(t *testing.T) {
		sel := Selection{}.SelectYear(2024).SelectMonth(time.February)
		enabled := map[Granularity]bool{Yearly: true, Monthly: true, Weekly: true}

		got := Candidates(Weekly, sel, enabled, now)

		// Every week touching February 2024, including the one starting
		// in late January.
		assertStarts(t, got, []time.Time{
			date(2024, 1, 29),
			date(2024, 2, 5),
			date(2024, 2, 12),
			date(2024, 2, 19),
			date(2024, 2, 26),
		})
	})

	t.Run("disabled ancestor is skipped", func(t *testing.T) {
		sel := Selection{}.SelectYear(2024).SelectMonth(time.February)
		enabled := map[Granularity]bool{Yearly: true, Weekly: true}

		got := Candidates(Weekly, sel, enabled, now)

		// The month is selected but the monthly granularity is off, so the
		// year bounds the list instead: 53 weeks touch calendar 2024.
		if len(got) != 53 {
			t.Fatalf("got %d candidates, want 53", len(got))
		}
		if !got[0].Equal(date(2024, 1, 1)) {
			t.Errorf("first candidate %v, want 2024-01-01", got[0])
		}
		if !got[52].Equal(date(2024, 12, 30)) {
			t.Errorf("last candidate %v, want 2024-12-30", got[52])
		}
	})

	t.Run("quarter selection bounds the months", func(t *testing.T) {
		sel := Selection{}.SelectYear(2024).SelectQuarter(2)
		enabled := map[Granularity]bool{Quarterly: true, Monthly: true}

		got := Candidates(Monthly, sel, enabled, now)

		assertStarts(t, got, []time.Time{
			date(2024, 4, 1),
			date(2024, 5, 1),
			date(2024, 6, 1),
		})
	})

	t.Run("week selection bounds the days", func(t *testing.T) {
		sel := Selection{}.SelectYear(2024).SelectMonth(time.February).SelectWeek(2024, 7)
		enabled := map[Granularity]bool{Monthly: true, Weekly: true, Daily: true}

		got := Candidates(Daily, sel, enabled, now)

		if len(got) != 7 {
			t.Fatalf("got %d candidates, want 7", len(got))
		}
		if !got[0].Equal(date(2024, 2, 12)) {
			t.Errorf("first candidate %v, want 2024-02-12", got[0])
		}
	})

	t.Run("empty selection falls back to a recent window", func(t *testing.T) {
		enabled := map[Granularity]bool{Yearly: true, Monthly: true, Daily: true}

		got := Candidates(Daily, Selection{}, enabled, now)

		if len(got) != fallbackCandidates {
			t.Fatalf("got %d candidates, want %d", len(got), fallbackCandidates)
		}
		if !got[len(got)-1].Equal(date(2024, 6, 15)) {
			t.Errorf("last candidate %v, want 2024-06-15", got[len(got)-1])
		}
		if !got[0].Equal(date(2024, 6, 4)) {
			t.Errorf("first candidate %v, want 2024-06-04", got[0])
		}
	})

	t.Run("no enabled ancestor falls back even when selected", func(t *testing.T) {
		sel := Selection{}.SelectYear(2024).SelectMonth(time.February)
		enabled := map[Granularity]bool{Weekly: true}

		got := Candidates(Weekly, sel, enabled, now)

		if len(got) != fallbackCandidates {
			t.Fatalf("got %d candidates, want %d", len(got), fallbackCandidates)
		}
		if !got[len(got)-1].Equal(StartOf(now, Weekly)) {
			t.Errorf("last candidate %v, want the current week", got[len(got)-1])
		}
	})
}

func TestSelectionSetters(t *testing.T) {
	t.Run("selecting a month aligns the quarter", func(t *testing.T) {
		sel := Selection{}.SelectYear(2024).SelectMonth(time.November)
		if sel.Quarter != 4 {
			t.Errorf("quarter = %d, want 4", sel.Quarter)
		}
	})

	t.Run("selecting a year drops finer selections", func(t *testing.T) {
		sel := Selection{}.SelectDay(date(2024, 2, 14)).SelectYear(2025)
		if sel.Month != 0 || sel.Week != 0 || !sel.Day.IsZero() {
			t.Errorf("finer selections survived: %+v", sel)
		}
	})

	t.Run("selecting a day realigns every ancestor", func(t *testing.T) {
		sel := Selection{}.SelectDay(date(2024, 12, 31))
		if sel.Year != 2024 || sel.Quarter != 4 || sel.Month != time.December {
			t.Errorf("ancestors misaligned: %+v", sel)
		}
		// Dec 31 2024 belongs to ISO week 2025-W01.
		if sel.WeekYear != 2025 || sel.Week != 1 {
			t.Errorf("week = %d-W%02d, want 2025-W01", sel.WeekYear, sel.Week)
		}
	})

	t.Run("selecting a week keeps the month", func(t *testing.T) {
		sel := Selection{}.SelectYear(2024).SelectMonth(time.February).SelectWeek(2024, 9)
		if sel.Month != time.February {
			t.Errorf("month = %v, want February", sel.Month)
		}
	})
}

func TestISOWeekStart(t *testing.T) {
	tests := []struct {
		weekYear int
		week     int
		want     time.Time
	}{
		{2024, 1, date(2024, 1, 1)},
		{2025, 1, date(2024, 12, 30)},
		{2020, 53, date(2020, 12, 28)},
		{2024, 7, date(2024, 2, 12)},
	}

	for _, tt := range tests {
		got := ISOWeekStart(tt.weekYear, tt.week)
		if !got.Equal(tt.want) {
			t.Errorf("ISOWeekStart(%d, %d) = %v, want %v", tt.weekYear, tt.week, got, tt.want)
		}
		if gotYear, gotWeek := got.ISOWeek(); gotYear != tt.weekYear || gotWeek != tt.week {
			t.Errorf("ISOWeekStart(%d, %d) maps back to %d-W%02d", tt.weekYear, tt.week, gotYear, gotWeek)
		}
	}
}
