package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		today := TruncateToDay(time.Now())
		if !got.Equal(today) {
			t.Errorf("got %v, want %v", got, today)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("01-15-2025")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestNewDateRange(t *testing.T) {
	t.Run("valid date range", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "2025-01-20")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expectedStart := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		expectedEnd := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
		if !dr.Start.Equal(expectedStart) {
			t.Errorf("got start %v, want %v", dr.Start, expectedStart)
		}
		if !dr.End.Equal(expectedEnd) {
			t.Errorf("got end %v, want %v", dr.End, expectedEnd)
		}
	})

	t.Run("same start and end date", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dr.Start.Equal(dr.End) {
			t.Errorf("expected start and end to be equal, got %v and %v", dr.Start, dr.End)
		}
	})

	t.Run("empty end defaults to start", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dr.End.Equal(dr.Start) {
			t.Errorf("got end %v, want %v", dr.End, dr.Start)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewDateRange("2025-01-20", "2025-01-15")
		if !errors.Is(err, ErrEndDateBeforeStart) {
			t.Errorf("got error %v, want %v", err, ErrEndDateBeforeStart)
		}
	})
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2025, 3, 14, 15, 9, 26, 535, time.UTC)
	got := TruncateToDay(in)
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseRelativeDate(t *testing.T) {
	// Wednesday.
	ref := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"empty is today", "", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"today", "today", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"yesterday", "yesterday", time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC)},
		{"tomorrow", "tomorrow", time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)},
		{"last week", "last-week", time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)},
		{"next week", "next-week", time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC)},
		{"bare weekday looks back", "monday", time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
		{"bare weekday today counts", "wednesday", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"bare weekday wraps to last week", "friday", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{"last weekday", "last-monday", time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
		{"last weekday same day goes a week back", "last-wednesday", time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)},
		{"next weekday", "next-friday", time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)},
		{"next weekday same day goes a week ahead", "next-wednesday", time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC)},
		{"absolute date", "2025-02-01", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"absolute past date", "2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"case insensitive", "TOMORROW", time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)},
		{"surrounding whitespace", "  friday  ", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeDate(tt.input, ref)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("unrecognized input", func(t *testing.T) {
		for _, input := range []string{"someday", "next-someday", "last-", "15/01/2025"} {
			if _, err := ParseRelativeDate(input, ref); !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("input %q: got error %v, want %v", input, err, ErrInvalidDateFormat)
			}
		}
	})
}
