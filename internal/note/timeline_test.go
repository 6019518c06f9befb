package note

import (
	"testing"
	"time"

	"almanac/internal/period"
)

func monthly(t *testing.T, y int, m time.Month, path string) *Note {
	t.Helper()
	n, err := New(period.KeyOf(day(y, m, 1), period.Monthly), period.Monthly, path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return n
}

func TestMerge(t *testing.T) {
	jan := period.KeyOf(day(2024, 1, 1), period.Monthly)
	feb := period.KeyOf(day(2024, 2, 1), period.Monthly)
	mar := period.KeyOf(day(2024, 3, 1), period.Monthly)

	t.Run("real note wins over placeholder at the same key", func(t *testing.T) {
		notes := []*Note{monthly(t, 2024, 1, "monthly/2024-01.md")}
		got := Merge(notes, []period.Key{jan}, Ascending)
		if len(got) != 1 {
			t.Fatalf("got %d entries, want 1", len(got))
		}
		if got[0].Synthetic() {
			t.Error("entry at colliding key is synthetic, want real")
		}
	})

	t.Run("placeholders fill only empty slots", func(t *testing.T) {
		notes := []*Note{
			monthly(t, 2024, 1, "monthly/2024-01.md"),
			monthly(t, 2024, 3, "monthly/2024-03.md"),
		}
		got := Merge(notes, []period.Key{feb}, Ascending)
		if len(got) != 3 {
			t.Fatalf("got %d entries, want 3", len(got))
		}
		wantSynthetic := []bool{false, true, false}
		for i, e := range got {
			if e.Synthetic() != wantSynthetic[i] {
				t.Errorf("entry %d synthetic = %v, want %v", i, e.Synthetic(), wantSynthetic[i])
			}
		}
	})

	t.Run("ascending order", func(t *testing.T) {
		got := Merge(nil, []period.Key{mar, jan, feb}, Ascending)
		for i := 1; i < len(got); i++ {
			if got[i-1].Key >= got[i].Key {
				t.Fatalf("not ascending at %d: %s then %s", i, got[i-1].Key, got[i].Key)
			}
		}
	})

	t.Run("descending order", func(t *testing.T) {
		got := Merge(nil, []period.Key{jan, mar, feb}, Descending)
		for i := 1; i < len(got); i++ {
			if got[i-1].Key <= got[i].Key {
				t.Fatalf("not descending at %d: %s then %s", i, got[i-1].Key, got[i].Key)
			}
		}
	})

	t.Run("duplicate notes collapse to the first", func(t *testing.T) {
		notes := []*Note{
			monthly(t, 2024, 1, "monthly/2024-01.md"),
			monthly(t, 2024, 1, "monthly/duplicate.md"),
		}
		got := Merge(notes, nil, Ascending)
		if len(got) != 1 {
			t.Fatalf("got %d entries, want 1", len(got))
		}
		if got[0].Note.Path != "monthly/2024-01.md" {
			t.Errorf("kept %q, want the first occurrence", got[0].Note.Path)
		}
	})

	t.Run("duplicate placeholders collapse", func(t *testing.T) {
		got := Merge(nil, []period.Key{feb, feb}, Ascending)
		if len(got) != 1 {
			t.Fatalf("got %d entries, want 1", len(got))
		}
	})

	t.Run("empty inputs yield an empty timeline", func(t *testing.T) {
		if got := Merge(nil, nil, Ascending); len(got) != 0 {
			t.Errorf("got %v, want empty", got)
		}
	})
}

func TestVisibleHandles(t *testing.T) {
	notes := []*Note{
		monthly(t, 2024, 1, "monthly/2024-01.md"),
		monthly(t, 2024, 3, "monthly/2024-03.md"),
	}
	feb := period.KeyOf(day(2024, 2, 1), period.Monthly)

	entries := Merge(notes, []period.Key{feb}, Descending)
	got := VisibleHandles(entries)

	want := []string{"monthly/2024-03.md", "monthly/2024-01.md"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("handle %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
