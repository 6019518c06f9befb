package note

import (
	"sort"

	"almanac/internal/period"
)

// Order is the sort direction of a merged timeline.
type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// Valid returns true if the order is a valid value.
func (o Order) Valid() bool {
	switch o {
	case Ascending, Descending:
		return true
	default:
		return false
	}
}

// Entry is one slot of a merged timeline: a real note, or a synthetic
// missing period when Note is nil. Synthetic entries are regenerated on
// every merge and never persisted.
type Entry struct {
	Key  period.Key
	Note *Note
}

// Synthetic reports whether the entry is a placeholder without a backing
// document.
func (e Entry) Synthetic() bool {
	return e.Note == nil
}

// Merge combines real notes with missing-period placeholders into one
// deduplicated sequence ordered by key. A real note always wins over a
// placeholder at the same key, and duplicate inputs collapse to the first
// occurrence, so no key ever appears twice in the output.
func Merge(notes []*Note, missing []period.Key, order Order) []Entry {
	byKey := make(map[period.Key]Entry, len(notes)+len(missing))
	for _, n := range notes {
		if n == nil {
			continue
		}
		if _, ok := byKey[n.Key]; ok {
			continue
		}
		byKey[n.Key] = Entry{Key: n.Key, Note: n}
	}
	for _, k := range missing {
		if _, ok := byKey[k]; ok {
			continue
		}
		byKey[k] = Entry{Key: k}
	}

	out := make([]Entry, 0, len(byKey))
	for _, e := range byKey {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if order == Descending {
			return out[i].Key > out[j].Key
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// VisibleHandles returns the backing paths of the real entries in timeline
// order. Synthetic entries have no document and are skipped.
func VisibleHandles(entries []Entry) []string {
	var paths []string
	for _, e := range entries {
		if e.Synthetic() {
			continue
		}
		paths = append(paths, e.Note.Path)
	}
	return paths
}
