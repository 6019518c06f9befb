// Package summary provides shared period coverage utilities.
package summary

import (
	"context"
	"fmt"
	"time"

	"almanac/internal/note"
	"almanac/internal/period"
	"almanac/internal/vault"
)

// Coverage holds aggregated review coverage for one granularity. The
// span runs from the earliest counted period through the current one;
// periods that have not started yet are never counted.
type Coverage struct {
	Granularity period.Granularity
	From        period.Key
	To          period.Key
	Periods     int // periods elapsed in the span
	Present     int // elapsed periods that have a note
	Complete    int // elapsed periods whose note is marked reviewed
}

// PresentPct returns the share of elapsed periods that have a note.
func (c *Coverage) PresentPct() float64 {
	if c.Periods == 0 {
		return 0
	}
	return 100 * float64(c.Present) / float64(c.Periods)
}

// CompletePct returns the share of elapsed periods marked reviewed.
func (c *Coverage) CompletePct() float64 {
	if c.Periods == 0 {
		return 0
	}
	return 100 * float64(c.Complete) / float64(c.Periods)
}

// CoverageOptions configures coverage statistics.
type CoverageOptions struct {
	// Since bounds the span start; zero means the earliest note.
	Since time.Time
	// Now anchors the span end; zero means time.Now().
	Now time.Time
}

// BuildCoverageOptions configures the vault-backed coverage builder.
type BuildCoverageOptions struct {
	Since  time.Time
	Now    time.Time
	Marker string
}

// SummarizeCoverage computes coverage from notes and a completion
// predicate. A nil predicate counts nothing as complete. Notes dated
// after now are ignored: a pre-created future note is not yet due.
func SummarizeCoverage(g period.Granularity, notes []*note.Note, complete func(*note.Note) bool, opts CoverageOptions) *Coverage {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	to := period.KeyOf(now, g)

	byKey := map[period.Key]*note.Note{}
	var from period.Key
	haveFrom := false
	for _, n := range notes {
		if n == nil || n.Key > to {
			continue
		}
		if _, ok := byKey[n.Key]; !ok {
			byKey[n.Key] = n
		}
		if !haveFrom || n.Key < from {
			from = n.Key
			haveFrom = true
		}
	}
	if !opts.Since.IsZero() {
		from = period.KeyOf(opts.Since, g)
		haveFrom = true
	}

	cov := &Coverage{Granularity: g}
	if !haveFrom || from > to {
		return cov
	}
	cov.From, cov.To = from, to

	for cur := from.Time(); ; cur = period.Add(cur, g, 1) {
		k := period.KeyOf(cur, g)
		if k > to {
			break
		}
		cov.Periods++
		n, ok := byKey[k]
		if !ok {
			continue
		}
		cov.Present++
		if complete != nil && complete(n) {
			cov.Complete++
		}
	}
	return cov
}

// BuildCoverage scans one granularity's notes from the vault and reads
// each to evaluate its completion marker.
func BuildCoverage(ctx context.Context, store *vault.Store, pr *vault.Profile, opts BuildCoverageOptions) (*Coverage, error) {
	notes, err := store.Scan(ctx, pr)
	if err != nil {
		return nil, fmt.Errorf("scanning notes: %w", err)
	}

	marker := opts.Marker
	if marker == "" {
		marker = note.DefaultMarker
	}

	done := make(map[period.Key]bool, len(notes))
	for _, n := range notes {
		content, err := store.Read(ctx, n.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", n.Path, err)
		}
		done[n.Key] = note.IsComplete(content, marker)
	}

	return SummarizeCoverage(pr.Granularity(), notes, func(n *note.Note) bool {
		return done[n.Key]
	}, CoverageOptions{Since: opts.Since, Now: opts.Now}), nil
}
