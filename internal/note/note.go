// Package note defines the periodic note domain types for almanac.
package note

import (
	"errors"
	"fmt"

	"almanac/internal/period"
)

// Validation errors.
var (
	ErrEmptyPath = errors.New("note path cannot be empty")
)

// Note is a real periodic record backed by a vault file. The note holds
// only a reference to its document; content lives in the vault and is
// never cached here.
type Note struct {
	Key         period.Key
	Granularity period.Granularity
	Path        string // vault-relative slash path
}

// New creates a Note with validation. The key is normalized to the period
// start for the given granularity.
func New(key period.Key, g period.Granularity, path string) (*Note, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %q", period.ErrInvalidGranularity, string(g))
	}
	if path == "" {
		return nil, ErrEmptyPath
	}
	return &Note{
		Key:         period.KeyOf(key.Time(), g),
		Granularity: g,
		Path:        path,
	}, nil
}

// Title returns the human-readable period name of the note.
func (n *Note) Title() string {
	return n.Key.Label(n.Granularity)
}
