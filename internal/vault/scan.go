package vault

import (
	"context"
	"path"
	"strings"

	"almanac/internal/note"
	"almanac/internal/period"
)

// Scan lists a profile's folder and parses markdown filenames into
// notes. Files whose name does not match the pattern, or that name an
// impossible date, are skipped rather than reported: a vault folder is
// allowed to hold unrelated files. When two files map to the same period
// the lexically first path wins.
func (s *Store) Scan(ctx context.Context, pr *Profile) ([]*note.Note, error) {
	paths, err := s.List(ctx, pr.Folder())
	if err != nil {
		return nil, err
	}

	seen := map[period.Key]bool{}
	var notes []*note.Note
	for _, rel := range paths {
		base := path.Base(rel)
		name, ok := strings.CutSuffix(base, ".md")
		if !ok {
			continue
		}
		key, ok := pr.Pattern().Parse(name)
		if !ok || seen[key] {
			continue
		}
		n, err := note.New(key, pr.Granularity(), rel)
		if err != nil {
			continue
		}
		seen[key] = true
		notes = append(notes, n)
	}
	return notes, nil
}
