package vault

import (
	"context"
	"regexp"

	"almanac/internal/period"
)

// placeholderPattern matches {{title}}, {{date}}, and {{date:FORMAT}}.
// FORMAT uses the same tokens as naming patterns.
var placeholderPattern = regexp.MustCompile(`\{\{(title|date)(?::([^}]*))?\}\}`)

// ExpandTemplate fills template placeholders for one period. Unknown
// placeholders and malformed date formats are left verbatim so that a
// broken template still produces a usable note.
func ExpandTemplate(tmpl string, k period.Key, g period.Granularity) string {
	return placeholderPattern.ReplaceAllStringFunc(tmpl, func(m string) string {
		sub := placeholderPattern.FindStringSubmatch(m)
		switch sub[1] {
		case "title":
			return k.Label(g)
		case "date":
			if sub[2] == "" {
				return k.String()
			}
			segs, err := compileSegments(sub[2])
			if err != nil {
				return m
			}
			return formatSegments(segs, k, g)
		}
		return m
	})
}

// CreateNote creates the note file for a period under a profile and
// returns its vault-relative path. The profile's template is expanded
// when present; a missing or unset template falls back to a title
// heading. Returns ErrExists (wrapped) when the file is already there.
func (s *Store) CreateNote(ctx context.Context, pr *Profile, k period.Key) (string, error) {
	target := pr.NotePath(k)

	content := "# " + k.Label(pr.Granularity()) + "\n"
	if pr.Template() != "" {
		if raw, err := s.Read(ctx, pr.Template()); err == nil {
			content = ExpandTemplate(raw, k, pr.Granularity())
		}
		// An unreadable template is not fatal: the fallback heading
		// keeps note creation working while the vault is set up.
	}
	if err := s.Create(ctx, target, content); err != nil {
		return "", err
	}
	return target, nil
}
