package vault

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"almanac/internal/period"
)

// Profile errors.
var (
	ErrFolderEscapes = errors.New("vault: folder must stay inside the vault")
)

// Profile binds one granularity to its folder, naming pattern, and
// optional template inside a vault. All paths are vault-relative slash
// paths; an empty folder means the vault root.
type Profile struct {
	g        period.Granularity
	folder   string
	pattern  *Pattern
	template string
}

// NewProfile compiles a profile. The pattern is validated against the
// granularity; folder and template must not escape the vault.
func NewProfile(g period.Granularity, folder, pattern, template string) (*Profile, error) {
	p, err := CompilePattern(pattern, g)
	if err != nil {
		return nil, err
	}
	cleanFolder, ok := cleanRel(folder)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFolderEscapes, folder)
	}
	cleanTemplate, ok := cleanRel(template)
	if !ok {
		return nil, fmt.Errorf("%w: template %q", ErrFolderEscapes, template)
	}
	return &Profile{g: g, folder: cleanFolder, pattern: p, template: cleanTemplate}, nil
}

func (pr *Profile) Granularity() period.Granularity { return pr.g }
func (pr *Profile) Folder() string                  { return pr.folder }
func (pr *Profile) Pattern() *Pattern               { return pr.pattern }
func (pr *Profile) Template() string                { return pr.template }

// NotePath composes the vault-relative path of the note file for a key.
func (pr *Profile) NotePath(k period.Key) string {
	return path.Join(pr.folder, pr.pattern.Format(k)+".md")
}

// cleanRel normalizes a vault-relative path and rejects escapes.
func cleanRel(p string) (string, bool) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", true
	}
	if path.IsAbs(p) {
		return "", false
	}
	cleaned := path.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	if cleaned == "." {
		return "", true
	}
	return cleaned, true
}
