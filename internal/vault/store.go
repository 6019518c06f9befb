// Package vault adapts a local markdown vault to the document surfaces the
// timeline needs: list, read, write, create, template expansion, and change
// watching.
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Store errors.
var (
	ErrEmptyRoot = errors.New("vault: path required")
	ErrExists    = errors.New("vault: file already exists")
)

// Store is a diskv-backed document store rooted at the vault directory.
// Keys are vault-relative slash paths like "daily/2024-02-14.md". Reads
// are uncached because external editors rewrite files behind our back.
type Store struct {
	root string
	d    *diskv.Diskv
}

// Open opens (and creates if needed) a vault rooted at root.
func Open(root string) (*Store, error) {
	if root == "" {
		return nil, ErrEmptyRoot
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("vault: ensure root: %w", err)
	}
	return &Store{
		root: root,
		d: diskv.New(diskv.Options{
			BasePath:          root,
			AdvancedTransform: pathTransform,
			InverseTransform:  keyTransform,
			CacheSizeMax:      0,
		}),
	}, nil
}

// Root returns the absolute vault directory.
func (s *Store) Root() string {
	return s.root
}

// List returns the vault-relative paths under folder, sorted. Hidden
// files and directories (dot-prefixed segments) are skipped. An empty
// folder lists the whole vault.
func (s *Store) List(ctx context.Context, folder string) ([]string, error) {
	prefix := strings.Trim(folder, "/")

	var keys <-chan string
	if prefix == "" {
		keys = s.d.Keys(ctx.Done())
	} else {
		keys = s.d.KeysPrefix(prefix+"/", ctx.Done())
	}

	var out []string
	for key := range keys {
		if hidden(key) {
			continue
		}
		out = append(out, key)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// Read returns the content of a vault file.
func (s *Store) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := s.d.Read(path)
	if err != nil {
		return "", fmt.Errorf("vault: read %s: %w", path, err)
	}
	return string(data), nil
}

// Write replaces the content of a vault file, creating it if needed.
func (s *Store) Write(ctx context.Context, path, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.d.Write(path, []byte(content)); err != nil {
		return fmt.Errorf("vault: write %s: %w", path, err)
	}
	return nil
}

// Create writes a new vault file. Returns ErrExists when the path is
// already taken.
func (s *Store) Create(ctx context.Context, path, content string) error {
	if s.Exists(path) {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	return s.Write(ctx, path, content)
}

// Exists reports whether a vault file is present.
func (s *Store) Exists(path string) bool {
	return s.d.Has(path)
}

// EnsureFolder creates a vault-relative folder if it does not exist.
func (s *Store) EnsureFolder(folder string) error {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Join(s.root, filepath.FromSlash(folder)), 0o755); err != nil {
		return fmt.Errorf("vault: ensure folder %s: %w", folder, err)
	}
	return nil
}

// hidden reports whether any path segment is dot-prefixed, which covers
// editor state directories like .obsidian and .git.
func hidden(key string) bool {
	for _, seg := range strings.Split(key, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

func pathTransform(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func keyTransform(pk *diskv.PathKey) string {
	if len(pk.Path) == 0 {
		return pk.FileName
	}
	return strings.Join(pk.Path, "/") + "/" + pk.FileName
}
