package vault

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	return s
}

func TestOpenEmptyRoot(t *testing.T) {
	if _, err := Open(""); !errors.Is(err, ErrEmptyRoot) {
		t.Fatalf("Open(\"\") error = %v, want ErrEmptyRoot", err)
	}
}

func TestOpenCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "vault")
	if _, err := Open(root); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		t.Fatalf("vault root not created: %v", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const content = "# Wed, Feb 14 2024\n\n- [ ] Reviewed\n"
	if err := s.Write(ctx, "daily/2024-02-14.md", content); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, err := s.Read(ctx, "daily/2024-02-14.md")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got != content {
		t.Errorf("Read() = %q, want %q", got, content)
	}

	// The key maps onto a real nested file so external editors see it.
	if _, err := os.Stat(filepath.Join(s.Root(), "daily", "2024-02-14.md")); err != nil {
		t.Errorf("note file missing on disk: %v", err)
	}
}

func TestReadMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Read(context.Background(), "daily/2024-02-14.md"); err == nil {
		t.Fatal("Read() of missing file succeeded")
	}
}

func TestCreateRefusesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, "daily/2024-02-14.md", "first"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := s.Create(ctx, "daily/2024-02-14.md", "second"); !errors.Is(err, ErrExists) {
		t.Fatalf("Create() twice error = %v, want ErrExists", err)
	}

	got, err := s.Read(ctx, "daily/2024-02-14.md")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got != "first" {
		t.Errorf("content = %q, want untouched %q", got, "first")
	}
}

func TestListFiltersAndSorts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, p := range []string{
		"weekly/2024-W07.md",
		"daily/2024-02-15.md",
		"daily/2024-02-14.md",
		".obsidian/workspace.json",
	} {
		if err := s.Write(ctx, p, "x"); err != nil {
			t.Fatalf("Write(%s) error: %v", p, err)
		}
	}

	all, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	wantAll := []string{"daily/2024-02-14.md", "daily/2024-02-15.md", "weekly/2024-W07.md"}
	if !reflect.DeepEqual(all, wantAll) {
		t.Errorf("List(\"\") = %v, want %v", all, wantAll)
	}

	daily, err := s.List(ctx, "daily")
	if err != nil {
		t.Fatalf("List(daily) error: %v", err)
	}
	wantDaily := []string{"daily/2024-02-14.md", "daily/2024-02-15.md"}
	if !reflect.DeepEqual(daily, wantDaily) {
		t.Errorf("List(daily) = %v, want %v", daily, wantDaily)
	}
}

func TestListMissingFolder(t *testing.T) {
	s := newTestStore(t)
	got, err := s.List(context.Background(), "daily")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() of missing folder = %v, want empty", got)
	}
}

func TestEnsureFolder(t *testing.T) {
	s := newTestStore(t)
	if err := s.EnsureFolder("daily"); err != nil {
		t.Fatalf("EnsureFolder() error: %v", err)
	}
	if fi, err := os.Stat(filepath.Join(s.Root(), "daily")); err != nil || !fi.IsDir() {
		t.Fatalf("folder not created: %v", err)
	}
	// Idempotent.
	if err := s.EnsureFolder("daily"); err != nil {
		t.Fatalf("EnsureFolder() second call error: %v", err)
	}
}

func TestExists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if s.Exists("daily/2024-02-14.md") {
		t.Fatal("Exists() true before write")
	}
	if err := s.Write(ctx, "daily/2024-02-14.md", "x"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if !s.Exists("daily/2024-02-14.md") {
		t.Fatal("Exists() false after write")
	}
}

func TestReadCancelledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Read(ctx, "daily/2024-02-14.md"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Read() error = %v, want context.Canceled", err)
	}
}
