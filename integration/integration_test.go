// Package integration exercises the vault, timeline, reconciliation and
// coverage layers together against a real filesystem.
package integration

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"almanac/internal/note"
	"almanac/internal/period"
	"almanac/internal/reconcile"
	"almanac/internal/summary"
	"almanac/internal/vault"
)

// openStore creates a fresh vault for each test with automatic cleanup.
func openStore(t *testing.T) *vault.Store {
	t.Helper()
	store, err := vault.Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open vault: %v", err)
	}
	return store
}

// dailyProfile builds the default daily layout, optionally with a template.
func dailyProfile(t *testing.T, template string) *vault.Profile {
	t.Helper()
	pr, err := vault.NewProfile(period.Daily, "daily", "YYYY-MM-DD", template)
	if err != nil {
		t.Fatalf("failed to build profile: %v", err)
	}
	return pr
}

// mustParseDate parses a date string or fails the test.
func mustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("failed to parse date %q: %v", s, err)
	}
	return date
}

func dayKey(t *testing.T, day string) period.Key {
	t.Helper()
	return period.KeyOf(mustParseDate(t, day), period.Daily)
}

// writeDaily creates a daily note with raw content.
func writeDaily(t *testing.T, store *vault.Store, day, content string) {
	t.Helper()
	if err := store.Write(context.Background(), "daily/"+day+".md", content); err != nil {
		t.Fatalf("failed to write note: %v", err)
	}
}

// mergedTimeline scans one profile and merges the notes with placeholders
// for every period in [start, end], the way a view load does.
func mergedTimeline(t *testing.T, store *vault.Store, pr *vault.Profile, start, end string, order note.Order) []note.Entry {
	t.Helper()
	notes, err := store.Scan(context.Background(), pr)
	if err != nil {
		t.Fatalf("failed to scan vault: %v", err)
	}
	var missing []period.Key
	for _, tm := range period.Range(mustParseDate(t, start), mustParseDate(t, end), pr.Granularity()) {
		missing = append(missing, period.KeyOf(tm, pr.Granularity()))
	}
	return note.Merge(notes, missing, order)
}

func TestCreateNoteFromTemplate(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	tmpl := "# {{title}}\n\nDate: {{date:YYYY-MM-DD}}\n\n- [ ] Reviewed\n"
	if err := store.Write(ctx, "templates/daily.md", tmpl); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
	pr := dailyProfile(t, "templates/daily.md")

	path, err := store.CreateNote(ctx, pr, dayKey(t, "2026-03-14"))
	if err != nil {
		t.Fatalf("failed to create note: %v", err)
	}
	if path != "daily/2026-03-14.md" {
		t.Errorf("created path: got %q, want daily/2026-03-14.md", path)
	}

	content, err := store.Read(ctx, path)
	if err != nil {
		t.Fatalf("failed to read created note: %v", err)
	}
	if !strings.Contains(content, "# Sat, Mar 14 2026") {
		t.Errorf("expected expanded title heading, got:\n%s", content)
	}
	if !strings.Contains(content, "Date: 2026-03-14") {
		t.Errorf("expected expanded date, got:\n%s", content)
	}
	if note.IsComplete(content, "Reviewed") {
		t.Error("fresh note must start unreviewed")
	}
}

func TestCreateNote_AlreadyExists(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	pr := dailyProfile(t, "")

	k := dayKey(t, "2026-03-14")
	if _, err := store.CreateNote(ctx, pr, k); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := store.CreateNote(ctx, pr, k)
	if !errors.Is(err, vault.ErrExists) {
		t.Fatalf("second create: got %v, want ErrExists", err)
	}
}

func TestCreateNote_NoTemplateFallsBackToHeading(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	pr := dailyProfile(t, "")

	path, err := store.CreateNote(ctx, pr, dayKey(t, "2026-03-14"))
	if err != nil {
		t.Fatalf("failed to create note: %v", err)
	}
	content, err := store.Read(ctx, path)
	if err != nil {
		t.Fatalf("failed to read created note: %v", err)
	}
	if content != "# Sat, Mar 14 2026\n" {
		t.Errorf("fallback content: got %q, want title heading", content)
	}
}

func TestScanMergeFillsGaps(t *testing.T) {
	store := openStore(t)
	pr := dailyProfile(t, "")

	writeDaily(t, store, "2026-03-10", "# Mar 10\n")
	writeDaily(t, store, "2026-03-12", "# Mar 12\n")

	entries := mergedTimeline(t, store, pr, "2026-03-10", "2026-03-14", note.Ascending)

	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	wantSynthetic := map[string]bool{
		"2026-03-10": false,
		"2026-03-11": true,
		"2026-03-12": false,
		"2026-03-13": true,
		"2026-03-14": true,
	}
	for i, e := range entries {
		day := e.Key.String()
		want, ok := wantSynthetic[day]
		if !ok {
			t.Fatalf("entries[%d] = %s, not in expected range", i, day)
		}
		if e.Synthetic() != want {
			t.Errorf("entries[%d] (%s) synthetic = %t, want %t", i, day, e.Synthetic(), want)
		}
	}
}

func TestScanSkipsForeignFiles(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	pr := dailyProfile(t, "")

	writeDaily(t, store, "2026-03-14", "# Mar 14\n")
	if err := store.Write(ctx, "daily/notes.txt", "not markdown"); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := store.Write(ctx, "daily/scratch.md", "name does not parse"); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	notes, err := store.Scan(ctx, pr)
	if err != nil {
		t.Fatalf("failed to scan vault: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].Path != "daily/2026-03-14.md" {
		t.Errorf("scanned path: got %q, want daily/2026-03-14.md", notes[0].Path)
	}
}

func TestReconcilePinsFocusedCard(t *testing.T) {
	store := openStore(t)
	pr := dailyProfile(t, "")

	writeDaily(t, store, "2026-03-13", "# Mar 13\n")
	writeDaily(t, store, "2026-03-14", "# Mar 14\n")

	r := reconcile.New(reconcile.Options{})

	// First pass mounts everything.
	entries := mergedTimeline(t, store, pr, "2026-03-13", "2026-03-14", note.Descending)
	items := make([]reconcile.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, reconcile.Item{Key: e.Key, Synthetic: e.Synthetic()})
	}
	script := r.Reconcile(items)
	if len(script.Steps) != 2 {
		t.Fatalf("first pass steps: got %d, want 2", len(script.Steps))
	}
	for _, step := range script.Steps {
		if step.Op != reconcile.OpCreate {
			t.Fatalf("first pass op: got %q, want create", step.Op)
		}
	}

	// Focus the note being edited, then delete its file from the vault.
	focused := dayKey(t, "2026-03-14")
	r.SetExpanded(focused, true)
	r.SetMode(focused, reconcile.ModeEditSource)
	r.SetFocus(focused)

	script = r.Reconcile([]reconcile.Item{{Key: dayKey(t, "2026-03-13")}})

	for _, step := range script.Steps {
		if step.Key == focused && step.Op == reconcile.OpRemove {
			t.Fatal("focused card must not be removed by a pass")
		}
	}
	if len(script.Deferred) != 1 || script.Deferred[0] != focused {
		t.Fatalf("deferred: got %v, want [%s]", script.Deferred, focused)
	}

	// Once focus is released the next pass may drop it.
	r.ReleaseFocus()
	script = r.Reconcile([]reconcile.Item{{Key: dayKey(t, "2026-03-13")}})
	removed := false
	for _, step := range script.Steps {
		if step.Key == focused && step.Op == reconcile.OpRemove {
			removed = true
		}
	}
	if !removed {
		t.Fatal("released card should be removed on the next pass")
	}
}

func TestCompletionRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	writeDaily(t, store, "2026-03-14", "# Mar 14\n\n- [ ] Reviewed\n")

	content, err := store.Read(ctx, "daily/2026-03-14.md")
	if err != nil {
		t.Fatalf("failed to read note: %v", err)
	}
	if note.IsComplete(content, "Reviewed") {
		t.Fatal("note must start unreviewed")
	}

	updated := note.SetComplete(content, "Reviewed", true)
	if err := store.Write(ctx, "daily/2026-03-14.md", updated); err != nil {
		t.Fatalf("failed to write toggled note: %v", err)
	}

	content, err = store.Read(ctx, "daily/2026-03-14.md")
	if err != nil {
		t.Fatalf("failed to re-read note: %v", err)
	}
	if !note.IsComplete(content, "Reviewed") {
		t.Fatal("toggled note should read back as reviewed")
	}
}

func TestCoverageCountsReviewedPeriods(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	pr := dailyProfile(t, "")

	writeDaily(t, store, "2026-03-10", "# Mar 10\n\n- [x] Reviewed\n")
	writeDaily(t, store, "2026-03-12", "# Mar 12\n\n- [ ] Reviewed\n")

	cov, err := summary.BuildCoverage(ctx, store, pr, summary.BuildCoverageOptions{
		Now:    mustParseDate(t, "2026-03-14"),
		Marker: "Reviewed",
	})
	if err != nil {
		t.Fatalf("failed to build coverage: %v", err)
	}

	if cov.Periods != 5 {
		t.Errorf("periods: got %d, want 5", cov.Periods)
	}
	if cov.Present != 2 {
		t.Errorf("present: got %d, want 2", cov.Present)
	}
	if cov.Complete != 1 {
		t.Errorf("complete: got %d, want 1", cov.Complete)
	}
	if got := cov.From.String(); got != "2026-03-10" {
		t.Errorf("span start: got %s, want 2026-03-10", got)
	}
}

func TestFullWorkflow(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	pr := dailyProfile(t, "")

	// 1. Create notes for two days, one gap between them
	if _, err := store.CreateNote(ctx, pr, dayKey(t, "2026-03-12")); err != nil {
		t.Fatalf("failed to create note: %v", err)
	}
	if _, err := store.CreateNote(ctx, pr, dayKey(t, "2026-03-14")); err != nil {
		t.Fatalf("failed to create note: %v", err)
	}

	// 2. Merge the scan into a three-day timeline
	entries := mergedTimeline(t, store, pr, "2026-03-12", "2026-03-14", note.Descending)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Key.String() != "2026-03-14" {
		t.Errorf("descending head: got %s, want 2026-03-14", entries[0].Key)
	}
	if !entries[1].Synthetic() {
		t.Error("2026-03-13 should be a gap placeholder")
	}

	// 3. First reconciliation pass mounts every entry in order
	r := reconcile.New(reconcile.Options{ExpandFirst: true})
	items := make([]reconcile.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, reconcile.Item{Key: e.Key, Synthetic: e.Synthetic()})
	}
	script := r.Reconcile(items)
	if len(script.Steps) != 3 {
		t.Fatalf("first pass steps: got %d, want 3", len(script.Steps))
	}
	if st, ok := r.State(dayKey(t, "2026-03-14")); !ok || !st.Expanded {
		t.Error("first card should open expanded")
	}

	// 4. Materialize the gap and reconcile again: one create, two keeps
	if _, err := store.CreateNote(ctx, pr, dayKey(t, "2026-03-13")); err != nil {
		t.Fatalf("failed to fill gap: %v", err)
	}
	entries = mergedTimeline(t, store, pr, "2026-03-12", "2026-03-14", note.Descending)
	items = items[:0]
	for _, e := range entries {
		items = append(items, reconcile.Item{Key: e.Key, Synthetic: e.Synthetic()})
	}
	script = r.Reconcile(items)
	creates, keeps := 0, 0
	for _, step := range script.Steps {
		switch step.Op {
		case reconcile.OpCreate:
			creates++
		case reconcile.OpKeep:
			keeps++
		}
	}
	if creates != 1 || keeps != 2 {
		t.Fatalf("second pass: got %d creates and %d keeps, want 1 and 2", creates, keeps)
	}

	// 5. Mark one day reviewed and confirm coverage sees it
	content, err := store.Read(ctx, "daily/2026-03-13.md")
	if err != nil {
		t.Fatalf("failed to read note: %v", err)
	}
	if err := store.Write(ctx, "daily/2026-03-13.md", note.SetComplete(content, "Reviewed", true)); err != nil {
		t.Fatalf("failed to mark reviewed: %v", err)
	}

	cov, err := summary.BuildCoverage(ctx, store, pr, summary.BuildCoverageOptions{
		Now:    mustParseDate(t, "2026-03-14"),
		Marker: "Reviewed",
	})
	if err != nil {
		t.Fatalf("failed to build coverage: %v", err)
	}
	if cov.Present != 3 || cov.Complete != 1 {
		t.Fatalf("coverage: got %d present and %d complete, want 3 and 1", cov.Present, cov.Complete)
	}
}
