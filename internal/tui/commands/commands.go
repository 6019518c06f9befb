// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"almanac/internal/note"
	"almanac/internal/period"
	"almanac/internal/summary"
	"almanac/internal/vault"
)

// TimelineLoadedMsg is sent when one granularity's timeline is rebuilt
// from a vault scan. Seq guards against stale results from overlapping
// scans.
type TimelineLoadedMsg struct {
	Granularity period.Granularity
	Seq         int
	Entries     []note.Entry
}

// CardContentMsg is sent when a note file has been read for a card.
type CardContentMsg struct {
	Granularity period.Granularity
	Key         period.Key
	Seq         int
	Content     string
	Err         error
}

// CardSavedMsg is sent when a card's draft has been written back.
type CardSavedMsg struct {
	Granularity period.Granularity
	Key         period.Key
	Seq         int
	Err         error
}

// NoteCreatedMsg is sent when a note file was created for a period.
type NoteCreatedMsg struct {
	Granularity period.Granularity
	Key         period.Key
	Path        string
	Err         error
}

// CompletionSavedMsg is sent when a review marker toggle has been
// written back. Complete is the state actually stored on disk.
type CompletionSavedMsg struct {
	Granularity period.Granularity
	Key         period.Key
	Complete    bool
	Err         error
}

// VaultEventMsg is sent when the vault watcher reports a change burst.
// OK is false once the watcher channel has closed.
type VaultEventMsg struct {
	Event vault.Event
	OK    bool
}

// SaveTickMsg fires after the save debounce delay for one card.
type SaveTickMsg struct {
	Granularity period.Granularity
	Key         period.Key
	Seq         int
}

// CoverageMsg is sent when review coverage stats are ready.
type CoverageMsg struct {
	Coverages []*summary.Coverage
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadTimeline scans one profile's folder, fills missing periods up to
// the horizon, and merges the result into ordered timeline entries.
func LoadTimeline(store *vault.Store, pr *vault.Profile, horizon int, order note.Order, seq int, now time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		notes, err := store.Scan(ctx, pr)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("scanning %s notes: %w", pr.Granularity(), err)}
		}

		keys := make([]period.Key, len(notes))
		for i, n := range notes {
			keys[i] = n.Key
		}
		missing := period.FindMissing(keys, pr.Granularity(), horizon, now)

		return TimelineLoadedMsg{
			Granularity: pr.Granularity(),
			Seq:         seq,
			Entries:     note.Merge(notes, missing, order),
		}
	}
}

// LoadCard reads one note file for display.
func LoadCard(store *vault.Store, g period.Granularity, key period.Key, path string, seq int) tea.Cmd {
	return func() tea.Msg {
		content, err := store.Read(context.Background(), path)
		return CardContentMsg{
			Granularity: g,
			Key:         key,
			Seq:         seq,
			Content:     content,
			Err:         err,
		}
	}
}

// SaveCard writes a card's draft back to its note file.
func SaveCard(store *vault.Store, g period.Granularity, key period.Key, path, content string, seq int) tea.Cmd {
	return func() tea.Msg {
		err := store.Write(context.Background(), path, content)
		return CardSavedMsg{Granularity: g, Key: key, Seq: seq, Err: err}
	}
}

// CreateNote creates the note file for a period from the profile's
// template.
func CreateNote(store *vault.Store, pr *vault.Profile, key period.Key) tea.Cmd {
	return func() tea.Msg {
		path, err := store.CreateNote(context.Background(), pr, key)
		return NoteCreatedMsg{
			Granularity: pr.Granularity(),
			Key:         key,
			Path:        path,
			Err:         err,
		}
	}
}

// ToggleCompletion rewrites a note's review marker to the given state.
// The stored state is read back from the written content, so clearing a
// marker that does not exist reports Complete as false without a write.
func ToggleCompletion(store *vault.Store, g period.Granularity, key period.Key, path, marker string, complete bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		content, err := store.Read(ctx, path)
		if err != nil {
			return CompletionSavedMsg{Granularity: g, Key: key, Complete: complete, Err: err}
		}
		updated := note.SetComplete(content, marker, complete)
		if updated != content {
			if err := store.Write(ctx, path, updated); err != nil {
				return CompletionSavedMsg{Granularity: g, Key: key, Complete: complete, Err: err}
			}
		}
		return CompletionSavedMsg{Granularity: g, Key: key, Complete: note.IsComplete(updated, marker)}
	}
}

// WaitForVault blocks on the watcher channel and relays the next change
// burst. The caller re-issues this command after each message.
func WaitForVault(events <-chan vault.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return VaultEventMsg{Event: ev, OK: ok}
	}
}

// ScheduleSave fires a save tick for one card after the debounce delay.
func ScheduleSave(g period.Granularity, key period.Key, seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return SaveTickMsg{Granularity: g, Key: key, Seq: seq}
	})
}

// LoadCoverage builds review coverage for every profile, most specific
// granularity first.
func LoadCoverage(store *vault.Store, profiles []*vault.Profile, marker string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		coverages := make([]*summary.Coverage, 0, len(profiles))
		for _, pr := range profiles {
			cov, err := summary.BuildCoverage(ctx, store, pr, summary.BuildCoverageOptions{
				Marker: marker,
				Now:    now,
			})
			if err != nil {
				return ErrMsg{Err: fmt.Errorf("building %s coverage: %w", pr.Granularity(), err)}
			}
			coverages = append(coverages, cov)
		}
		return CoverageMsg{Coverages: coverages}
	}
}

// Status returns a command that shows a temporary status message.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}
