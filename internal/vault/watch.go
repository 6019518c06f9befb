package vault

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// watchThrottle coalesces notification bursts. Editor saves commonly
	// produce write+rename+chmod storms for a single logical change.
	watchThrottle = 100 * time.Millisecond

	// rescanInterval drives the fallback tick for filesystems where
	// inotify is unreliable, such as network mounts.
	rescanInterval = time.Minute
)

// Event marks a burst of vault changes. It carries no path detail:
// consumers rescan and let per-card content comparison decide what
// actually moved.
type Event struct {
	// Rescan is set when the event came from the periodic fallback tick
	// rather than a filesystem notification.
	Rescan bool
}

// Watch emits a coalesced Event whenever the vault changes on disk. New
// directories are picked up as they appear. The channel closes when ctx
// is cancelled. Sends never block: if the consumer is behind, events are
// dropped, and the next change or rescan tick carries the same meaning.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("vault: watch: %w", err)
	}

	dirs, err := collectDirs(s.root)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("vault: watch: %w", err)
	}
	watched := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("vault: watch %s: %w", dir, err)
		}
		watched[dir] = true
	}

	events := make(chan Event, 64)
	send := func(ev Event) {
		select {
		case events <- ev:
		default:
		}
	}
	throttle := newEventThrottle(watchThrottle, send)

	go func() {
		ticker := time.NewTicker(rescanInterval)
		defer func() {
			ticker.Stop()
			throttle.Stop()
			watcher.Close()
			close(events)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				throttle.Enqueue(Event{Rescan: true})
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				rel, ok := s.relKey(ev.Name)
				if !ok || hidden(rel) {
					continue
				}
				if ev.Op&fsnotify.Create != 0 {
					if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() && !watched[ev.Name] {
						if err := watcher.Add(ev.Name); err == nil {
							watched[ev.Name] = true
						}
					}
				}
				throttle.Enqueue(Event{})
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Notification lost; the rescan tick covers the gap.
			}
		}
	}()

	return events, nil
}

// relKey converts an absolute path from the watcher into a vault key.
func (s *Store) relKey(abs string) (string, bool) {
	rel, err := filepath.Rel(s.root, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func collectDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		dirs = append(dirs, p)
		return nil
	})
	return dirs, err
}

// eventThrottle coalesces change notifications so that a burst of writes
// produces a single event after a quiet delay.
type eventThrottle struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending *Event
	send    func(Event)
}

func newEventThrottle(delay time.Duration, send func(Event)) *eventThrottle {
	return &eventThrottle{delay: delay, send: send}
}

func (t *eventThrottle) Enqueue(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending == nil {
		t.pending = &ev
	} else if !ev.Rescan {
		// A real filesystem change outranks a pending rescan tick.
		t.pending.Rescan = false
	}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, t.flush)
	}
}

func (t *eventThrottle) flush() {
	t.mu.Lock()
	ev := t.pending
	t.pending = nil
	t.timer = nil
	t.mu.Unlock()
	if ev != nil {
		t.send(*ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = nil
}
