package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// pinColorProfile forces truecolor output so styled assertions do not
// depend on the terminal the tests run in.
func pinColorProfile(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prev)
	})
}

func TestViewBeforeFirstWindowSize(t *testing.T) {
	m := newTestModel()
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View = %q, want loading placeholder", got)
	}
}

func TestViewRendersTimelineFrame(t *testing.T) {
	pinColorProfile(t)

	m := newTestModel()
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	model := loadDaily(t, resized.(Model),
		realEntry(t, dayKey(t, "2026-03-14")),
		realEntry(t, dayKey(t, "2026-03-13")),
	)

	out := model.View()
	lines := strings.Split(out, "\n")
	if len(lines) != 30 {
		t.Fatalf("line count = %d, want 30", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 80 {
			t.Fatalf("line %d width = %d, want 80", i, w)
		}
	}

	text := ansi.Strip(out)
	for _, want := range []string{"almanac", "1 Daily", "2 Weekly", "Mar 14 2026", "Mar 13 2026"} {
		if !strings.Contains(text, want) {
			t.Fatalf("frame missing %q", want)
		}
	}
	if !strings.Contains(out, "\x1b[48;2;") {
		t.Fatalf("expected truecolor backgrounds in output")
	}
}

func TestViewEmptyTimelinePlaceholder(t *testing.T) {
	pinColorProfile(t)

	m := newTestModel()
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	model := loadDaily(t, resized.(Model))

	text := ansi.Strip(model.View())
	if !strings.Contains(text, "No notes here yet.") {
		t.Fatalf("expected empty placeholder, got %q", text)
	}
}

func TestViewUnloadedTimelineHint(t *testing.T) {
	pinColorProfile(t)

	m := newTestModel()
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	model := resized.(Model)

	text := ansi.Strip(model.View())
	if !strings.Contains(text, "Loading...") {
		t.Fatalf("expected loading hint, got %q", text)
	}
}

func TestViewHelpModalOverlay(t *testing.T) {
	pinColorProfile(t)

	m := newTestModel()
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 90, Height: 34})
	model := loadDaily(t, resized.(Model), realEntry(t, dayKey(t, "2026-03-14")))
	model, _ = press(t, model, "?")

	out := model.View()
	text := ansi.Strip(out)
	for _, want := range []string{"Help", "j/k move", "[Esc] Close"} {
		if !strings.Contains(text, want) {
			t.Fatalf("help modal missing %q", want)
		}
	}
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Fatalf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestViewTerminalTooSmall(t *testing.T) {
	m := newTestModel()
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 10, Height: 2})
	model := resized.(Model)

	if text := ansi.Strip(model.View()); !strings.Contains(text, "Terminal too small") {
		t.Fatalf("View = %q", text)
	}
}
