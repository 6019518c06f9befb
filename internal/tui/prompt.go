package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"almanac/internal/dateutil"
	"almanac/internal/note"
	"almanac/internal/period"
	"almanac/internal/tui/commands"
	"almanac/internal/tui/input"
	"almanac/internal/tui/theme"
)

var promptCommands = []input.PromptCommand{
	{
		Name:        "/theme",
		Description: "Switch the color theme",
	},
	{
		Name:        "/sort",
		Description: "Order timelines asc or desc",
	},
	{
		Name:        "/horizon",
		Description: "Future periods to keep visible",
	},
	{
		Name:        "/help",
		Description: "Show keybindings",
	},
}

func (m Model) promptCursor() string {
	if m.mode == ModePrompt {
		return "_"
	}
	return ""
}

// handlePromptSubmit runs a submitted prompt line. Slash commands change
// settings; anything else is read as a period to jump to.
func (m Model) handlePromptSubmit(value string) (tea.Model, tea.Cmd) {
	value = strings.TrimSpace(value)
	if value == "" {
		return m, nil
	}
	if strings.HasPrefix(value, "/") {
		return m.runPromptCommand(value)
	}
	return m.jumpToSpelled(value)
}

func (m Model) runPromptCommand(value string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(value)
	name, args := fields[0], fields[1:]

	switch name {
	case "/help":
		m.mode = ModeModal
		m.modalType = ModalHelp
		return m, nil

	case "/theme":
		if len(args) != 1 {
			return m, commands.Status("Usage: /theme <name>")
		}
		return m.applyTheme(args[0])

	case "/sort":
		if len(args) != 1 || !note.Order(args[0]).Valid() {
			return m, commands.Status("Usage: /sort asc|desc")
		}
		m.config.View.SortOrder = args[0]
		return m.applyViewChange("Sorted " + args[0])

	case "/horizon":
		if len(args) != 1 {
			return m, commands.Status("Usage: /horizon <periods>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return m, commands.Status("Usage: /horizon <periods>")
		}
		m.config.View.FutureHorizon = n
		return m.applyViewChange(fmt.Sprintf("Horizon set to %d", n))

	default:
		return m, commands.Status(fmt.Sprintf("Unknown command %s", name))
	}
}

func (m Model) applyTheme(name string) (tea.Model, tea.Cmd) {
	t, err := theme.Load(name)
	if err != nil {
		available := strings.Join(theme.Available(), ", ")
		return m, commands.Status(fmt.Sprintf("Unknown theme %q (themes: %s)", name, available))
	}
	m.theme = t
	m.styles = NewStyles(t)
	m.styleEditor()
	m.overlay.SetBackground(m.styles.ModalBgColor)
	m.config.UI.Theme = name
	if err := m.config.Save(); err != nil {
		LogError("saving config", err)
		return m, commands.Status(fmt.Sprintf("Theme set, save failed: %v", err))
	}
	return m, commands.Status("Theme " + name)
}

// applyViewChange persists the config and reloads every pane under the
// new view settings.
func (m Model) applyViewChange(status string) (tea.Model, tea.Cmd) {
	if err := m.config.Save(); err != nil {
		LogError("saving config", err)
		return m, commands.Status(fmt.Sprintf("Save failed: %v", err))
	}
	for g, t := range m.tabs {
		if g != m.active {
			t.stale = true
		}
	}
	return m, tea.Batch(m.loadTimeline(m.active), commands.Status(status))
}

// jumpToSpelled jumps to a period written out in the prompt. Periods with
// no card yet go through note creation, which lands the selection on them.
func (m Model) jumpToSpelled(value string) (tea.Model, tea.Cmd) {
	g, when, err := parseJumpTarget(value, m.now())
	if err != nil {
		return m, commands.Status(fmt.Sprintf("Can't read %q as a period", value))
	}
	t, ok := m.tabs[g]
	if !ok {
		return m, commands.Status(fmt.Sprintf("%s notes are disabled", g.Title()))
	}
	m.active = g
	k := period.KeyOf(when, g)
	if idx, found := t.indexOf(k); found {
		t.sel = idx
		return m, nil
	}
	pr := m.profiles[g]
	if pr == nil {
		return m, nil
	}
	return m, commands.CreateNote(m.store, pr, k)
}

// parseJumpTarget reads a spelled-out period and returns its granularity
// and a time inside it. Daily targets take everything ParseRelativeDate
// accepts (today, yesterday, weekday names, 2026-08-23); the remaining
// forms are 2026-W34, 2026-Q3, 2026-08 and 2026.
func parseJumpTarget(s string, now time.Time) (period.Granularity, time.Time, error) {
	if t, err := dateutil.ParseRelativeDate(s, now); err == nil {
		return period.Daily, t, nil
	}
	var wy, wk int
	if n, _ := fmt.Sscanf(s, "%d-W%d", &wy, &wk); n == 2 && wk >= 1 && wk <= 53 {
		return period.Weekly, period.ISOWeekStart(wy, wk), nil
	}
	var y, q int
	if n, _ := fmt.Sscanf(s, "%d-Q%d", &y, &q); n == 2 && q >= 1 && q <= 4 {
		return period.Quarterly, time.Date(y, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC), nil
	}
	if t, err := time.Parse("2006-01", s); err == nil {
		return period.Monthly, t, nil
	}
	if t, err := time.Parse("2006", s); err == nil {
		return period.Yearly, t, nil
	}
	return "", time.Time{}, fmt.Errorf("unrecognized period %q", s)
}
