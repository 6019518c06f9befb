package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// statusMsgOrDefault returns the status message or a space to preserve layout.
func (m Model) statusMsgOrDefault() string {
	if m.statusMsg == "" {
		return " "
	}
	return m.statusMsg
}

// renderStatsBar renders the active pane's counters for the footer.
func (m Model) renderStatsBar(width int) string {
	t := m.activeTab()
	if t == nil {
		return ""
	}

	notes, reviewed, drafts := 0, 0, 0
	for _, c := range t.cards {
		if c.Synthetic {
			continue
		}
		notes++
		if c.Complete {
			reviewed++
		}
		if c.Dirty {
			drafts++
		}
	}

	barStyle := lipgloss.NewStyle().
		Foreground(m.styles.colorFg).
		Background(m.styles.colorBg)
	accentStyle := m.styles.StatAccentStyle(string(t.g))
	marker := strings.ToLower(m.config.Completion.Marker)

	var bar strings.Builder
	bar.WriteString(accentStyle.Render(t.g.Title()))
	bar.WriteString(barStyle.Render(fmt.Sprintf(": %d notes, %d %s", notes, reviewed, marker)))
	if missing := len(t.cards) - notes; missing > 0 {
		bar.WriteString(barStyle.Render(fmt.Sprintf(", %d missing", missing)))
	}
	if drafts > 0 {
		bar.WriteString(barStyle.Render(fmt.Sprintf(", %d unsaved", drafts)))
	}
	if !t.loaded {
		bar.WriteString(barStyle.Render(" [Loading...]"))
	} else if t.stale {
		bar.WriteString(barStyle.Render(" [Stale]"))
	}

	statsStyle := m.styles.StatsBarStyle
	frameW, _ := statsStyle.GetFrameSize()
	contentWidth := max(0, width-frameW)
	statsStyle = statsStyle.Width(contentWidth)
	content := bar.String()
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "")
	}
	return statsStyle.Render(content)
}

// renderHelp renders the help bar for the current mode.
func (m Model) renderHelp() string {
	var help string
	switch m.mode {
	case ModeEdit:
		help = "Esc: done | Ctrl+S: save now | Ctrl+P: preview"
	case ModePrompt:
		help = "Enter: submit | Tab: complete | Esc: cancel"
	case ModeModal:
		switch m.modalType {
		case ModalPicker:
			help = "j/k: move | h/l: level | Enter: drill | o: open | Esc: close"
		case ModalStats:
			help = "y: copy | Esc: close"
		case ModalInit:
			help = "Enter: create | Esc: quit"
		default:
			help = "Esc: close"
		}
	default:
		help = "j/k: move | Enter: open | e: edit | Space: review | p: jump | ?: help | q: quit"
	}
	return m.styles.HelpStyle.Render(help)
}
