package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"almanac/internal/tui/input"
)

// PromptState captures prompt input state for rendering.
type PromptState struct {
	Value      string
	Cursor     string
	ModePrompt bool
}

// PromptLines builds the prompt input line plus command suggestions, each
// wrapped to the given content width.
func PromptLines(state PromptState, contentWidth int, commands []input.PromptCommand) []string {
	lines := wrapTextWithPrefix(state.Value+state.Cursor, "> ", "  ", contentWidth)
	if !state.ModePrompt {
		return lines
	}
	for _, cmd := range input.PromptMatchingCommands(state.Value, commands) {
		entry := cmd.Name + " " + cmd.Description
		lines = append(lines, wrapTextWithPrefix(entry, "  ", "  ", contentWidth)...)
	}
	return lines
}

// ClampPromptLines clamps prompt lines to maxLines and marks the cut with
// an ellipsis.
func ClampPromptLines(lines []string, maxLines, width int) []string {
	if maxLines <= 0 {
		return nil
	}
	if len(lines) <= maxLines {
		return lines
	}
	clamped := append([]string(nil), lines[:maxLines]...)
	clamped[maxLines-1] = addEllipsis(clamped[maxLines-1], width)
	return clamped
}

// WrapTextToWidths wraps text to display cells, breaking on spaces where
// possible. The first line wraps at firstWidth, the rest at otherWidth.
func WrapTextToWidths(s string, firstWidth, otherWidth int) []string {
	if firstWidth <= 0 || otherWidth <= 0 {
		return []string{""}
	}

	runes := []rune(s)
	if len(runes) == 0 {
		return []string{""}
	}

	lines := make([]string, 0, 4)
	width := firstWidth
	lineStart := 0
	lastSpace := -1
	lineWidth := 0

	for i := 0; i < len(runes); i++ {
		if runes[i] == ' ' {
			lastSpace = i
		}

		rw := runewidth.RuneWidth(runes[i])
		if lineWidth+rw > width {
			if lastSpace >= lineStart {
				lines = append(lines, string(runes[lineStart:lastSpace]))
				i = lastSpace
				lineStart = lastSpace + 1
			} else {
				lines = append(lines, string(runes[lineStart:i]))
				lineStart = i
				i--
			}
			width = otherWidth
			lastSpace = -1
			lineWidth = 0
			continue
		}
		lineWidth += rw
	}

	return append(lines, string(runes[lineStart:]))
}

// RenderPrompt renders the prompt box with the provided lines.
func RenderPrompt(width int, style lipgloss.Style, lines []string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := width - frameW
	if contentWidth < 0 {
		contentWidth = 0
	}
	style = style.Width(contentWidth)
	if len(lines) == 0 {
		lines = []string{""}
	}
	return style.Render(strings.Join(lines, "\n"))
}

// RenderPromptPlaceholder renders an empty prompt box with matching height.
func RenderPromptPlaceholder(width int, style lipgloss.Style, maxContentLines int) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := width - frameW
	if contentWidth < 0 {
		contentWidth = 0
	}
	style = style.Width(contentWidth)
	if maxContentLines < 1 {
		maxContentLines = 1
	}
	return style.Render(strings.Repeat("\n", maxContentLines-1))
}

func wrapTextWithPrefix(s, prefix, continuation string, width int) []string {
	if width <= 0 {
		return []string{""}
	}

	firstWidth := width - len(prefix)
	if firstWidth < 0 {
		firstWidth = 0
	}
	otherWidth := width - len(continuation)
	if otherWidth < 0 {
		otherWidth = 0
	}

	lines := WrapTextToWidths(s, firstWidth, otherWidth)
	if len(lines) == 0 {
		return []string{prefix}
	}
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
		} else {
			lines[i] = continuation + lines[i]
		}
	}
	return lines
}

func addEllipsis(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if width <= 3 {
		return strings.Repeat(".", width)
	}
	runes := []rune(s)
	if len(runes)+3 <= width {
		return s + "..."
	}
	return string(runes[:width-3]) + "..."
}
