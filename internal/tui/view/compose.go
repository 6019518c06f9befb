// Package view renders display-ready models into terminal output. It owns
// no application state; the tui package builds a model per region and the
// functions here turn it into styled text.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// OverlayRenderer splices modal content over base content.
type OverlayRenderer interface {
	Render(base string, width, height int, content string) string
}

// ViewState carries the pre-rendered regions of one frame.
type ViewState struct {
	Width            int
	Height           int
	BaseContent      string
	ModalContent     string
	ShowModal        bool
	Overlay          OverlayRenderer
	EmptyPlaceholder string
}

// Render composes the final frame. Until the first window size arrives the
// placeholder is returned unstyled.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.EmptyPlaceholder != "" {
			return state.EmptyPlaceholder
		}
		return "Loading..."
	}
	if state.ShowModal && state.Overlay != nil {
		return state.Overlay.Render(state.BaseContent, state.Width, state.Height, state.ModalContent)
	}
	return state.BaseContent
}

// PlaceBox aligns content inside a w by h box, filling whitespace with the
// background color.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(
		w,
		h,
		lipgloss.Left,
		vAlign,
		content,
		lipgloss.WithWhitespaceBackground(bg),
	)
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads every line of content to width and the line
// count to height, painting the padding with the background color. Lines
// already wider than width pass through untouched.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	pad := lipgloss.NewStyle().Background(bg)
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + pad.Render(strings.Repeat(" ", width-w))
		}
	}
	return strings.Join(lines, "\n")
}

// SpreadLine lays left and right on one line with the right segment flush
// against the width edge. When both do not fit the left segment wins.
func SpreadLine(width int, left, right string, bg lipgloss.Color) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if right == "" || gap < 1 {
		return left
	}
	fill := lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", gap))
	return left + fill + right
}
