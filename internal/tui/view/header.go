package view

import "github.com/charmbracelet/lipgloss"

// HeaderModel contains pre-styled header segments.
type HeaderModel struct {
	InnerW int
	Title  string
	Tabs   []string
	Date   string
	Bg     lipgloss.Color
}

// RenderHeader lays out the app title and granularity tabs on the left and
// the current date on the right edge.
func RenderHeader(model HeaderModel) string {
	segments := make([]string, 0, len(model.Tabs)+1)
	segments = append(segments, model.Title+"  ")
	segments = append(segments, model.Tabs...)
	left := lipgloss.JoinHorizontal(lipgloss.Top, segments...)
	line := SpreadLine(model.InnerW, left, model.Date, model.Bg)
	return PadLinesWithBackground(line, model.InnerW, 1, model.Bg)
}
