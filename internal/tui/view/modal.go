package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render modal frames and buttons.
type ModalStyles struct {
	ModalHeaderStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalStyle             lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalBodyStyle         lipgloss.Style
}

// RenderModalFrame renders a modal with the provided title, body, and footer.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	var b strings.Builder

	header := styles.ModalHeaderStyle.Render(styles.ModalTitleStyle.Render(title))
	b.WriteString(header)
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ModalFooterStyle.Render(footer))
	}

	return styles.ModalStyle.Render(b.String())
}

// RenderModalButtons renders a row of modal buttons with the first one active.
func RenderModalButtons(styles ModalStyles, labels ...string) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := styles.ModalButtonStyle
		if i == 0 {
			style = styles.ModalButtonActiveStyle
		}
		parts = append(parts, style.Render(label))
	}
	sep := styles.ModalBodyStyle.Render(" ")
	return strings.Join(parts, sep)
}

// RenderModalButtonsCompact renders a compact row of modal buttons.
func RenderModalButtonsCompact(styles ModalStyles, labels ...string) string {
	parts := make([]string, 0, len(labels))
	buttonStyle := styles.ModalButtonStyle.Padding(0, 1)
	activeStyle := styles.ModalButtonActiveStyle.Padding(0, 1)
	for i, label := range labels {
		style := buttonStyle
		if i == 0 {
			style = activeStyle
		}
		parts = append(parts, style.Render(label))
	}
	sep := styles.ModalBodyStyle.Render(" ")
	return strings.Join(parts, sep)
}

// ModalContentWidth returns the content width available inside a modal body.
func ModalContentWidth(style lipgloss.Style, fallback int) int {
	width := style.GetWidth()
	if width <= 0 {
		return fallback
	}
	contentWidth := width - 4
	if contentWidth < 10 {
		return 10
	}
	return contentWidth
}

// stringRenderer is satisfied by lipgloss.Style and by plain test doubles.
type stringRenderer interface {
	Render(strs ...string) string
}

// LineKind selects the style a modal body line is rendered with.
type LineKind int

const (
	LineBody LineKind = iota
	LineMeta
	LineSection
)

// Line is a display-ready modal body line.
type Line struct {
	Text string
	Kind LineKind
}

// LineStyles groups the styles for modal body lines.
type LineStyles struct {
	BodyStyle    stringRenderer
	MetaStyle    stringRenderer
	SectionStyle stringRenderer
}

// RenderLines wraps and styles modal body lines into one block.
func RenderLines(lines []Line, styles LineStyles, contentWidth int) string {
	if len(lines) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, wrapLine(line, styles, contentWidth)...)
	}
	return strings.Join(rendered, "\n")
}

// LinesToText flattens lines to plain text for clipboard copies.
func LinesToText(lines []Line) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, line.Text)
	}
	return strings.Join(parts, "\n")
}

func wrapLine(line Line, styles LineStyles, width int) []string {
	switch line.Kind {
	case LineSection:
		return wrapModalText(styles.SectionStyle, line.Text, width)
	case LineMeta:
		return wrapModalText(styles.MetaStyle, line.Text, width)
	default:
		return wrapModalText(styles.BodyStyle, line.Text, width)
	}
}

func wrapModalText(style stringRenderer, text string, width int) []string {
	if width <= 0 {
		return []string{style.Render("")}
	}
	lines := WrapTextToWidths(text, width, width)
	if len(lines) == 0 {
		return []string{style.Render("")}
	}
	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		wrapped = append(wrapped, style.Render(line))
	}
	return wrapped
}
