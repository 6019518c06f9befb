package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	editorMinLines = 3
	editorMaxLines = 16
)

// styleEditor applies the theme to the inline textarea.
func (m *Model) styleEditor() {
	s := m.styles
	base := lipgloss.NewStyle().Background(s.colorBg).Foreground(s.colorFg)
	buffer := lipgloss.NewStyle().Background(s.colorBg).Foreground(s.colorBgSelection)

	m.editor.FocusedStyle.Base = base
	m.editor.FocusedStyle.Text = base
	m.editor.FocusedStyle.CursorLine = lipgloss.NewStyle().Background(s.EditorLineColor()).Foreground(s.colorFg)
	m.editor.FocusedStyle.Placeholder = s.CardPlaceholderStyle
	m.editor.FocusedStyle.EndOfBuffer = buffer

	m.editor.BlurredStyle.Base = base
	m.editor.BlurredStyle.Text = base
	m.editor.BlurredStyle.CursorLine = base
	m.editor.BlurredStyle.Placeholder = s.CardPlaceholderStyle
	m.editor.BlurredStyle.EndOfBuffer = buffer
}

// openEditor loads a card's draft into the textarea and focuses it.
func (m *Model) openEditor(c *Card) tea.Cmd {
	m.editor.SetValue(c.Draft)
	editorSetCursor(&m.editor, c.Draft, c.DraftCursor)
	m.syncEditorSize(c)
	return m.editor.Focus()
}

// syncEditorSize fits the textarea to the card's inner width and the
// draft's line count.
func (m *Model) syncEditorSize(c *Card) {
	inner := m.cardInnerWidth()
	if inner < 10 {
		inner = 10
	}
	m.editor.SetWidth(inner)

	lines := strings.Count(c.Draft, "\n") + 1
	if lines < editorMinLines {
		lines = editorMinLines
	}
	if lines > editorMaxLines {
		lines = editorMaxLines
	}
	m.editor.SetHeight(lines)
}

// editorCursorOffset returns the cursor position as a rune offset into
// content. The textarea reports soft-wrapped positions; the logical
// column is the wrap segment start plus the offset inside it.
func editorCursorOffset(ed *textarea.Model, content string) int {
	row := ed.Line()
	info := ed.LineInfo()
	col := info.StartColumn + info.ColumnOffset

	lines := strings.Split(content, "\n")
	off := 0
	for i := 0; i < row && i < len(lines); i++ {
		off += len([]rune(lines[i])) + 1
	}
	if row >= 0 && row < len(lines) {
		if n := len([]rune(lines[row])); col > n {
			col = n
		}
	}
	return off + col
}

// editorSetCursor positions the textarea cursor at a rune offset. The
// textarea has no row setter, so the row is walked line by line.
func editorSetCursor(ed *textarea.Model, content string, offset int) {
	runes := []rune(content)
	if offset < 0 {
		offset = 0
	}
	if offset > len(runes) {
		offset = len(runes)
	}

	row, col := 0, 0
	for _, r := range runes[:offset] {
		if r == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
	if lc := ed.LineCount(); row >= lc {
		row = lc - 1
	}
	if row < 0 {
		row = 0
	}

	for ed.Line() > row {
		ed.CursorUp()
	}
	for ed.Line() < row {
		ed.CursorDown()
	}
	ed.SetCursor(col)
}
