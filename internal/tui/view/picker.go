package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PickerItem is one selectable period in the jump picker.
type PickerItem struct {
	Label   string
	HasNote bool
	Active  bool
}

// PickerModel describes one picker page: the drill path chosen so far and
// the candidate window for the level under focus.
type PickerModel struct {
	Breadcrumb string
	LevelLabel string
	Items      []PickerItem
	Offset     int
	Window     int
}

// PickerStyles groups the styles for the picker body.
type PickerStyles struct {
	ItemStyle       lipgloss.Style
	ItemActiveStyle lipgloss.Style
	NoteStyle       lipgloss.Style
	LevelStyle      lipgloss.Style
	LevelFocusStyle lipgloss.Style
}

// RenderPickerBody renders the drill path and the visible candidate slice.
func RenderPickerBody(model PickerModel, styles PickerStyles) string {
	var b strings.Builder
	if model.Breadcrumb != "" {
		b.WriteString(styles.LevelStyle.Render(model.Breadcrumb))
		b.WriteString("\n")
	}
	b.WriteString(styles.LevelFocusStyle.Render(model.LevelLabel))
	b.WriteString("\n\n")

	start, end := pickerWindow(len(model.Items), model.Offset, model.Window)
	if start > 0 {
		b.WriteString(styles.NoteStyle.Render("  ..."))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		item := model.Items[i]
		marker := "  "
		if item.HasNote {
			marker = "* "
		}
		line := marker + item.Label
		if item.Active {
			b.WriteString(styles.ItemActiveStyle.Render("> " + line))
		} else {
			b.WriteString(styles.ItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	if end < len(model.Items) {
		b.WriteString(styles.NoteStyle.Render("  ..."))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// PickerFooter renders the footer of the jump picker.
func PickerFooter(canDrill bool, styles ModalStyles) string {
	if canDrill {
		return RenderModalButtonsCompact(styles, "[Enter] Drill", "[o] Open", "[h/l] Level", "[Esc] Close")
	}
	return RenderModalButtonsCompact(styles, "[Enter] Open", "[h/l] Level", "[Esc] Close")
}

// pickerWindow clamps the visible slice so the offset stays in range.
func pickerWindow(n, offset, window int) (int, int) {
	if window <= 0 || n <= window {
		return 0, n
	}
	if offset < 0 {
		offset = 0
	}
	if offset > n-window {
		offset = n - window
	}
	return offset, offset + window
}
