package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Backdrop ring drawn around modal content, in cells per side.
const (
	overlayMarginX = 3
	overlayMarginY = 1
)

// OverlayModel splices a modal box over an already rendered frame. The box
// hugs its content plus a backdrop ring, so the timeline stays visible
// around the edges.
type OverlayModel struct {
	active  bool
	bgColor lipgloss.Color
}

func NewOverlayModel() OverlayModel {
	return OverlayModel{}
}

// Active reports whether the overlay is currently drawn.
func (o OverlayModel) Active() bool {
	return o.active
}

// SetBackground sets the backdrop color painted behind modal content.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// Render centers content over base. Rows outside the box pass through
// untouched; rows inside keep their left and right slices so the base
// bleeds around the backdrop.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if !o.active || width <= 0 || height <= 0 {
		return base
	}

	contentLines := overlayContentLines(content)
	contentW, contentH := overlayContentSize(contentLines)
	if contentW == 0 || contentH == 0 {
		return base
	}

	boxW := contentW + 2*overlayMarginX
	boxH := contentH + 2*overlayMarginY
	if boxW > width {
		boxW = width
	}
	if boxH > height {
		boxH = height
	}

	top := (height - boxH) / 2
	left := (width - boxW) / 2

	baseLines := normalizeBase(base, width, height)
	boxLines := o.paintBox(contentLines, boxW, boxH)

	lines := make([]string, 0, height)
	for row := 0; row < height; row++ {
		if row < top || row >= top+boxH {
			lines = append(lines, baseLines[row])
			continue
		}
		baseLine := baseLines[row]
		leftSlice := ansi.Cut(baseLine, 0, left)
		rightSlice := ansi.Cut(baseLine, left+boxW, width)
		lines = append(lines, leftSlice+boxLines[row-top]+rightSlice)
	}
	return strings.Join(lines, "\n")
}

// paintBox fills a boxW by boxH rectangle with the backdrop color and lays
// the content centered inside it. Content wider or taller than the box is
// clipped rather than resized.
func (o OverlayModel) paintBox(content []string, boxW, boxH int) []string {
	bgSeq := backgroundSeq(o.bgColor)
	blank := bgSeq + strings.Repeat(" ", boxW) + ansi.ResetStyle

	contentW, contentH := overlayContentSize(content)
	if contentW > boxW {
		contentW = boxW
	}
	if contentH > boxH {
		contentH = boxH
	}
	top := (boxH - contentH) / 2
	left := (boxW - contentW) / 2
	right := boxW - left - contentW

	lines := make([]string, boxH)
	for i := range lines {
		lines[i] = blank
	}
	for i := 0; i < contentH; i++ {
		line := content[i]
		w := lipgloss.Width(line)
		if w > contentW {
			line = ansi.Cut(line, 0, contentW)
			w = contentW
		}
		if w < contentW {
			line += strings.Repeat(" ", contentW-w)
		}
		line = reapplyBackground(line, bgSeq)
		lines[top+i] = bgSeq + strings.Repeat(" ", left) + line + bgSeq + strings.Repeat(" ", right) + ansi.ResetStyle
	}
	return lines
}

// normalizeBase pads or clips the base frame to exactly width by height so
// row splicing can index it safely.
func normalizeBase(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		w := lipgloss.Width(line)
		switch {
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		case w > width:
			lines[i] = ansi.Cut(line, 0, width)
		}
	}
	return lines
}

// reapplyBackground re-arms the backdrop color after every reset the
// content emits. Styled content resets terminate the background otherwise,
// which would punch holes of terminal-default color into the box.
func reapplyBackground(line, bgSeq string) string {
	if bgSeq == "" || line == "" {
		return line
	}
	for _, reset := range []string{ansi.ResetStyle, "\x1b[0m", "\x1b[49m"} {
		line = strings.ReplaceAll(line, reset, reset+bgSeq)
	}
	return line
}

func backgroundSeq(c lipgloss.Color) string {
	if c == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(c))).String()
}

func overlayContentLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func overlayContentSize(lines []string) (int, int) {
	w := 0
	for _, line := range lines {
		if lw := lipgloss.Width(line); lw > w {
			w = lw
		}
	}
	return w, len(lines)
}
