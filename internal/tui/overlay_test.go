package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestOverlayRenderInactiveReturnsBase(t *testing.T) {
	overlay := NewOverlayModel()
	base := "alpha\nbeta"
	if got := overlay.Render(base, 10, 2, "content"); got != base {
		t.Fatalf("expected base unchanged while inactive")
	}
}

func TestOverlayRenderEmptyContentReturnsBase(t *testing.T) {
	overlay := NewOverlayModel()
	overlay.active = true
	base := "alpha\nbeta"
	if got := overlay.Render(base, 10, 2, "\n\n"); got != base {
		t.Fatalf("expected base unchanged for empty content")
	}
}

func TestOverlayRenderCentersContent(t *testing.T) {
	overlay := NewOverlayModel()
	overlay.SetBackground(lipgloss.Color("#0c0c0c"))
	overlay.active = true

	width, height := 30, 9
	row := strings.Repeat(".", width)
	base := strings.Repeat(row+"\n", height-1) + row
	got := overlay.Render(base, width, height, "Hello")

	lines := strings.Split(got, "\n")
	if len(lines) != height {
		t.Fatalf("expected %d lines, got %d", height, len(lines))
	}

	// 5-cell content plus the margin ring gives an 11x3 box at rows 3-5.
	boxW := 5 + 2*overlayMarginX
	boxH := 1 + 2*overlayMarginY
	top := (height - boxH) / 2
	left := (width - boxW) / 2

	if !strings.Contains(ansi.Strip(lines[top+1]), "Hello") {
		t.Fatalf("expected content on the middle box row")
	}

	bgSeq := backgroundSeq(overlay.bgColor)
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Fatalf("line %d width = %d, want %d", i, w, width)
		}
		hasBg := strings.Contains(line, bgSeq)
		if i >= top && i < top+boxH {
			if !hasBg {
				t.Fatalf("expected backdrop on line %d", i)
			}
			if !strings.HasPrefix(line, strings.Repeat(".", left)) {
				t.Fatalf("expected base to bleed left of the box on line %d", i)
			}
			if !strings.HasSuffix(line, strings.Repeat(".", width-left-boxW)) {
				t.Fatalf("expected base to bleed right of the box on line %d", i)
			}
		} else {
			if hasBg {
				t.Fatalf("unexpected backdrop on line %d", i)
			}
			if line != row {
				t.Fatalf("expected line %d untouched", i)
			}
		}
	}
}

func TestOverlayClampsToWindow(t *testing.T) {
	overlay := NewOverlayModel()
	overlay.active = true

	width, height := 20, 5
	row := strings.Repeat(".", width)
	base := strings.Repeat(row+"\n", height-1) + row
	got := overlay.Render(base, width, height, strings.Repeat("x", 50))

	lines := strings.Split(got, "\n")
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Fatalf("line %d width = %d, want %d", i, w, width)
		}
	}
	if n := strings.Count(ansi.Strip(got), "x"); n != width {
		t.Fatalf("expected content clipped to %d cells, got %d", width, n)
	}
}

func TestReapplyBackground(t *testing.T) {
	const bg = "BG"
	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "plain", line: "abc", want: "abc"},
		{name: "reset_rearmed", line: "a" + ansi.ResetStyle + "b", want: "a" + ansi.ResetStyle + bg + "b"},
		{name: "bg_off_rearmed", line: "a\x1b[49mb", want: "a\x1b[49m" + bg + "b"},
		{name: "empty", line: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reapplyBackground(tt.line, bg); got != tt.want {
				t.Fatalf("reapplyBackground = %q, want %q", got, tt.want)
			}
		})
	}
}
