package view

import (
	"reflect"
	"testing"

	"almanac/internal/tui/input"
)

func TestWrapTextToWidths(t *testing.T) {
	tests := []struct {
		name       string
		s          string
		firstWidth int
		otherWidth int
		want       []string
	}{
		{name: "fits", s: "hello", firstWidth: 10, otherWidth: 10, want: []string{"hello"}},
		{name: "breaks_on_space", s: "hello world", firstWidth: 6, otherWidth: 6, want: []string{"hello", "world"}},
		{name: "hard_breaks_long_word", s: "abcdefgh", firstWidth: 3, otherWidth: 3, want: []string{"abc", "def", "gh"}},
		{name: "narrow_first_line", s: "abcdef", firstWidth: 2, otherWidth: 10, want: []string{"ab", "cdef"}},
		{name: "wide_runes", s: "日本語", firstWidth: 4, otherWidth: 4, want: []string{"日本", "語"}},
		{name: "empty", s: "", firstWidth: 5, otherWidth: 5, want: []string{""}},
		{name: "zero_width", s: "abc", firstWidth: 0, otherWidth: 5, want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapTextToWidths(tt.s, tt.firstWidth, tt.otherWidth)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("WrapTextToWidths = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPromptLinesIncludesSuggestions(t *testing.T) {
	state := PromptState{Value: "/t", Cursor: "_", ModePrompt: true}
	commands := []input.PromptCommand{{Name: "/theme", Description: "Switch the color theme"}}
	lines := PromptLines(state, 40, commands)

	if len(lines) < 2 || lines[0] != "> /t_" {
		t.Fatalf("lines = %q, want input line first", lines)
	}
	found := false
	for _, line := range lines {
		if line == "  /theme Switch the color theme" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected suggestion line, got %v", lines)
	}
}

func TestPromptLinesOutsidePromptMode(t *testing.T) {
	state := PromptState{Value: "/t", ModePrompt: false}
	commands := []input.PromptCommand{{Name: "/theme", Description: "Switch the color theme"}}
	lines := PromptLines(state, 40, commands)
	if len(lines) != 1 || lines[0] != "> /t" {
		t.Fatalf("lines = %q, want bare input line", lines)
	}
}

func TestClampPromptLinesAddsEllipsis(t *testing.T) {
	lines := []string{"one", "two", "three"}
	clamped := ClampPromptLines(lines, 2, 10)
	if len(clamped) != 2 {
		t.Fatalf("clamped length = %d, want 2", len(clamped))
	}
	if clamped[1] != "two..." {
		t.Fatalf("last line = %q, want ellipsis", clamped[1])
	}
	if lines[1] != "two" {
		t.Fatalf("input slice mutated: %q", lines[1])
	}
}

func TestClampPromptLinesShortInput(t *testing.T) {
	lines := []string{"one"}
	if got := ClampPromptLines(lines, 3, 10); len(got) != 1 || got[0] != "one" {
		t.Fatalf("ClampPromptLines = %q, want passthrough", got)
	}
	if got := ClampPromptLines(lines, 0, 10); got != nil {
		t.Fatalf("ClampPromptLines = %q, want nil for zero max", got)
	}
}

func TestAddEllipsis(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width int
		want  string
	}{
		{name: "fits", s: "ab", width: 10, want: "ab..."},
		{name: "truncates", s: "abcdefghij", width: 8, want: "abcde..."},
		{name: "tiny_width", s: "abcdef", width: 3, want: "..."},
		{name: "zero_width", s: "abcdef", width: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := addEllipsis(tt.s, tt.width); got != tt.want {
				t.Fatalf("addEllipsis = %q, want %q", got, tt.want)
			}
		})
	}
}
