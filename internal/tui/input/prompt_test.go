package input

import "testing"

func TestPromptMatchingCommands(t *testing.T) {
	commands := []PromptCommand{
		{Name: "/theme", Description: "Theme"},
		{Name: "/sort", Description: "Sort"},
	}

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "no_slash", input: "theme", want: 0},
		{name: "empty", input: "", want: 0},
		{name: "full", input: "/theme", want: 1},
		{name: "prefix", input: "/t", want: 1},
		{name: "with_space", input: "/theme dark", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PromptMatchingCommands(tt.input, commands)
			if len(got) != tt.want {
				t.Fatalf("matches = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestPromptAutocomplete(t *testing.T) {
	commands := []PromptCommand{
		{Name: "/theme", Description: "Theme"},
		{Name: "/sort", Description: "Sort"},
	}

	value, ok := PromptAutocomplete("/t", commands)
	if !ok {
		t.Fatal("expected autocomplete")
	}
	if value != "/theme " {
		t.Fatalf("value = %q, want %q", value, "/theme ")
	}
}
