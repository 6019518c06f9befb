package note

import "strings"

// DefaultMarker is the task text that marks a period as reviewed.
const DefaultMarker = "Reviewed"

// markerLine renders a markdown task line for the marker.
func markerLine(marker string, complete bool) string {
	box := "[ ]"
	if complete {
		box = "[x]"
	}
	return "- " + box + " " + marker
}

// isMarkerLine reports whether the line is the marker task in either state.
// Leading whitespace is tolerated so the marker may sit inside a list.
func isMarkerLine(line, marker string) (complete, ok bool) {
	s := strings.TrimLeft(line, " \t")
	rest, found := strings.CutPrefix(s, "- ")
	if !found {
		return false, false
	}
	switch {
	case strings.HasPrefix(rest, "[x] "), strings.HasPrefix(rest, "[X] "):
		complete = true
	case strings.HasPrefix(rest, "[ ] "):
		complete = false
	default:
		return false, false
	}
	return complete, strings.TrimSpace(rest[4:]) == marker
}

// IsComplete reports whether the content carries a checked marker task.
// The first marker line governs when several are present.
func IsComplete(content, marker string) bool {
	for _, line := range strings.Split(content, "\n") {
		if complete, ok := isMarkerLine(line, marker); ok {
			return complete
		}
	}
	return false
}

// SetComplete rewrites the marker task to the requested state, preserving
// each line's indentation. Every marker line is rewritten so the content
// cannot end up self-contradictory. When no marker line exists, a checked
// one is appended after a blank line; clearing an absent marker leaves the
// content untouched.
func SetComplete(content, marker string, complete bool) string {
	lines := strings.Split(content, "\n")
	rewritten := false
	for i, line := range lines {
		if _, ok := isMarkerLine(line, marker); !ok {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		lines[i] = indent + markerLine(marker, complete)
		rewritten = true
	}
	if rewritten {
		return strings.Join(lines, "\n")
	}
	if !complete {
		return content
	}
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return markerLine(marker, true) + "\n"
	}
	return trimmed + "\n\n" + markerLine(marker, true) + "\n"
}

// Toggle flips the completion state of the content.
func Toggle(content, marker string) string {
	return SetComplete(content, marker, !IsComplete(content, marker))
}
