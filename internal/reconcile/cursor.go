package reconcile

import "slices"

// cursorContext is how many runes of surrounding text anchor a cursor
// when content is replaced underneath it.
const cursorContext = 24

// RecoverCursor maps a cursor offset in the old content to a best-effort
// offset in the new content. The runes directly before the cursor are
// searched for in the new content first, then the runes directly after;
// the occurrence nearest the old position wins. Without any match the old
// offset is clamped to the new length. Offsets count runes, not bytes.
func RecoverCursor(oldContent, newContent string, offset int) int {
	oldRunes := []rune(oldContent)
	newRunes := []rune(newContent)

	if offset < 0 {
		offset = 0
	}
	if offset > len(oldRunes) {
		offset = len(oldRunes)
	}

	lo := offset - cursorContext
	if lo < 0 {
		lo = 0
	}
	if before := oldRunes[lo:offset]; len(before) > 0 {
		if idx, ok := nearestMatch(newRunes, before, offset-len(before)); ok {
			return idx + len(before)
		}
	}

	hi := offset + cursorContext
	if hi > len(oldRunes) {
		hi = len(oldRunes)
	}
	if after := oldRunes[offset:hi]; len(after) > 0 {
		if idx, ok := nearestMatch(newRunes, after, offset); ok {
			return idx
		}
	}

	if offset > len(newRunes) {
		return len(newRunes)
	}
	return offset
}

// nearestMatch finds the occurrence of needle in hay whose start lies
// closest to want.
func nearestMatch(hay, needle []rune, want int) (int, bool) {
	best := 0
	found := false
	for i := 0; i+len(needle) <= len(hay); i++ {
		if !slices.Equal(hay[i:i+len(needle)], needle) {
			continue
		}
		if !found || absDiff(i, want) < absDiff(best, want) {
			best = i
			found = true
		}
	}
	return best, found
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
