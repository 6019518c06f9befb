package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Reviewed notes: green, the period is done
	colorReviewed = color.New(color.FgGreen)

	// Written but unreviewed notes: yellow
	colorWritten = color.New(color.FgYellow)

	// Missing periods: dim/grey
	colorMissing = color.New(color.FgWhite, color.Faint)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatReviewed formats text for reviewed notes.
func formatReviewed(s string) string {
	return colorReviewed.Sprint(s)
}

// formatWritten formats text for written but unreviewed notes.
func formatWritten(s string) string {
	return colorWritten.Sprint(s)
}

// formatMissing formats text for periods without a note.
func formatMissing(s string) string {
	return colorMissing.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
