package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterModel contains content and styles for rendering the footer.
type FooterModel struct {
	InnerW           int
	FooterH          int
	FullFooter       bool
	StatsLine        string
	StatusText       string
	HelpText         string
	PromptLines      []string
	PromptMax        int
	PromptFocus      bool
	ShowPrompt       bool
	StatusStyle      lipgloss.Style
	HelpStyle        lipgloss.Style
	PromptStyle      lipgloss.Style
	PromptFocusStyle lipgloss.Style
	VAlign           lipgloss.Position
	Bg               lipgloss.Color
}

// RenderFooter renders the footer block pinned to the bottom of its box.
// The full layout stacks stats, prompt, status, and help; short windows
// collapse to status and help only.
func RenderFooter(model FooterModel) string {
	if model.FooterH <= 0 {
		return ""
	}

	statusLine := footerLine(model.InnerW, model.StatusStyle, model.StatusText)
	helpLine := footerLine(model.InnerW, model.HelpStyle, model.HelpText)

	var s string
	if model.FullFooter {
		promptStyle := model.PromptStyle
		if model.PromptFocus {
			promptStyle = model.PromptFocusStyle
		}
		promptLine := RenderPrompt(model.InnerW, promptStyle, model.PromptLines)
		if !model.ShowPrompt {
			promptLine = RenderPromptPlaceholder(model.InnerW, model.PromptStyle, model.PromptMax)
		}
		s = model.StatsLine + "\n" + promptLine + "\n" + statusLine + "\n" + helpLine
	} else {
		s = statusLine + "\n" + helpLine
	}

	return PlaceBox(model.InnerW, model.FooterH, model.VAlign, s, model.Bg)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := width - frameW
	if contentWidth < 0 {
		contentWidth = 0
	}
	style = style.Width(contentWidth)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "")
	}
	return style.Render(content)
}
