package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"almanac/internal/period"
	"almanac/internal/reconcile"
	"almanac/internal/tui/view"
)

// Layout constants. The header is the title line plus a separator; the
// footer collapses to status and help alone when the window is short.
const (
	headerLines         = 2
	footerCompactHeight = 2
	footerBaseLines     = 3
	promptBorderLines   = 2
	promptMaxLines      = 3
	footerMinHeight     = 7
	footerFullMinHeight = 15
)

// View renders the TUI using a boxed, parent-controlled layout.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	base := m.renderAppContent()
	showModal := m.mode == ModeModal && m.modalType != ModalNone
	modal := ""
	if showModal {
		modal = m.renderModal()
		m.overlay.active = true
		m.overlay.SetBackground(m.styles.ModalBackdropColor)
	} else {
		m.overlay.active = false
	}

	return view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      base,
		ModalContent:     modal,
		ShowModal:        showModal,
		Overlay:          m.overlay,
		EmptyPlaceholder: "Loading...",
	}
}

func (m Model) renderAppContent() string {
	innerW := m.innerWidth()
	innerH := m.innerHeight()
	if innerW <= 0 || innerH <= 0 {
		return "Terminal too small"
	}

	footerH := m.footerHeight(innerH)
	cardsH := innerH - headerLines - footerH
	if cardsH < 0 {
		cardsH = 0
	}

	headerBox := view.RenderHeader(m.headerModel(innerW))
	separator := view.PadLinesWithBackground("", innerW, 1, m.styles.colorBg)
	cardsBox := m.renderCards(innerW, cardsH)
	footerBox := view.RenderFooter(m.footerModel(innerW, footerH))

	content := lipgloss.JoinVertical(lipgloss.Left, headerBox, separator, cardsBox, footerBox)
	app := m.styles.AppStyle.Render(content)
	return view.PadLinesWithBackground(app, m.width, m.height, m.styles.colorBg)
}

func (m Model) innerWidth() int {
	return m.width - m.styles.AppStyle.GetHorizontalFrameSize()
}

func (m Model) innerHeight() int {
	return m.height - m.styles.AppStyle.GetVerticalFrameSize()
}

// cardInnerWidth is the text width inside a card frame.
func (m Model) cardInnerWidth() int {
	inner := m.innerWidth() - m.styles.cardBase.GetHorizontalFrameSize()
	if inner < 0 {
		inner = 0
	}
	return inner
}

func (m Model) footerHeight(innerH int) int {
	if innerH < footerFullMinHeight {
		return footerCompactHeight
	}
	return footerBaseLines + promptBorderLines + promptMaxLines
}

func (m Model) headerModel(innerW int) view.HeaderModel {
	tabs := make([]string, 0, len(m.order))
	for i, g := range m.order {
		label := fmt.Sprintf("%d %s", i+1, g.Title())
		if g == m.active {
			tabs = append(tabs, m.styles.TabActiveStyle(string(g)).Render(label))
		} else {
			tabs = append(tabs, m.styles.TabStyle.Render(label))
		}
	}
	return view.HeaderModel{
		InnerW: innerW,
		Title:  m.styles.TitleStyle.Render("almanac"),
		Tabs:   tabs,
		Date:   m.styles.DateStyle.Render(m.now().Format("Mon, Jan 2 2006")),
		Bg:     m.styles.colorBg,
	}
}

func (m Model) footerModel(innerW, footerH int) view.FooterModel {
	promptW := innerW - m.styles.PromptStyle.GetHorizontalFrameSize()
	lines := view.PromptLines(view.PromptState{
		Value:      m.prompt.Value(),
		Cursor:     m.promptCursor(),
		ModePrompt: m.mode == ModePrompt,
	}, promptW, promptCommands)
	lines = view.ClampPromptLines(lines, promptMaxLines, promptW)

	showPrompt := m.mode != ModeModal || m.modalType == ModalNone

	return view.FooterModel{
		InnerW:           innerW,
		FooterH:          footerH,
		FullFooter:       footerH >= footerMinHeight,
		StatsLine:        m.renderStatsBar(innerW),
		StatusText:       m.statusMsgOrDefault(),
		HelpText:         m.renderHelp(),
		PromptLines:      lines,
		PromptMax:        promptMaxLines,
		PromptFocus:      m.mode == ModePrompt,
		ShowPrompt:       showPrompt,
		StatusStyle:      m.styles.StatusStyle,
		HelpStyle:        m.styles.HelpStyle,
		PromptStyle:      m.styles.PromptStyle,
		PromptFocusStyle: m.styles.PromptFocusedStyle,
		VAlign:           lipgloss.Bottom,
		Bg:               m.styles.colorBg,
	}
}

func (m Model) renderCards(innerW, cardsH int) string {
	t := m.activeTab()
	if t == nil || len(t.cards) == 0 {
		hint := "Loading..."
		if t != nil && t.loaded {
			hint = "No notes here yet."
		}
		placeholder := m.styles.CardPlaceholderStyle.Render(hint)
		return view.PlaceBox(innerW, cardsH, lipgloss.Top, placeholder, m.styles.colorBg)
	}

	rendered := make([]string, len(t.cards))
	heights := make([]int, len(t.cards))
	for i := range t.cards {
		rendered[i] = m.renderCard(t, i, innerW)
		heights[i] = lipgloss.Height(rendered[i])
	}

	// Scroll chases the selection here because card heights depend on
	// the render width, which only the view knows.
	ensureSelectedVisible(t, heights, cardsH)

	var parts []string
	used := 0
	for i := t.scroll; i < len(rendered); i++ {
		if used+heights[i] > cardsH && used > 0 {
			break
		}
		parts = append(parts, rendered[i])
		used += heights[i]
	}
	joined := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return view.PadLinesWithBackground(joined, innerW, cardsH, m.styles.colorBg)
}

func (m Model) renderCard(t *tab, idx, innerW int) string {
	c := t.cards[idx]
	selected := idx == t.sel
	g := string(t.g)

	title := m.styles.CardTitleStyle(g, selected).Render(c.Title())
	if c.Key == period.KeyOf(m.now(), t.g) {
		title += m.styles.CurrentMarkStyle.Render(" *")
	}
	titleLine := view.SpreadLine(m.cardInnerWidth(), title, m.cardMarker(c), m.styles.colorBg)

	return view.RenderCard(view.CardModel{
		Frame:     m.styles.CardStyleWidth(g, selected, innerW-2),
		TitleLine: titleLine,
		Body:      m.cardBody(c, selected),
	})
}

func (m Model) cardMarker(c *Card) string {
	switch {
	case c.Synthetic:
		return m.styles.CardMetaStyle.Render("empty")
	case c.Dirty:
		return m.styles.PendingStyle.Render("+")
	case c.Complete:
		return m.styles.ReviewedStyle.Render("v " + m.config.Completion.Marker)
	default:
		return m.styles.PendingStyle.Render("o")
	}
}

func (m Model) cardBody(c *Card, selected bool) string {
	if !c.State.Expanded {
		return ""
	}
	if c.Synthetic {
		return m.styles.CardPlaceholderStyle.Render("No note yet. Press enter to create it.")
	}
	if !c.Loaded {
		return m.styles.CardMetaStyle.Render("Loading...")
	}

	if c.State.Mode == reconcile.ModeEditSource {
		if selected && c.State.HasFocus && m.mode == ModeEdit {
			return m.editor.View()
		}
		return c.Draft
	}
	return c.Markdown(m.theme.GlamourStyle(), m.cardInnerWidth())
}

// ensureSelectedVisible advances the scroll until the selected card fits
// inside the window, or is at least the first visible card.
func ensureSelectedVisible(t *tab, heights []int, availH int) {
	if t.sel < t.scroll {
		t.scroll = t.sel
		return
	}
	for t.scroll < t.sel {
		h := 0
		for i := t.scroll; i <= t.sel; i++ {
			h += heights[i]
		}
		if h <= availH {
			break
		}
		t.scroll++
	}
}
