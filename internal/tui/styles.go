// Package tui provides the terminal user interface for almanac.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"almanac/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Theme colors as lipgloss colors
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorCurrent     lipgloss.Color
	colorWarning     lipgloss.Color

	colorTextOnAccent  lipgloss.Color
	colorTextOnWarning lipgloss.Color
	colorTextOnCurrent lipgloss.Color

	// Palette retained for per-granularity color lookups
	palette *theme.Palette

	// Base frame shared by all note cards
	cardBase lipgloss.Style

	// Title bar styles
	TitleStyle lipgloss.Style
	TabStyle   lipgloss.Style
	DateStyle  lipgloss.Style

	// Card content styles
	CardMetaStyle        lipgloss.Style
	CardPlaceholderStyle lipgloss.Style
	ReviewedStyle        lipgloss.Style
	PendingStyle         lipgloss.Style
	CurrentMarkStyle     lipgloss.Style

	// Stats bar
	StatsBarStyle lipgloss.Style

	// Prompt box
	PromptStyle        lipgloss.Style
	PromptFocusedStyle lipgloss.Style

	// Status message
	StatusStyle lipgloss.Style

	// Help text
	HelpStyle lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBgColor           lipgloss.Color
	ModalBackdropColor     lipgloss.Color
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalMetaStyle         lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalHintStyle         lipgloss.Style

	// Picker option styles
	PickerItemStyle       lipgloss.Style
	PickerItemActiveStyle lipgloss.Style
	PickerItemNoteStyle   lipgloss.Style
	PickerLevelStyle      lipgloss.Style
	PickerLevelFocusStyle lipgloss.Style

	// App container
	AppStyle lipgloss.Style

	// Viewport background
	ViewportStyle lipgloss.Style

	// Separator style
	SeparatorStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)
	s.palette = palette

	// Convert theme colors to lipgloss colors
	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorCurrent = palette.Current
	s.colorWarning = palette.Warning

	s.colorTextOnAccent = palette.TextOnAccent
	s.colorTextOnWarning = palette.TextOnWarning
	s.colorTextOnCurrent = palette.TextOnCurrent

	// Build styles from colors

	// Shared card frame. Left padding leaves room for the marker gutter.
	s.cardBase = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderBackground(s.colorBg).
		Background(s.colorBg).
		Foreground(s.colorFg).
		Padding(0, 1, 0, 2)

	// Title bar
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.TabStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg).
		Padding(0, 1)

	s.DateStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	// Card content
	s.CardMetaStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.CardPlaceholderStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg).
		Italic(true)

	s.ReviewedStyle = lipgloss.NewStyle().
		Foreground(s.colorCurrent).
		Background(s.colorBg).
		Bold(true)

	s.PendingStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	// Current period marker
	s.CurrentMarkStyle = lipgloss.NewStyle().
		Foreground(s.colorCurrent).
		Background(s.colorBg).
		Bold(true)

	// Stats bar - no margins, use explicit newlines in View() for spacing
	s.StatsBarStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg).
		Padding(0, 0)

	// Prompt box
	s.PromptStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorFgMuted).
		BorderBackground(s.colorBg).
		Background(s.colorBgHighlight).
		Foreground(s.colorFg).
		Padding(0, 1)

	s.PromptFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorAccent).
		BorderBackground(s.colorBg).
		Background(s.colorBgSelection).
		Foreground(s.colorFg).
		Bold(true).
		Padding(0, 1)

	// Status message
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(s.colorBg).
		Bold(true)

	// Help text
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)

	// Modal styles - use high-contrast theme colors
	modal := palette.Modal
	modalBg := modal.Bg
	modalBorder := modal.Border
	modalText := modal.Text
	modalMuted := modal.Muted
	modalHighlight := modal.Highlight
	modalPanel := modal.Panel
	modalReverseText := modal.ReverseText
	s.ModalBackdropColor = modal.Backdrop
	s.ModalBgColor = modalBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modalBorder).
		Background(modalBg).
		Foreground(modalText).
		Padding(1, 1).
		Width(64).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modalText).
		Background(modalBg).
		Padding(0, 1).
		Align(lipgloss.Center)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(modalBg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modalText).
		Background(modalBg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modalText).
		Background(modalBg)

	s.ModalMetaStyle = lipgloss.NewStyle().
		Foreground(modalMuted).
		Background(modalBg)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(modalText).
		Bold(true).
		Width(12).
		Background(modalBg)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Background(modalPanel).
		Foreground(modalText).
		Padding(0, 3)

	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Background(modalHighlight).
		Foreground(modalReverseText).
		Padding(0, 3).
		MarginRight(0).
		Underline(true)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(modalMuted).
		Background(modalBg)

	// Picker option styles
	s.PickerItemStyle = lipgloss.NewStyle().
		Background(modalBg).
		Foreground(modalText).
		Padding(0, 1)

	s.PickerItemActiveStyle = lipgloss.NewStyle().
		Background(modalHighlight).
		Foreground(modalReverseText).
		Bold(true).
		Padding(0, 1)

	s.PickerItemNoteStyle = lipgloss.NewStyle().
		Background(modalBg).
		Foreground(modalMuted)

	s.PickerLevelStyle = lipgloss.NewStyle().
		Background(modalBg).
		Foreground(modalMuted).
		Padding(0, 1)

	s.PickerLevelFocusStyle = lipgloss.NewStyle().
		Background(modalPanel).
		Foreground(modalText).
		Bold(true).
		Padding(0, 1)

	// App container - padding provides consistent indentation for all content
	s.AppStyle = lipgloss.NewStyle().
		Background(s.colorBg).
		PaddingTop(1).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingBottom(1)

	// Viewport background - fill entire terminal with base background.
	s.ViewportStyle = lipgloss.NewStyle().
		Background(s.colorBg)

	// Separator style
	s.SeparatorStyle = lipgloss.NewStyle().
		Foreground(s.colorBgSelection).
		Background(s.colorBg)

	return s
}

// CardStyle returns the card frame for the given granularity. The selected
// card gets the granularity accent on the border, others stay muted.
func (s *Styles) CardStyle(granularity string, selected bool) lipgloss.Style {
	if !selected {
		return s.cardBase.BorderForeground(s.colorBgSelection)
	}
	gc := s.palette.Granularity(granularity)
	return s.cardBase.BorderForeground(gc.Accent)
}

// CardStyleWidth returns the card frame sized to the given total width.
func (s *Styles) CardStyleWidth(granularity string, selected bool, width int) lipgloss.Style {
	return s.CardStyle(granularity, selected).Width(width)
}

// CardTitleStyle returns the title line style for a card.
func (s *Styles) CardTitleStyle(granularity string, selected bool) lipgloss.Style {
	st := lipgloss.NewStyle().
		Background(s.colorBg).
		Bold(true)
	if !selected {
		return st.Foreground(s.colorFg)
	}
	return st.Foreground(s.palette.Granularity(granularity).Accent)
}

// TabActiveStyle returns the active tab style for a granularity.
func (s *Styles) TabActiveStyle(granularity string) lipgloss.Style {
	gc := s.palette.Granularity(granularity)
	return lipgloss.NewStyle().
		Background(gc.Accent).
		Foreground(gc.Text).
		Bold(true).
		Padding(0, 1)
}

// StatAccentStyle returns the stats bar accent style for a granularity.
func (s *Styles) StatAccentStyle(granularity string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.palette.Granularity(granularity).Accent).
		Background(s.colorBg).
		Bold(true)
}

// GranularityColor returns the accent color for a granularity.
func (s *Styles) GranularityColor(granularity string) lipgloss.Color {
	return s.palette.Granularity(granularity).Accent
}

// EditorLineColor returns the background color for the editor cursor line.
func (s *Styles) EditorLineColor() lipgloss.Color {
	return s.colorBgHighlight
}
