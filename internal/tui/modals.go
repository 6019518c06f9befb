package tui

import "almanac/internal/tui/view"

// modalFallbackWidth is the body width used when the modal style carries
// no explicit width.
const modalFallbackWidth = 60

// renderModal renders the current modal.
func (m Model) renderModal() string {
	switch m.modalType {
	case ModalPicker:
		return m.renderPickerModal()
	case ModalHelp:
		return m.renderHelpModal()
	case ModalStats:
		return m.renderStatsModal()
	case ModalInit:
		return m.renderInitModal()
	default:
		return ""
	}
}

func (m Model) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		ModalHeaderStyle:       m.styles.ModalHeaderStyle,
		ModalTitleStyle:        m.styles.ModalTitleStyle,
		ModalFooterStyle:       m.styles.ModalFooterStyle,
		ModalStyle:             m.styles.ModalStyle,
		ModalButtonStyle:       m.styles.ModalButtonStyle,
		ModalButtonActiveStyle: m.styles.ModalButtonActiveStyle,
		ModalBodyStyle:         m.styles.ModalBodyStyle,
	}
}

func (m Model) lineStyles() view.LineStyles {
	return view.LineStyles{
		BodyStyle:    m.styles.ModalBodyStyle,
		MetaStyle:    m.styles.ModalMetaStyle,
		SectionStyle: m.styles.ModalTitleStyle,
	}
}

func (m Model) modalContentWidth() int {
	return view.ModalContentWidth(m.styles.ModalStyle, modalFallbackWidth)
}

// renderPickerModal renders the jump-to-period picker.
func (m Model) renderPickerModal() string {
	if m.picker == nil {
		return ""
	}
	vm := m.pickerViewModel()
	body := view.RenderPickerBody(vm.Model, vm.Styles)
	footer := view.PickerFooter(vm.CanDrill, m.modalStyles())
	return view.RenderModalFrame("Jump", body, footer, m.modalStyles())
}

// renderHelpModal renders the keybinding reference.
func (m Model) renderHelpModal() string {
	lines := []view.Line{
		{Text: "Timeline", Kind: view.LineSection},
		{Text: "j/k move, g/G first/last, pgup/pgdn page"},
		{Text: "h/l or 1-5 switch granularity, t today, r reload"},
		{Text: "enter expand or create, e edit, v view"},
		{Text: "space toggle reviewed, y copy note body"},
		{Text: ""},
		{Text: "Editing", Kind: view.LineSection},
		{Text: "esc leave editor, ctrl+s save now, ctrl+p preview"},
		{Text: "Drafts save on their own shortly after you stop typing.", Kind: view.LineMeta},
		{Text: ""},
		{Text: "Elsewhere", Kind: view.LineSection},
		{Text: "p jump picker, s review coverage, / command prompt, q quit"},
	}
	body := view.RenderLines(lines, m.lineStyles(), m.modalContentWidth())
	footer := view.RenderModalButtonsCompact(m.modalStyles(), "[Esc] Close")
	return view.RenderModalFrame("Help", body, footer, m.modalStyles())
}

// renderStatsModal renders review coverage per granularity.
func (m Model) renderStatsModal() string {
	lines := view.BuildCoverageLines(m.coverages)
	body := view.RenderLines(lines, m.lineStyles(), m.modalContentWidth())
	return view.RenderModalFrame("Review Coverage", body, view.StatsFooter(m.modalStyles()), m.modalStyles())
}

type initModalViewModel struct {
	Model  view.InitModalModel
	Styles view.InitModalStyles
}

func (m Model) initModalViewModel() initModalViewModel {
	return initModalViewModel{
		Model: view.InitModalModel{
			ConfigPath:    m.initState.ConfigPath,
			VaultPath:     m.initState.VaultPath,
			ConfigMissing: m.initState.ConfigMissing,
			VaultMissing:  m.initState.VaultMissing,
			ErrorMessage:  m.initError,
		},
		Styles: view.InitModalStyles{
			BodyStyle:  m.styles.ModalBodyStyle,
			LabelStyle: m.styles.ModalLabelStyle,
			HintStyle:  m.styles.ModalHintStyle,
		},
	}
}

// renderInitModal renders the first-run setup modal.
func (m Model) renderInitModal() string {
	vm := m.initModalViewModel()
	body := view.RenderInitBody(vm.Model, vm.Styles)
	return view.RenderModalFrame("Welcome to Almanac", body, view.InitFooter(m.modalStyles()), m.modalStyles())
}
