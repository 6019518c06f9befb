package tui

import (
	"fmt"
	"slices"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"almanac/internal/period"
	"almanac/internal/reconcile"
	"almanac/internal/tui/commands"
	"almanac/internal/tui/input"
	"almanac/internal/tui/view"
	"almanac/internal/vault"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Log keystroke
	LogKeyPress(msg)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// Mode-specific handling
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	case ModeEdit:
		return m.handleEditKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.activeTab()

	switch msg.String() {
	case "q":
		if saves := m.flushDirty(); len(saves) > 0 {
			return m, tea.Sequence(append(saves, tea.Quit)...)
		}
		return m, tea.Quit

	// Selection
	case "j", "down":
		if t != nil {
			t.sel++
			t.clampSelection()
		}
	case "k", "up":
		if t != nil {
			t.sel--
			t.clampSelection()
		}
	case "g", "home":
		if t != nil {
			t.sel = 0
			t.clampSelection()
		}
	case "G", "end":
		if t != nil {
			t.sel = len(t.cards) - 1
			t.clampSelection()
		}

	// Page navigation
	case "pgdown", "ctrl+d":
		if t != nil {
			t.sel += 3
			t.clampSelection()
		}
	case "pgup", "ctrl+u":
		if t != nil {
			t.sel -= 3
			t.clampSelection()
		}

	// Granularity tabs
	case "h", "left", "shift+tab":
		return m.cycleTab(-1)
	case "l", "right", "tab":
		return m.cycleTab(1)
	case "1", "2", "3", "4", "5":
		idx := int(msg.String()[0] - '1')
		if idx < len(m.order) {
			return m.switchTab(m.order[idx])
		}

	// Card actions
	case "enter":
		return m.handleToggleExpand()
	case "e", "i":
		return m.handleEdit()
	case "v":
		return m.handleView()
	case " ":
		return m.handleToggleComplete()
	case "y":
		c := m.selectedCard()
		if c == nil || c.Synthetic || !c.Loaded {
			return m, commands.Status("Nothing to copy")
		}
		if err := clipboard.WriteAll(c.Body()); err != nil {
			return m, commands.Status(fmt.Sprintf("Copy failed: %v", err))
		}
		return m, commands.Status(fmt.Sprintf("Copied %s", c.Title()))

	// Jumps
	case "t":
		return m.handleToday()
	case "p":
		return m.openPicker()

	// Surfaces
	case "s":
		return m.handleStats()
	case "r":
		if t != nil {
			return m, m.loadTimeline(t.g)
		}
	case "/":
		m.mode = ModePrompt
		m.prompt.SetValue("/")
		m.prompt.Focus()
		return m, textinput.Blink
	case "?":
		m.mode = ModeModal
		m.modalType = ModalHelp
		return m, nil
	}

	return m, nil
}

// handleEditKeys handles keys while a card's textarea holds focus.
func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.activeTab()
	c := m.selectedCard()
	if t == nil || c == nil {
		m.mode = ModeNormal
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m.exitEditor()

	case "ctrl+p":
		// Flip between raw source and rendered preview of the draft.
		next := reconcile.ModeEditPreview
		if c.State.Mode == reconcile.ModeEditPreview {
			next = reconcile.ModeEditSource
		}
		t.rec.SetMode(c.Key, next)
		if st, ok := t.rec.State(c.Key); ok {
			c.State = st
		}
		return m, nil

	case "ctrl+s":
		if !c.Dirty {
			return m, nil
		}
		c.saveSeq++
		return m, commands.SaveCard(m.store, t.g, c.Key, c.Path, c.Draft, c.saveSeq)
	}

	if c.State.Mode == reconcile.ModeEditPreview {
		// Preview swallows typing; the draft stays as it was.
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)

	if val := m.editor.Value(); val != c.Draft {
		c.Draft = val
		c.Dirty = true
		c.saveSeq++
		cmds = append(cmds, commands.ScheduleSave(t.g, c.Key, c.saveSeq, saveDebounce))
		m.syncEditorSize(c)
	}
	c.DraftCursor = editorCursorOffset(&m.editor, c.Draft)
	return m, tea.Batch(cmds...)
}

// handlePromptKeys handles keys in prompt mode.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m, nil

	case "enter":
		value := m.prompt.Value()
		m.mode = ModeNormal
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m.handlePromptSubmit(value)

	case "tab":
		if completion, ok := input.PromptAutocomplete(m.prompt.Value(), promptCommands); ok {
			m.prompt.SetValue(completion)
			m.prompt.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleModalKeys handles keys in modal mode.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalPicker:
		return m.handlePickerKeys(msg)
	case ModalInit:
		return m.handleInitKeys(msg)
	case ModalStats:
		switch msg.String() {
		case "esc", "q", "s", "enter":
			m.mode = ModeNormal
			m.modalType = ModalNone
			m.coverages = nil
		case "y":
			text := view.LinesToText(view.BuildCoverageLines(m.coverages))
			if err := clipboard.WriteAll(text); err != nil {
				return m, commands.Status(fmt.Sprintf("Copy failed: %v", err))
			}
			return m, commands.Status("Copied coverage")
		}
		return m, nil
	case ModalHelp:
		switch msg.String() {
		case "esc", "q", "?", "enter":
			m.mode = ModeNormal
			m.modalType = ModalNone
		}
		return m, nil
	default:
		if msg.String() == "esc" {
			m.mode = ModeNormal
			m.modalType = ModalNone
		}
	}
	return m, nil
}

// switchTab activates a granularity pane, reloading it when its timeline
// is stale or was never scanned.
func (m Model) switchTab(g period.Granularity) (tea.Model, tea.Cmd) {
	t, ok := m.tabs[g]
	if !ok || g == m.active {
		return m, nil
	}
	m.active = g
	if !t.loaded || t.stale {
		return m, m.loadTimeline(g)
	}
	return m, nil
}

// cycleTab moves through the enabled granularities in order.
func (m Model) cycleTab(delta int) (tea.Model, tea.Cmd) {
	if len(m.order) == 0 {
		return m, nil
	}
	idx := slices.Index(m.order, m.active) + delta
	idx = ((idx % len(m.order)) + len(m.order)) % len(m.order)
	return m.switchTab(m.order[idx])
}

// handleToggleExpand expands or collapses the selected card. On a
// placeholder it creates the note instead.
func (m Model) handleToggleExpand() (tea.Model, tea.Cmd) {
	t := m.activeTab()
	c := m.selectedCard()
	if t == nil || c == nil {
		return m, nil
	}
	if c.Synthetic {
		pr := m.profiles[t.g]
		if pr == nil {
			return m, nil
		}
		return m, commands.CreateNote(m.store, pr, c.Key)
	}
	t.rec.SetExpanded(c.Key, !c.State.Expanded)
	if st, ok := t.rec.State(c.Key); ok {
		c.State = st
	}
	return m, nil
}

// handleEdit focuses the selected card's editor. A placeholder gets its
// note created first; a second press then edits the real card.
func (m Model) handleEdit() (tea.Model, tea.Cmd) {
	t := m.activeTab()
	c := m.selectedCard()
	if t == nil || c == nil {
		return m, nil
	}
	if c.Synthetic {
		pr := m.profiles[t.g]
		if pr == nil {
			return m, nil
		}
		return m, commands.CreateNote(m.store, pr, c.Key)
	}
	if !c.Loaded {
		return m, commands.Status("Still loading...")
	}
	if !c.State.Mode.Editable() {
		c.Draft = c.Content
		c.DraftCursor = len([]rune(c.Content))
	}
	t.rec.SetMode(c.Key, reconcile.ModeEditSource)
	t.rec.SetFocus(c.Key)
	t.rec.SetExpanded(c.Key, true)
	if st, ok := t.rec.State(c.Key); ok {
		c.State = st
	}
	LogModeChange(m.mode, ModeEdit, "edit_card")
	m.mode = ModeEdit
	return m, m.openEditor(c)
}

// exitEditor releases focus, flushes a dirty draft, and reruns the last
// sequence so a removal deferred by the focus pin can apply.
func (m Model) exitEditor() (tea.Model, tea.Cmd) {
	t := m.activeTab()
	c := m.selectedCard()
	m.editor.Blur()
	LogModeChange(m.mode, ModeNormal, "exit_editor")
	m.mode = ModeNormal
	if t == nil || c == nil {
		return m, nil
	}
	c.DraftCursor = editorCursorOffset(&m.editor, c.Draft)
	t.rec.ReleaseFocus()
	if st, ok := t.rec.State(c.Key); ok {
		c.State = st
	}

	var cmds []tea.Cmd
	if c.Dirty {
		c.saveSeq++
		cmds = append(cmds, commands.SaveCard(m.store, t.g, c.Key, c.Path, c.Draft, c.saveSeq))
	}
	cmds = append(cmds, m.applyScript(t, t.rec.Reconcile(t.items()))...)
	return m, tea.Batch(cmds...)
}

// handleView returns an unfocused editor card to rendered view.
func (m Model) handleView() (tea.Model, tea.Cmd) {
	t := m.activeTab()
	c := m.selectedCard()
	if t == nil || c == nil || !c.State.Mode.Editable() {
		return m, nil
	}
	var cmds []tea.Cmd
	if c.Dirty {
		c.saveSeq++
		cmds = append(cmds, commands.SaveCard(m.store, t.g, c.Key, c.Path, c.Draft, c.saveSeq))
	}
	t.rec.SetMode(c.Key, reconcile.ModeView)
	if st, ok := t.rec.State(c.Key); ok {
		c.State = st
	}
	return m, tea.Batch(cmds...)
}

// handleToggleComplete flips the review marker on the selected card. The
// overlay keeps the optimistic state until the write settles.
func (m Model) handleToggleComplete() (tea.Model, tea.Cmd) {
	t := m.activeTab()
	c := m.selectedCard()
	if t == nil || c == nil {
		return m, nil
	}
	if c.Synthetic {
		return m, commands.Status("No note yet")
	}
	if !c.Loaded {
		return m, nil
	}
	if c.Dirty {
		return m, commands.Status("Draft not saved yet")
	}
	want := !c.Complete
	m.completion.Set(c.Key, want)
	c.Complete = want
	return m, commands.ToggleCompletion(m.store, t.g, c.Key, c.Path, m.config.Completion.Marker, want)
}

// handleToday jumps the selection to the current period.
func (m Model) handleToday() (tea.Model, tea.Cmd) {
	t := m.activeTab()
	if t == nil {
		return m, nil
	}
	k := period.KeyOf(m.now(), t.g)
	if idx, ok := t.indexOf(k); ok {
		t.sel = idx
		t.clampSelection()
		return m, nil
	}
	t.pendingKey = k
	return m, m.loadTimeline(t.g)
}

// handleStats kicks off a coverage scan across all enabled profiles.
func (m Model) handleStats() (tea.Model, tea.Cmd) {
	prs := make([]*vault.Profile, 0, len(m.order))
	for _, g := range m.order {
		if pr := m.profiles[g]; pr != nil {
			prs = append(prs, pr)
		}
	}
	if len(prs) == 0 {
		return m, nil
	}
	m.statusMsg = "Loading stats..."
	return m, commands.LoadCoverage(m.store, prs, m.config.Completion.Marker, m.now())
}

// flushDirty issues an immediate save for every dirty draft.
func (m *Model) flushDirty() []tea.Cmd {
	var cmds []tea.Cmd
	for g, t := range m.tabs {
		for _, c := range t.cards {
			if c.Dirty {
				c.saveSeq++
				cmds = append(cmds, commands.SaveCard(m.store, g, c.Key, c.Path, c.Draft, c.saveSeq))
			}
		}
	}
	return cmds
}
