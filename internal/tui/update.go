package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"almanac/internal/note"
	"almanac/internal/tui/commands"
	"almanac/internal/vault"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.mode == ModeEdit {
			if c := m.selectedCard(); c != nil {
				m.syncEditorSize(c)
			}
		}
		return m, nil

	case commands.TimelineLoadedMsg:
		t := m.tabs[msg.Granularity]
		if t == nil || msg.Seq != t.loadSeq {
			return m, nil
		}
		t.entries = msg.Entries
		t.loaded = true
		t.stale = false
		m.completion.Sweep()
		LogTimeline(string(msg.Granularity), len(msg.Entries))
		cmds = append(cmds, m.applyScript(t, t.rec.Reconcile(t.items()))...)
		if t.pendingKey != 0 {
			if idx, ok := t.indexOf(t.pendingKey); ok {
				t.sel = idx
				t.clampSelection()
			}
			t.pendingKey = 0
		}
		return m, tea.Batch(cmds...)

	case commands.CardContentMsg:
		if t := m.tabs[msg.Granularity]; t != nil {
			m.applyContent(t, msg)
		}
		return m, nil

	case commands.SaveTickMsg:
		t := m.tabs[msg.Granularity]
		if t == nil {
			return m, nil
		}
		c := t.byKey[msg.Key]
		if c == nil || msg.Seq != c.saveSeq || !c.Dirty {
			return m, nil
		}
		return m, commands.SaveCard(m.store, msg.Granularity, c.Key, c.Path, c.Draft, msg.Seq)

	case commands.CardSavedMsg:
		t := m.tabs[msg.Granularity]
		if t == nil {
			return m, nil
		}
		c := t.byKey[msg.Key]
		if c == nil {
			return m, nil
		}
		if msg.Err != nil {
			LogError("saving note", msg.Err)
			m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
			m.statusTime = time.Now().Add(5 * time.Second)
			return m, nil
		}
		// A newer keystroke may have bumped the sequence; its own tick
		// saves again and the draft stays dirty until then.
		if msg.Seq == c.saveSeq {
			c.Dirty = false
			c.Content = c.Draft
			c.Complete = m.completion.Apply(c.Key, note.IsComplete(c.Content, m.config.Completion.Marker))
		}
		return m, nil

	case commands.NoteCreatedMsg:
		if msg.Err != nil && !errors.Is(msg.Err, vault.ErrExists) {
			LogError("creating note", msg.Err)
			m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
			m.statusTime = time.Now().Add(5 * time.Second)
			return m, nil
		}
		t := m.tabs[msg.Granularity]
		if t == nil {
			return m, nil
		}
		m.active = msg.Granularity
		t.pendingKey = msg.Key
		cmds = append(cmds, m.loadTimeline(msg.Granularity))
		if msg.Err == nil {
			cmds = append(cmds, commands.Status(fmt.Sprintf("Created %s", msg.Key.Label(msg.Granularity))))
		}
		return m, tea.Batch(cmds...)

	case commands.CompletionSavedMsg:
		t := m.tabs[msg.Granularity]
		if t == nil {
			return m, nil
		}
		c := t.byKey[msg.Key]
		if msg.Err != nil {
			// Roll back the optimistic toggle to what the content says.
			m.completion.Clear(msg.Key)
			if c != nil {
				c.Complete = note.IsComplete(c.Content, m.config.Completion.Marker)
			}
			LogError("toggling completion", msg.Err)
			m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
			m.statusTime = time.Now().Add(5 * time.Second)
			return m, nil
		}
		// The overlay entry stays until its TTL expires so a stale read
		// racing the write cannot flip the marker back.
		if c != nil {
			c.Complete = msg.Complete
		}
		if m.onCompletionChanged != nil {
			m.onCompletionChanged(msg.Key, msg.Complete)
		}
		return m, nil

	case commands.VaultEventMsg:
		if !msg.OK {
			return m, nil
		}
		for g, t := range m.tabs {
			if g == m.active {
				if cmd := m.loadTimeline(g); cmd != nil {
					cmds = append(cmds, cmd)
				}
			} else {
				t.stale = true
			}
		}
		cmds = append(cmds, commands.WaitForVault(m.events))
		return m, tea.Batch(cmds...)

	case commands.CoverageMsg:
		m.coverages = msg.Coverages
		m.mode = ModeModal
		m.modalType = ModalStats
		m.statusMsg = ""
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = time.Now().Add(5 * time.Second)
		return m, nil

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	// Non-key messages still reach the focused component, cursor blinks
	// among them.
	switch m.mode {
	case ModePrompt:
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		cmds = append(cmds, cmd)
	case ModeEdit:
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
