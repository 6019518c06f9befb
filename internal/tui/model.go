package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"almanac/internal/config"
	"almanac/internal/note"
	"almanac/internal/period"
	"almanac/internal/reconcile"
	"almanac/internal/summary"
	"almanac/internal/tui/commands"
	"almanac/internal/tui/theme"
	"almanac/internal/vault"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEdit        // Editing a card inline - keystrokes go to the textarea
	ModePrompt
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone   ModalType = iota
	ModalPicker           // Jump-to-period navigation
	ModalHelp
	ModalInit
	ModalStats // Review coverage overlay
)

// saveDebounce is how long after the last keystroke a draft is written
// back to the vault.
const saveDebounce = 750 * time.Millisecond

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store    *vault.Store
	profiles map[period.Granularity]*vault.Profile
	config   *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// State
	mode       Mode
	active     period.Granularity
	order      []period.Granularity
	tabs       map[period.Granularity]*tab
	completion *reconcile.Overlay
	now        func() time.Time

	// Vault change feed
	events <-chan vault.Event

	// Host notification for persisted review toggles
	onCompletionChanged func(period.Key, bool)

	// Modal state
	modalType ModalType
	picker    *pickerState
	initState InitState
	initError string

	// Stats peek overlay
	overlay   OverlayModel
	coverages []*summary.Coverage

	// Components
	editor textarea.Model
	prompt textinput.Model

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithInitState sets the startup initialization state.
func WithInitState(state InitState) ModelOption {
	return func(m *Model) {
		m.initState = state
		if state.NeedsInit {
			m.mode = ModeModal
			m.modalType = ModalInit
		}
	}
}

// WithWatch attaches the vault change feed.
func WithWatch(events <-chan vault.Event) ModelOption {
	return func(m *Model) {
		m.events = events
	}
}

// WithClock overrides the clock used for gap filling and status expiry.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// WithCompletionCallback notifies the host after a review marker toggle
// has been written to the vault. Rolled-back toggles do not notify.
func WithCompletionCallback(fn func(key period.Key, complete bool)) ModelOption {
	return func(m *Model) {
		m.onCompletionChanged = fn
	}
}

// New creates a new TUI model.
func New(store *vault.Store, profiles map[period.Granularity]*vault.Profile, cfg *config.Config, opts ...ModelOption) *Model {
	ti := textinput.New()
	ti.Placeholder = "/theme frappe"

	// Inline note editor
	ed := textarea.New()
	ed.Placeholder = "Start writing..."
	ed.ShowLineNumbers = false
	ed.CharLimit = 0
	ed.Prompt = ""

	// Load theme from config
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		// Fallback to frappe on error
		t, _ = theme.Load("frappe")
	}

	// Create styles from theme
	styles := NewStyles(t)

	order := cfg.EnabledGranularities()
	tabs := make(map[period.Granularity]*tab, len(order))
	for _, g := range order {
		tabs[g] = newTab(g, cfg.View.ExpandFirst)
	}
	active := period.Daily
	if len(order) > 0 {
		active = order[0]
	}

	m := &Model{
		store:      store,
		profiles:   profiles,
		config:     cfg,
		theme:      t,
		styles:     styles,
		mode:       ModeNormal,
		active:     active,
		order:      order,
		tabs:       tabs,
		completion: reconcile.NewOverlay(reconcile.DefaultOverlayTTL, nil),
		now:        time.Now,
		editor:     ed,
		prompt:     ti,
		overlay:    NewOverlayModel(),
	}
	m.styleEditor()
	m.overlay.SetBackground(styles.ModalBgColor)

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.initState.NeedsInit {
		return nil
	}
	cmds := []tea.Cmd{m.loadTimeline(m.active)}
	if m.events != nil {
		cmds = append(cmds, commands.WaitForVault(m.events))
	}
	return tea.Batch(cmds...)
}

// loadTimeline issues a fresh scan for one granularity's tab.
func (m *Model) loadTimeline(g period.Granularity) tea.Cmd {
	t := m.tabs[g]
	pr := m.profiles[g]
	if t == nil || pr == nil || m.store == nil {
		return nil
	}
	t.loadSeq++
	return commands.LoadTimeline(m.store, pr, m.config.View.FutureHorizon, m.sortOrder(), t.loadSeq, m.now())
}

// sortOrder returns the configured timeline order.
func (m *Model) sortOrder() note.Order {
	if o := note.Order(m.config.View.SortOrder); o.Valid() {
		return o
	}
	return note.Descending
}

// activeTab returns the visible granularity pane.
func (m *Model) activeTab() *tab {
	return m.tabs[m.active]
}

// selectedCard returns the card under the cursor, or nil.
func (m *Model) selectedCard() *Card {
	t := m.activeTab()
	if t == nil {
		return nil
	}
	return t.selected()
}

// Run starts the TUI.
func Run(cfg *config.Config) error {
	return RunWithDebug(cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	state, err := DetectInitState(cfg)
	if err != nil {
		return err
	}

	var (
		store    *vault.Store
		profiles map[period.Granularity]*vault.Profile
		events   <-chan vault.Event
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if !state.NeedsInit {
		store, profiles, err = openVault(cfg)
		if err != nil {
			return err
		}
		events, err = store.Watch(ctx)
		if err != nil {
			LogError("starting vault watcher", err)
			events = nil
		}
	}

	model := New(store, profiles, cfg, WithInitState(state), WithWatch(events),
		WithCompletionCallback(func(k period.Key, complete bool) {
			LogCompletion(k.String(), complete)
		}))
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
