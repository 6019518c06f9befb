package tui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"almanac/internal/note"
	"almanac/internal/period"
	"almanac/internal/reconcile"
	"almanac/internal/tui/commands"
)

// Card is the mounted render state of one timeline slot. Content is the
// last stored text read from the vault; Draft is the editable copy shown
// while the card is in an edit mode. Sequence counters guard both against
// stale async results.
type Card struct {
	Key         period.Key
	Granularity period.Granularity
	Synthetic   bool
	Path        string

	State reconcile.RenderState

	Content  string
	Loaded   bool
	Complete bool

	Draft       string
	DraftCursor int
	Dirty       bool

	loadSeq int
	saveSeq int

	rendered      string
	renderedFor   string
	renderedStyle string
	renderedWidth int
}

// Title returns the human label of the card's period.
func (c *Card) Title() string {
	return c.Key.Label(c.Granularity)
}

// Body returns the text the card should display: the draft while the
// card is editable, the stored content otherwise.
func (c *Card) Body() string {
	if c.State.Mode.Editable() {
		return c.Draft
	}
	return c.Content
}

// Markdown renders the card body through glamour, memoized per content,
// style, and width.
func (c *Card) Markdown(style string, width int) string {
	body := c.Body()
	if c.renderedFor == body && c.renderedStyle == style && c.renderedWidth == width {
		return c.rendered
	}
	c.rendered = renderMarkdown(body, style, width)
	c.renderedFor = body
	c.renderedStyle = style
	c.renderedWidth = width
	return c.rendered
}

// tab is the per-granularity timeline pane. Each tab owns its reconciler
// and card list so switching tabs never loses interaction state.
type tab struct {
	g       period.Granularity
	rec     *reconcile.Reconciler
	cards   []*Card
	byKey   map[period.Key]*Card
	entries []note.Entry
	loaded  bool
	stale   bool
	loadSeq int
	sel     int
	scroll  int

	// pendingKey is selected after the next timeline load lands, then
	// cleared. Used when a jump or create targets a card that is not
	// mounted yet.
	pendingKey period.Key
}

func newTab(g period.Granularity, expandFirst bool) *tab {
	return &tab{
		g:     g,
		rec:   reconcile.New(reconcile.Options{ExpandFirst: expandFirst}),
		byKey: make(map[period.Key]*Card),
	}
}

// selected returns the card under the selection cursor.
func (t *tab) selected() *Card {
	if t.sel < 0 || t.sel >= len(t.cards) {
		return nil
	}
	return t.cards[t.sel]
}

// indexOf returns the position of a mounted key.
func (t *tab) indexOf(k period.Key) (int, bool) {
	for i, c := range t.cards {
		if c.Key == k {
			return i, true
		}
	}
	return 0, false
}

// entryFor looks up the merged entry behind a key.
func (t *tab) entryFor(k period.Key) (note.Entry, bool) {
	for _, e := range t.entries {
		if e.Key == k {
			return e, true
		}
	}
	return note.Entry{}, false
}

// items converts the last merged entries into reconciler input.
func (t *tab) items() []reconcile.Item {
	items := make([]reconcile.Item, len(t.entries))
	for i, e := range t.entries {
		items[i] = reconcile.Item{Key: e.Key, Synthetic: e.Synthetic()}
	}
	return items
}

func (t *tab) insertCard(idx int, c *Card) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(t.cards) {
		idx = len(t.cards)
	}
	t.cards = slices.Insert(t.cards, idx, c)
	t.byKey[c.Key] = c
}

func (t *tab) removeCard(k period.Key) {
	if i, ok := t.indexOf(k); ok {
		t.cards = slices.Delete(t.cards, i, i+1)
	}
	delete(t.byKey, k)
}

func (t *tab) moveCard(k period.Key, idx int) {
	i, ok := t.indexOf(k)
	if !ok {
		return
	}
	c := t.cards[i]
	t.cards = slices.Delete(t.cards, i, i+1)
	if idx < 0 {
		idx = 0
	}
	if idx > len(t.cards) {
		idx = len(t.cards)
	}
	t.cards = slices.Insert(t.cards, idx, c)
}

// clampSelection keeps the cursor inside the card list.
func (t *tab) clampSelection() {
	if len(t.cards) == 0 {
		t.sel = 0
		t.scroll = 0
		return
	}
	if t.sel >= len(t.cards) {
		t.sel = len(t.cards) - 1
	}
	if t.sel < 0 {
		t.sel = 0
	}
	if t.scroll > t.sel {
		t.scroll = t.sel
	}
	if t.scroll < 0 {
		t.scroll = 0
	}
}

// applyScript plays a reconciliation script against the tab's card list.
// Creates and refreshes of real cards issue read commands; the selection
// follows its key and clamps when the key is gone.
func (m *Model) applyScript(t *tab, script reconcile.Script) []tea.Cmd {
	LogScript(string(t.g), script)

	var selKey period.Key
	hasSel := false
	if c := t.selected(); c != nil {
		selKey = c.Key
		hasSel = true
	}

	var cmds []tea.Cmd
	for _, step := range script.Steps {
		switch step.Op {
		case reconcile.OpCreate:
			c := &Card{
				Key:         step.Key,
				Granularity: t.g,
				Synthetic:   step.Synthetic,
				State:       step.State,
			}
			if !step.Synthetic {
				if e, ok := t.entryFor(step.Key); ok && !e.Synthetic() {
					c.Path = e.Note.Path
				}
				c.loadSeq++
				cmds = append(cmds, commands.LoadCard(m.store, t.g, c.Key, c.Path, c.loadSeq))
			} else {
				c.Loaded = true
			}
			t.insertCard(step.Index, c)

		case reconcile.OpRemove:
			t.removeCard(step.Key)

		case reconcile.OpMove:
			t.moveCard(step.Key, step.Index)

		case reconcile.OpKeep:
			c := t.byKey[step.Key]
			if c == nil {
				continue
			}
			c.State = step.State
			if step.Refresh == reconcile.RefreshNone || c.Synthetic {
				continue
			}
			// A dirty draft outranks any refresh until its save lands.
			if c.Dirty {
				continue
			}
			if e, ok := t.entryFor(step.Key); ok && !e.Synthetic() {
				c.Path = e.Note.Path
			}
			c.loadSeq++
			cmds = append(cmds, commands.LoadCard(m.store, t.g, c.Key, c.Path, c.loadSeq))
		}
	}

	if hasSel {
		if idx, ok := t.indexOf(selKey); ok {
			t.sel = idx
		}
	}
	t.clampSelection()
	return cmds
}

// applyContent lands a completed read on its card. Stale sequence numbers,
// unmounted keys, dirty drafts, and focused editors all drop the result.
func (m *Model) applyContent(t *tab, msg commands.CardContentMsg) {
	c := t.byKey[msg.Key]
	if c == nil || msg.Seq != c.loadSeq {
		return
	}
	if msg.Err != nil {
		// The file may have vanished between scan and read; the next
		// watcher pass unmounts the card.
		LogError("loading note", msg.Err)
		return
	}
	if c.Dirty || (c.State.Mode.Editable() && c.State.HasFocus) {
		return
	}

	if c.State.Mode.Editable() && msg.Content != c.Draft {
		// In-place refresh of an unfocused editor: replace the text and
		// re-anchor the cursor from its surrounding context.
		c.DraftCursor = reconcile.RecoverCursor(c.Draft, msg.Content, c.DraftCursor)
		c.Draft = msg.Content
	}
	c.Content = msg.Content
	c.Loaded = true
	c.Complete = m.completion.Apply(c.Key, note.IsComplete(msg.Content, m.config.Completion.Marker))
}
