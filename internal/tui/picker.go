package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"almanac/internal/period"
	"almanac/internal/tui/commands"
	"almanac/internal/tui/view"
)

// pickerVisibleItems bounds the candidate window in the jump modal.
const pickerVisibleItems = 9

// pickerState drives the jump-to-period modal. Levels run from the
// coarsest enabled granularity to the finest; drilling narrows the
// selection one level at a time.
type pickerState struct {
	levels     []period.Granularity
	level      int
	sel        period.Selection
	candidates []time.Time
	index      int
	offset     int
}

// openPicker opens the jump modal seeded from the selected card.
func (m Model) openPicker() (tea.Model, tea.Cmd) {
	if len(m.order) == 0 {
		return m, nil
	}
	levels := make([]period.Granularity, len(m.order))
	for i, g := range m.order {
		levels[len(m.order)-1-i] = g
	}

	p := &pickerState{levels: levels}
	start := 0
	for i, g := range levels {
		if g == m.active {
			start = i
		}
	}
	p.level = start

	anchor := m.now()
	if c := m.selectedCard(); c != nil {
		anchor = c.Key.Time()
	}
	p.sel = seedSelection(anchor, m.active)

	m.picker = p
	m.refreshPicker()
	m.mode = ModeModal
	m.modalType = ModalPicker
	return m, nil
}

// handlePickerKeys handles keys while the jump modal is open.
func (m Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.picker
	if p == nil {
		m.mode = ModeNormal
		m.modalType = ModalNone
		return m, nil
	}

	switch msg.String() {
	case "esc", "q":
		m.closePicker()

	case "j", "down":
		m.movePickerCursor(1)
	case "k", "up":
		m.movePickerCursor(-1)

	case "h", "left":
		if p.level > 0 {
			p.level--
			m.refreshPicker()
		}
	case "l", "right":
		if p.level < len(p.levels)-1 {
			p.level++
			m.refreshPicker()
		}

	case "enter":
		if p.level < len(p.levels)-1 {
			m.drillPicker()
			return m, nil
		}
		return m.pickerJump()

	case "o":
		return m.pickerJump()
	}
	return m, nil
}

func (m *Model) closePicker() {
	m.picker = nil
	m.mode = ModeNormal
	m.modalType = ModalNone
}

func (m *Model) movePickerCursor(delta int) {
	p := m.picker
	if len(p.candidates) == 0 {
		return
	}
	p.index += delta
	if p.index < 0 {
		p.index = 0
	}
	if p.index > len(p.candidates)-1 {
		p.index = len(p.candidates) - 1
	}
	if p.index < p.offset {
		p.offset = p.index
	}
	if p.index >= p.offset+pickerVisibleItems {
		p.offset = p.index - pickerVisibleItems + 1
	}
}

// refreshPicker rebuilds the candidate list for the focused level and
// parks the cursor on the period holding now when it is in range.
func (m *Model) refreshPicker() {
	p := m.picker
	g := p.levels[p.level]
	enabled := make(map[period.Granularity]bool, len(m.order))
	for _, eg := range m.order {
		enabled[eg] = true
	}
	p.candidates = period.Candidates(g, p.sel, enabled, m.now())

	p.index = 0
	current := period.KeyOf(m.now(), g)
	for i, t := range p.candidates {
		if period.KeyOf(t, g) == current {
			p.index = i
		}
	}
	p.offset = 0
	m.movePickerCursor(0)
}

// drillPicker folds the chosen candidate into the selection and descends
// one level.
func (m *Model) drillPicker() {
	p := m.picker
	if len(p.candidates) == 0 {
		return
	}
	chosen := p.candidates[p.index]
	switch p.levels[p.level] {
	case period.Yearly:
		p.sel = p.sel.SelectYear(chosen.Year())
	case period.Quarterly:
		p.sel = p.sel.SelectQuarter(period.QuarterOf(chosen.Month()))
	case period.Monthly:
		p.sel = p.sel.SelectMonth(chosen.Month())
	case period.Weekly:
		wy, wk := chosen.ISOWeek()
		p.sel = p.sel.SelectWeek(wy, wk)
	case period.Daily:
		p.sel = p.sel.SelectDay(chosen)
	}
	p.level++
	m.refreshPicker()
}

// pickerJump opens the chosen period on its granularity pane. Periods
// without a card go through note creation, which reloads the timeline
// and lands the selection on them.
func (m Model) pickerJump() (tea.Model, tea.Cmd) {
	p := m.picker
	g := p.levels[p.level]
	if len(p.candidates) == 0 {
		m.closePicker()
		return m, nil
	}
	k := period.KeyOf(p.candidates[p.index], g)
	m.closePicker()

	t, ok := m.tabs[g]
	if !ok {
		return m, nil
	}
	m.active = g
	if idx, found := t.indexOf(k); found {
		t.sel = idx
		return m, nil
	}
	pr := m.profiles[g]
	if pr == nil {
		return m, nil
	}
	return m, commands.CreateNote(m.store, pr, k)
}

// seedSelection builds the selection matching one period at granularity g.
func seedSelection(t time.Time, g period.Granularity) period.Selection {
	switch g {
	case period.Yearly:
		return period.Selection{}.SelectYear(t.Year())
	case period.Quarterly:
		return period.Selection{}.SelectYear(t.Year()).SelectQuarter(period.QuarterOf(t.Month()))
	case period.Monthly:
		return period.Selection{}.SelectYear(t.Year()).SelectMonth(t.Month())
	case period.Weekly:
		wy, wk := t.ISOWeek()
		return period.Selection{Year: t.Year()}.SelectWeek(wy, wk)
	default:
		return period.Selection{}.SelectDay(t)
	}
}

// selectionLabel renders the selection's choice at granularity g, if set.
func selectionLabel(sel period.Selection, g period.Granularity) (string, bool) {
	switch g {
	case period.Yearly:
		if sel.Year != 0 {
			return fmt.Sprintf("%d", sel.Year), true
		}
	case period.Quarterly:
		if sel.Quarter >= 1 && sel.Quarter <= 4 {
			return fmt.Sprintf("Q%d %d", sel.Quarter, sel.Year), true
		}
	case period.Monthly:
		if sel.Month >= time.January && sel.Month <= time.December {
			return fmt.Sprintf("%s %d", sel.Month, sel.Year), true
		}
	case period.Weekly:
		if sel.Week != 0 {
			wy := sel.WeekYear
			if wy == 0 {
				wy = sel.Year
			}
			return fmt.Sprintf("%d-W%02d", wy, sel.Week), true
		}
	case period.Daily:
		if !sel.Day.IsZero() {
			return sel.Day.Format("Jan 2 2006"), true
		}
	}
	return "", false
}

type pickerViewModel struct {
	Model    view.PickerModel
	Styles   view.PickerStyles
	CanDrill bool
}

func (m Model) pickerViewModel() pickerViewModel {
	p := m.picker
	g := p.levels[p.level]

	items := make([]view.PickerItem, len(p.candidates))
	t := m.tabs[g]
	for i, start := range p.candidates {
		k := period.KeyOf(start, g)
		hasNote := false
		if t != nil {
			if e, ok := t.entryFor(k); ok && !e.Synthetic() {
				hasNote = true
			}
		}
		items[i] = view.PickerItem{Label: k.Label(g), HasNote: hasNote, Active: i == p.index}
	}

	crumbs := make([]string, 0, p.level)
	for _, lg := range p.levels[:p.level] {
		if label, ok := selectionLabel(p.sel, lg); ok {
			crumbs = append(crumbs, label)
		}
	}

	return pickerViewModel{
		Model: view.PickerModel{
			Breadcrumb: strings.Join(crumbs, " > "),
			LevelLabel: g.Title(),
			Items:      items,
			Offset:     p.offset,
			Window:     pickerVisibleItems,
		},
		Styles: view.PickerStyles{
			ItemStyle:       m.styles.PickerItemStyle,
			ItemActiveStyle: m.styles.PickerItemActiveStyle,
			NoteStyle:       m.styles.PickerItemNoteStyle,
			LevelStyle:      m.styles.PickerLevelStyle,
			LevelFocusStyle: m.styles.PickerLevelFocusStyle,
		},
		CanDrill: p.level < len(p.levels)-1,
	}
}
