package reconcile

import (
	"slices"

	"almanac/internal/period"
)

// Options configures a Reconciler.
type Options struct {
	// ExpandFirst force-expands the first item of the sequence when it is
	// created, so a fresh view opens on the most relevant period.
	ExpandFirst bool
}

// card is one mounted element. Synthetic cards have no cross-pass
// identity and are regenerated by every pass.
type card struct {
	state     RenderState
	synthetic bool
}

// Reconciler owns the render states and the live card order between
// passes. No other component mutates them.
type Reconciler struct {
	opts     Options
	cards    map[period.Key]card
	order    []period.Key
	focused  period.Key
	hasFocus bool
}

// New creates an empty Reconciler.
func New(opts Options) *Reconciler {
	return &Reconciler{
		opts:  opts,
		cards: make(map[period.Key]card),
	}
}

// State returns the render state of a mounted key.
func (r *Reconciler) State(k period.Key) (RenderState, bool) {
	c, ok := r.cards[k]
	return c.state, ok
}

// Order returns a copy of the live card order.
func (r *Reconciler) Order() []period.Key {
	return slices.Clone(r.order)
}

// Len returns the number of mounted cards.
func (r *Reconciler) Len() int {
	return len(r.order)
}

// Synthetic reports whether a mounted key is a placeholder.
func (r *Reconciler) Synthetic(k period.Key) bool {
	return r.cards[k].synthetic
}

// Focused returns the key currently holding focus, if any.
func (r *Reconciler) Focused() (period.Key, bool) {
	return r.focused, r.hasFocus
}

// SetExpanded records an expand or collapse interaction.
func (r *Reconciler) SetExpanded(k period.Key, expanded bool) {
	c, ok := r.cards[k]
	if !ok {
		return
	}
	c.state.Expanded = expanded
	r.cards[k] = c
}

// SetMode records a display mode change.
func (r *Reconciler) SetMode(k period.Key, m Mode) {
	c, ok := r.cards[k]
	if !ok || !m.Valid() {
		return
	}
	c.state.Mode = m
	r.cards[k] = c
}

// SetFocus grants input focus to a mounted key, releasing any prior
// holder. Focus is exclusive.
func (r *Reconciler) SetFocus(k period.Key) {
	c, ok := r.cards[k]
	if !ok {
		return
	}
	r.ReleaseFocus()
	c.state.HasFocus = true
	r.cards[k] = c
	r.focused = k
	r.hasFocus = true
}

// ReleaseFocus clears input focus.
func (r *Reconciler) ReleaseFocus() {
	if !r.hasFocus {
		return
	}
	if c, ok := r.cards[r.focused]; ok {
		c.state.HasFocus = false
		r.cards[r.focused] = c
	}
	r.focused = 0
	r.hasFocus = false
}

// Reconcile diffs the new merged sequence against the mounted cards and
// returns the edit script that transforms one into the other. The focused
// card is pinned: it is never created, removed, or moved, and a structural
// change it would need is deferred to a later pass instead. Synthetic
// placeholders are regenerated on every pass rather than diffed.
func (r *Reconciler) Reconcile(next []Item) Script {
	items := dedupe(next)

	inNext := make(map[period.Key]Item, len(items))
	for _, it := range items {
		inNext[it.Key] = it
	}

	var script Script
	live := slices.Clone(r.order)

	// Removals first. A mounted card goes when its key left the sequence
	// or its identity flipped between real and synthetic; a mounted
	// placeholder goes even at an unchanged key because placeholders are
	// rebuilt fresh. The focused card is exempt.
	for _, k := range r.order {
		c := r.cards[k]
		it, ok := inNext[k]
		if ok && !c.synthetic && !it.Synthetic {
			continue
		}
		if r.hasFocus && k == r.focused {
			script.Deferred = append(script.Deferred, k)
			continue
		}
		script.Steps = append(script.Steps, Step{Op: OpRemove, Key: k})
		live = deleteKey(live, k)
		delete(r.cards, k)
	}

	// Reverse walk: visit the sequence back to front so every item's
	// expected successor already sits in its final slot, then create or
	// move only where the live successor disagrees.
	created := make(map[period.Key]bool)
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		var succ period.Key
		hasSucc := i+1 < len(items)
		if hasSucc {
			succ = items[i+1].Key
		}

		if _, mounted := r.cards[it.Key]; !mounted {
			st := defaultState()
			if r.opts.ExpandFirst && i == 0 {
				st.Expanded = true
			}
			idx := insertPos(live, succ, hasSucc)
			live = slices.Insert(live, idx, it.Key)
			r.cards[it.Key] = card{state: st, synthetic: it.Synthetic}
			created[it.Key] = true
			script.Steps = append(script.Steps, Step{
				Op:        OpCreate,
				Key:       it.Key,
				Index:     idx,
				Synthetic: it.Synthetic,
				State:     st,
			})
			continue
		}

		if r.hasFocus && it.Key == r.focused {
			// A pinned card is left wherever it physically sits.
			continue
		}
		if cur, ok := successorOf(live, inNext, it.Key); ok == hasSucc && (!ok || cur == succ) {
			continue
		}
		live = deleteKey(live, it.Key)
		idx := insertPos(live, succ, hasSucc)
		live = slices.Insert(live, idx, it.Key)
		script.Steps = append(script.Steps, Step{Op: OpMove, Key: it.Key, Index: idx})
	}

	// Keeps last: structural no-ops that carry state forward and tell the
	// renderer how content may refresh.
	for _, it := range items {
		c, ok := r.cards[it.Key]
		if !ok || created[it.Key] {
			continue
		}
		script.Steps = append(script.Steps, Step{
			Op:      OpKeep,
			Key:     it.Key,
			Index:   slices.Index(live, it.Key),
			State:   c.state,
			Refresh: refreshFor(c.state),
		})
	}

	r.order = live
	return script
}

// dedupe drops later occurrences of a key. The merge step guarantees
// unique keys; the diff engine still refuses to mount one twice.
func dedupe(items []Item) []Item {
	seen := make(map[period.Key]bool, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if seen[it.Key] {
			continue
		}
		seen[it.Key] = true
		out = append(out, it)
	}
	return out
}

// successorOf returns the first key after k in the live order that takes
// part in the new sequence. Pinned cards whose key left the sequence stay
// in place and are skipped when judging adjacency.
func successorOf(live []period.Key, inNext map[period.Key]Item, k period.Key) (period.Key, bool) {
	i := slices.Index(live, k)
	if i < 0 {
		return 0, false
	}
	for _, cand := range live[i+1:] {
		if _, ok := inNext[cand]; ok {
			return cand, true
		}
	}
	return 0, false
}

// insertPos returns the slot directly before succ, or the end of the list
// when there is no successor.
func insertPos(live []period.Key, succ period.Key, hasSucc bool) int {
	if hasSucc {
		if i := slices.Index(live, succ); i >= 0 {
			return i
		}
	}
	return len(live)
}

func deleteKey(live []period.Key, k period.Key) []period.Key {
	if i := slices.Index(live, k); i >= 0 {
		return slices.Delete(live, i, i+1)
	}
	return live
}
