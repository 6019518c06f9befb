// Package reconcile computes incremental edit scripts that keep a rendered
// card list in sync with a freshly merged timeline. The focused card is
// never moved, recreated, or removed by a pass; everything else reorders
// around it.
package reconcile

import "almanac/internal/period"

// Mode is the display mode of a mounted card.
type Mode string

const (
	ModeView        Mode = "view"
	ModeEditPreview Mode = "edit-preview"
	ModeEditSource  Mode = "edit-source"
)

// Valid returns true if the mode is a valid value.
func (m Mode) Valid() bool {
	switch m {
	case ModeView, ModeEditPreview, ModeEditSource:
		return true
	default:
		return false
	}
}

// Editable reports whether the mode accepts text input.
func (m Mode) Editable() bool {
	return m == ModeEditPreview || m == ModeEditSource
}

// RenderState is the per-key snapshot captured after each interaction and
// consulted by the reconciler. The reconciler owns the state map; a pass
// reads states and carries them forward but never rewrites a kept one.
type RenderState struct {
	Expanded bool
	Mode     Mode
	HasFocus bool
}

// defaultState is the state of a freshly created card.
func defaultState() RenderState {
	return RenderState{Expanded: false, Mode: ModeView, HasFocus: false}
}

// RefreshMode tells the renderer how a kept card's content may be updated.
type RefreshMode string

const (
	// RefreshNone skips content refresh entirely. Used while the card is
	// editable and holds focus.
	RefreshNone RefreshMode = "none"
	// RefreshIfChanged re-renders read-only content only when the stored
	// content differs from the last render.
	RefreshIfChanged RefreshMode = "if-changed"
	// RefreshInPlace replaces editable unfocused content while recovering
	// the cursor from textual context.
	RefreshInPlace RefreshMode = "in-place"
)

// refreshFor derives the refresh directive from a kept card's state.
func refreshFor(st RenderState) RefreshMode {
	switch {
	case st.Mode.Editable() && st.HasFocus:
		return RefreshNone
	case st.Mode.Editable():
		return RefreshInPlace
	default:
		return RefreshIfChanged
	}
}

// Item is one slot of the merged sequence handed to a pass: a period key
// plus whether the slot is a synthetic placeholder.
type Item struct {
	Key       period.Key
	Synthetic bool
}

// Op is a structural edit operation.
type Op string

const (
	OpCreate Op = "create"
	OpRemove Op = "remove"
	OpKeep   Op = "keep"
	OpMove   Op = "move"
)

// Step is one instruction of an edit script. Index is the target position
// in the card list at the moment the step applies: creates insert there,
// moves re-insert there after detaching, keeps record the final position.
type Step struct {
	Op        Op
	Key       period.Key
	Index     int
	Synthetic bool
	State     RenderState
	Refresh   RefreshMode
}

// Script is the ordered outcome of one reconciliation pass. Deferred lists
// keys whose removal or remount was suppressed because they hold focus;
// they are re-evaluated on the next pass.
type Script struct {
	Steps    []Step
	Deferred []period.Key
}
