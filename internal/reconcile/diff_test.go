package reconcile

import (
	"testing"
	"time"

	"almanac/internal/period"
)

func monthKey(y int, m time.Month) period.Key {
	return period.KeyOf(time.Date(y, m, 1, 0, 0, 0, 0, time.UTC), period.Monthly)
}

func realSeq(keys ...period.Key) []Item {
	items := make([]Item, 0, len(keys))
	for _, k := range keys {
		items = append(items, Item{Key: k})
	}
	return items
}

func stepsByOp(s Script, op Op) []Step {
	var out []Step
	for _, st := range s.Steps {
		if st.Op == op {
			out = append(out, st)
		}
	}
	return out
}

func stepFor(s Script, k period.Key) (Step, bool) {
	for _, st := range s.Steps {
		if st.Key == k {
			return st, true
		}
	}
	return Step{}, false
}

func assertOrder(t *testing.T, r *Reconciler, want []period.Key) {
	t.Helper()
	got := r.Order()
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestReconcileFirstPass(t *testing.T) {
	a, b := monthKey(2024, 1), monthKey(2024, 2)

	r := New(Options{})
	script := r.Reconcile(realSeq(a, b))

	creates := stepsByOp(script, OpCreate)
	if len(creates) != 2 {
		t.Fatalf("got %d creates, want 2", len(creates))
	}
	for _, st := range creates {
		if st.State.Expanded || st.State.Mode != ModeView || st.State.HasFocus {
			t.Errorf("create %s state = %+v, want collapsed view unfocused", st.Key, st.State)
		}
	}
	assertOrder(t, r, []period.Key{a, b})
}

func TestReconcileExpandFirst(t *testing.T) {
	a, b := monthKey(2024, 2), monthKey(2024, 1)

	r := New(Options{ExpandFirst: true})
	script := r.Reconcile(realSeq(a, b))

	first, ok := stepFor(script, a)
	if !ok || !first.State.Expanded {
		t.Error("first item was not force-expanded")
	}
	second, _ := stepFor(script, b)
	if second.State.Expanded {
		t.Error("second item was expanded, want collapsed")
	}
}

func TestReconcileFocusedSurvivesReorder(t *testing.T) {
	a, b, c, d := monthKey(2024, 1), monthKey(2024, 2), monthKey(2024, 3), monthKey(2024, 4)

	r := New(Options{})
	r.Reconcile(realSeq(a, b, c))
	r.SetMode(a, ModeEditSource)
	r.SetFocus(a)

	script := r.Reconcile(realSeq(b, a, d))

	// The focused card's element must come through untouched: a keep, not
	// a move, remove, or create.
	st, ok := stepFor(script, a)
	if !ok || st.Op != OpKeep {
		t.Fatalf("focused key step = %+v, want keep", st)
	}
	if st.Refresh != RefreshNone {
		t.Errorf("focused editable refresh = %s, want %s", st.Refresh, RefreshNone)
	}

	removes := stepsByOp(script, OpRemove)
	if len(removes) != 1 || removes[0].Key != c {
		t.Fatalf("removes = %v, want only %s", removes, c)
	}

	creates := stepsByOp(script, OpCreate)
	if len(creates) != 1 || creates[0].Key != d {
		t.Fatalf("creates = %v, want only %s", creates, d)
	}

	moves := stepsByOp(script, OpMove)
	if len(moves) != 1 || moves[0].Key != b {
		t.Fatalf("moves = %v, want only %s repositioned", moves, b)
	}
	if moves[0].Index != 0 {
		t.Errorf("move index = %d, want 0", moves[0].Index)
	}

	assertOrder(t, r, []period.Key{b, a, d})
}

func TestReconcileDeferredRemoval(t *testing.T) {
	a, b := monthKey(2024, 1), monthKey(2024, 2)

	r := New(Options{})
	r.Reconcile(realSeq(a, b))
	r.SetMode(a, ModeEditSource)
	r.SetFocus(a)

	script := r.Reconcile(realSeq(b))

	if len(stepsByOp(script, OpRemove)) != 0 {
		t.Fatal("focused key was removed, want deferred")
	}
	if len(script.Deferred) != 1 || script.Deferred[0] != a {
		t.Fatalf("deferred = %v, want [%s]", script.Deferred, a)
	}
	if _, mounted := r.State(a); !mounted {
		t.Fatal("focused key unmounted during deferral")
	}

	// Once focus is released the next pass completes the removal.
	r.ReleaseFocus()
	script = r.Reconcile(realSeq(b))

	removes := stepsByOp(script, OpRemove)
	if len(removes) != 1 || removes[0].Key != a {
		t.Fatalf("removes = %v, want [%s]", removes, a)
	}
	if len(script.Deferred) != 0 {
		t.Errorf("deferred = %v, want empty", script.Deferred)
	}
	assertOrder(t, r, []period.Key{b})
}

func TestReconcileSyntheticRegenerated(t *testing.T) {
	a, b := monthKey(2024, 1), monthKey(2024, 2)
	seq := []Item{{Key: a}, {Key: b, Synthetic: true}}

	r := New(Options{})
	r.Reconcile(seq)
	r.SetExpanded(b, true)

	script := r.Reconcile(seq)

	// The placeholder has no cross-pass identity: old element out, fresh
	// one in, prior state dropped.
	removes := stepsByOp(script, OpRemove)
	if len(removes) != 1 || removes[0].Key != b {
		t.Fatalf("removes = %v, want [%s]", removes, b)
	}
	creates := stepsByOp(script, OpCreate)
	if len(creates) != 1 || creates[0].Key != b || !creates[0].Synthetic {
		t.Fatalf("creates = %v, want fresh synthetic %s", creates, b)
	}
	if st, _ := r.State(b); st.Expanded {
		t.Error("placeholder state survived regeneration")
	}
	if ks, _ := stepFor(script, a); ks.Op != OpKeep {
		t.Errorf("real entry step = %+v, want keep", ks)
	}
}

func TestReconcileIdentityFlips(t *testing.T) {
	a := monthKey(2024, 1)

	t.Run("real to synthetic remounts", func(t *testing.T) {
		r := New(Options{})
		r.Reconcile(realSeq(a))

		script := r.Reconcile([]Item{{Key: a, Synthetic: true}})

		if len(stepsByOp(script, OpRemove)) != 1 || len(stepsByOp(script, OpCreate)) != 1 {
			t.Fatalf("steps = %v, want remove and create", script.Steps)
		}
		if !r.Synthetic(a) {
			t.Error("card still real after remount")
		}
	})

	t.Run("synthetic to real remounts", func(t *testing.T) {
		r := New(Options{})
		r.Reconcile([]Item{{Key: a, Synthetic: true}})

		script := r.Reconcile(realSeq(a))

		creates := stepsByOp(script, OpCreate)
		if len(creates) != 1 || creates[0].Synthetic {
			t.Fatalf("creates = %v, want one real", creates)
		}
		if r.Synthetic(a) {
			t.Error("card still synthetic after remount")
		}
	})

	t.Run("focused real to synthetic is deferred", func(t *testing.T) {
		r := New(Options{})
		r.Reconcile(realSeq(a))
		r.SetMode(a, ModeEditSource)
		r.SetFocus(a)

		script := r.Reconcile([]Item{{Key: a, Synthetic: true}})

		if len(stepsByOp(script, OpRemove)) != 0 || len(stepsByOp(script, OpCreate)) != 0 {
			t.Fatalf("steps = %v, want no structural change", script.Steps)
		}
		if len(script.Deferred) != 1 || script.Deferred[0] != a {
			t.Fatalf("deferred = %v, want [%s]", script.Deferred, a)
		}
		if r.Synthetic(a) {
			t.Error("focused card flipped to synthetic mid-edit")
		}
	})
}

func TestReconcileRefreshDirectives(t *testing.T) {
	a, b, c := monthKey(2024, 1), monthKey(2024, 2), monthKey(2024, 3)

	r := New(Options{})
	r.Reconcile(realSeq(a, b, c))
	r.SetMode(b, ModeEditPreview)
	r.SetMode(c, ModeEditSource)
	r.SetFocus(c)

	script := r.Reconcile(realSeq(a, b, c))

	tests := []struct {
		key  period.Key
		want RefreshMode
	}{
		{a, RefreshIfChanged},
		{b, RefreshInPlace},
		{c, RefreshNone},
	}
	for _, tt := range tests {
		st, ok := stepFor(script, tt.key)
		if !ok || st.Op != OpKeep {
			t.Fatalf("step for %s = %+v, want keep", tt.key, st)
		}
		if st.Refresh != tt.want {
			t.Errorf("refresh for %s = %s, want %s", tt.key, st.Refresh, tt.want)
		}
	}
}

func TestReconcileStateCarriedForward(t *testing.T) {
	a := monthKey(2024, 1)

	r := New(Options{})
	r.Reconcile(realSeq(a))
	r.SetExpanded(a, true)
	r.SetMode(a, ModeEditPreview)

	script := r.Reconcile(realSeq(a))

	st, _ := stepFor(script, a)
	if !st.State.Expanded || st.State.Mode != ModeEditPreview {
		t.Errorf("carried state = %+v, want expanded edit-preview", st.State)
	}
}

func TestReconcileStableSequenceIsQuiet(t *testing.T) {
	seq := realSeq(monthKey(2024, 1), monthKey(2024, 2), monthKey(2024, 3))

	r := New(Options{})
	r.Reconcile(seq)
	script := r.Reconcile(seq)

	for _, st := range script.Steps {
		if st.Op != OpKeep {
			t.Errorf("unexpected %s of %s in a stable pass", st.Op, st.Key)
		}
	}
}

func TestReconcileMinimalMove(t *testing.T) {
	a, b, c := monthKey(2024, 1), monthKey(2024, 2), monthKey(2024, 3)

	r := New(Options{})
	r.Reconcile(realSeq(a, b, c))

	script := r.Reconcile(realSeq(a, c, b))

	moves := stepsByOp(script, OpMove)
	if len(moves) != 1 || moves[0].Key != b {
		t.Fatalf("moves = %v, want only %s", moves, b)
	}
	assertOrder(t, r, []period.Key{a, c, b})
}

func TestReconcileDuplicateKeysCollapse(t *testing.T) {
	a := monthKey(2024, 1)

	r := New(Options{})
	script := r.Reconcile([]Item{{Key: a}, {Key: a, Synthetic: true}})

	if len(stepsByOp(script, OpCreate)) != 1 {
		t.Fatalf("steps = %v, want a single create", script.Steps)
	}
	if r.Len() != 1 {
		t.Errorf("mounted %d cards, want 1", r.Len())
	}
	if r.Synthetic(a) {
		t.Error("first occurrence was real, mounted card is synthetic")
	}
}

func TestFocusExclusive(t *testing.T) {
	a, b := monthKey(2024, 1), monthKey(2024, 2)

	r := New(Options{})
	r.Reconcile(realSeq(a, b))
	r.SetFocus(a)
	r.SetFocus(b)

	if st, _ := r.State(a); st.HasFocus {
		t.Error("previous holder kept focus")
	}
	if st, _ := r.State(b); !st.HasFocus {
		t.Error("new holder did not gain focus")
	}
	if k, ok := r.Focused(); !ok || k != b {
		t.Errorf("Focused() = %s, %v; want %s", k, ok, b)
	}
}
