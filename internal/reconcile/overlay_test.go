package reconcile

import (
	"testing"
	"time"
)

func TestOverlay(t *testing.T) {
	k := monthKey(2024, 1)
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("live value shadows stored state", func(t *testing.T) {
		now := base
		o := NewOverlay(3*time.Second, func() time.Time { return now })

		o.Set(k, true)

		if got := o.Apply(k, false); !got {
			t.Error("overlay did not shadow stored false")
		}
	})

	t.Run("expired value gives way to stored state", func(t *testing.T) {
		now := base
		o := NewOverlay(3*time.Second, func() time.Time { return now })

		o.Set(k, true)
		now = now.Add(4 * time.Second)

		if got := o.Apply(k, false); got {
			t.Error("expired overlay still shadowed stored state")
		}
		if _, ok := o.Get(k); ok {
			t.Error("expired entry not evicted on access")
		}
	})

	t.Run("clear exposes stored state immediately", func(t *testing.T) {
		now := base
		o := NewOverlay(time.Minute, func() time.Time { return now })

		o.Set(k, true)
		o.Clear(k)

		if got := o.Apply(k, false); got {
			t.Error("cleared overlay still shadowed stored state")
		}
	})

	t.Run("missing key falls through", func(t *testing.T) {
		o := NewOverlay(0, nil)
		if got := o.Apply(k, true); !got {
			t.Error("Apply did not fall through to stored state")
		}
	})

	t.Run("sweep evicts only expired entries", func(t *testing.T) {
		now := base
		o := NewOverlay(3*time.Second, func() time.Time { return now })
		k2 := monthKey(2024, 2)

		o.Set(k, true)
		now = now.Add(2 * time.Second)
		o.Set(k2, false)
		now = now.Add(2 * time.Second)

		o.Sweep()

		if _, ok := o.Get(k); ok {
			t.Error("stale entry survived the sweep")
		}
		if v, ok := o.Get(k2); !ok || v {
			t.Error("fresh entry lost in the sweep")
		}
	})
}
