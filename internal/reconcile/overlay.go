package reconcile

import (
	"time"

	"almanac/internal/period"
)

// DefaultOverlayTTL bounds how long an optimistic value shadows stored
// state before a reload may win again.
const DefaultOverlayTTL = 3 * time.Second

// Overlay holds short-lived optimistic completion values keyed by period.
// A value set right after a user toggle takes precedence over freshly
// reloaded state until it expires or is explicitly cleared, so a stale
// read cannot clobber a write that has not become visible yet.
type Overlay struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[period.Key]overlayEntry
}

type overlayEntry struct {
	complete bool
	expires  time.Time
}

// NewOverlay creates an overlay with the given TTL. Non-positive TTLs
// fall back to the default, a nil clock to time.Now.
func NewOverlay(ttl time.Duration, now func() time.Time) *Overlay {
	if ttl <= 0 {
		ttl = DefaultOverlayTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Overlay{
		ttl:     ttl,
		now:     now,
		entries: make(map[period.Key]overlayEntry),
	}
}

// Set records an optimistic completion value for a key.
func (o *Overlay) Set(k period.Key, complete bool) {
	o.entries[k] = overlayEntry{complete: complete, expires: o.now().Add(o.ttl)}
}

// Get returns the live optimistic value for a key. Expired entries are
// evicted on access.
func (o *Overlay) Get(k period.Key) (complete, ok bool) {
	e, ok := o.entries[k]
	if !ok {
		return false, false
	}
	if o.now().After(e.expires) {
		delete(o.entries, k)
		return false, false
	}
	return e.complete, true
}

// Apply resolves the displayed value for a key: the optimistic value when
// one is live, the stored value otherwise.
func (o *Overlay) Apply(k period.Key, stored bool) bool {
	if v, ok := o.Get(k); ok {
		return v
	}
	return stored
}

// Clear drops the optimistic value for a key so stored state shows
// through again, either because the backing write was confirmed or as a
// rollback after it failed.
func (o *Overlay) Clear(k period.Key) {
	delete(o.entries, k)
}

// Sweep evicts every expired entry.
func (o *Overlay) Sweep() {
	now := o.now()
	for k, e := range o.entries {
		if now.After(e.expires) {
			delete(o.entries, k)
		}
	}
}
