package period

import "time"

// FindMissing returns the sorted period keys that have no backing record.
// The walk spans from the earliest existing key through the latest existing
// key, extended to now+horizon periods when horizon is positive, so the
// result holds interior gaps plus the current period and up to horizon
// future slots. Gaps before the earliest existing record are never
// reported. A horizon of zero disables current and future placeholders
// entirely; with no existing keys it yields nothing. Negative horizons are
// treated as zero. Keys are normalized defensively before matching, and
// now is a parameter so callers control the clock.
func FindMissing(existing []Key, g Granularity, horizon int, now time.Time) []Key {
	if horizon < 0 {
		horizon = 0
	}

	seen := make(map[Key]struct{}, len(existing))
	var lo, hi Key
	for _, k := range existing {
		nk := KeyOf(k.Time(), g)
		if _, ok := seen[nk]; ok {
			continue
		}
		if len(seen) == 0 {
			lo, hi = nk, nk
		} else {
			if nk < lo {
				lo = nk
			}
			if nk > hi {
				hi = nk
			}
		}
		seen[nk] = struct{}{}
	}

	if len(seen) == 0 {
		if horizon == 0 {
			return nil
		}
		lo = KeyOf(now, g)
		hi = lo
	}
	if horizon > 0 {
		if future := KeyOf(Add(now, g, horizon), g); future > hi {
			hi = future
		}
	}

	var missing []Key
	for cur := lo.Time(); ; cur = Add(cur, g, 1) {
		k := KeyOf(cur, g)
		if k > hi {
			break
		}
		if _, ok := seen[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}
