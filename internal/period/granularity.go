// Package period implements calendar arithmetic over the five nested
// period granularities: year, quarter, month, ISO week, and day.
package period

import "errors"

// ErrInvalidGranularity is returned when parsing an unknown granularity name.
var ErrInvalidGranularity = errors.New("granularity must be one of: daily, weekly, monthly, quarterly, yearly")

// Granularity identifies one of the five period types.
type Granularity string

const (
	Daily     Granularity = "daily"
	Weekly    Granularity = "weekly"
	Monthly   Granularity = "monthly"
	Quarterly Granularity = "quarterly"
	Yearly    Granularity = "yearly"
)

// All returns every granularity ordered from most to least specific.
func All() []Granularity {
	return []Granularity{Daily, Weekly, Monthly, Quarterly, Yearly}
}

// Parse converts a granularity name into a Granularity.
func Parse(s string) (Granularity, error) {
	g := Granularity(s)
	if !g.Valid() {
		return "", ErrInvalidGranularity
	}
	return g, nil
}

// Valid returns true if the granularity is a known value.
func (g Granularity) Valid() bool {
	switch g {
	case Daily, Weekly, Monthly, Quarterly, Yearly:
		return true
	default:
		return false
	}
}

// specificity orders granularities: higher means a shorter span.
func (g Granularity) specificity() int {
	switch g {
	case Yearly:
		return 0
	case Quarterly:
		return 1
	case Monthly:
		return 2
	case Weekly:
		return 3
	case Daily:
		return 4
	default:
		return -1
	}
}

// MoreSpecificThan reports whether g spans a shorter period than other.
func (g Granularity) MoreSpecificThan(other Granularity) bool {
	return g.specificity() > other.specificity()
}

// Ancestors returns the granularities spanning longer periods than g,
// ordered from most specific (nearest parent) to least.
func (g Granularity) Ancestors() []Granularity {
	var out []Granularity
	for _, a := range []Granularity{Weekly, Monthly, Quarterly, Yearly} {
		if g.MoreSpecificThan(a) {
			out = append(out, a)
		}
	}
	return out
}

// Title returns a capitalized display name, e.g. "Weekly".
func (g Granularity) Title() string {
	switch g {
	case Daily:
		return "Daily"
	case Weekly:
		return "Weekly"
	case Monthly:
		return "Monthly"
	case Quarterly:
		return "Quarterly"
	case Yearly:
		return "Yearly"
	default:
		return string(g)
	}
}
