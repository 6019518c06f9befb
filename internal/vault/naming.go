package vault

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"almanac/internal/period"
)

// ErrInvalidPattern is returned when a naming pattern cannot be compiled.
var ErrInvalidPattern = errors.New("vault: invalid naming pattern")

// Pattern tokens. YYYY is the calendar year, except in weekly patterns
// where it is the ISO week-year so that filenames agree with week labels
// across the year boundary.
type patternToken int

const (
	tokNone patternToken = iota
	tokYear              // YYYY
	tokMonth             // MM
	tokDay               // DD
	tokWeek              // WW
	tokQuarter           // Q
)

func (t patternToken) String() string {
	switch t {
	case tokYear:
		return "YYYY"
	case tokMonth:
		return "MM"
	case tokDay:
		return "DD"
	case tokWeek:
		return "WW"
	case tokQuarter:
		return "Q"
	}
	return ""
}

func (t patternToken) width() int {
	switch t {
	case tokYear:
		return 4
	case tokMonth, tokDay, tokWeek:
		return 2
	case tokQuarter:
		return 1
	}
	return 0
}

type patternSegment struct {
	literal string
	token   patternToken
}

// Pattern is a compiled filename pattern for one granularity. Format and
// Parse are inverses: Parse(Format(k)) yields k for every key of the
// pattern's granularity.
type Pattern struct {
	raw  string
	g    period.Granularity
	segs []patternSegment
}

// CompilePattern compiles a naming pattern such as "YYYY-MM-DD" or
// "YYYY-[W]WW". Square brackets escape literal text. The pattern must
// contain exactly the tokens that identify a period of the given
// granularity: YYYY MM DD for daily, YYYY WW for weekly, YYYY MM for
// monthly, YYYY Q for quarterly, and YYYY for yearly.
func CompilePattern(raw string, g period.Granularity) (*Pattern, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %v", period.ErrInvalidGranularity, g)
	}
	segs, err := compileSegments(raw)
	if err != nil {
		return nil, err
	}

	seen := map[patternToken]bool{}
	for _, seg := range segs {
		if seg.token == tokNone {
			continue
		}
		if seen[seg.token] {
			return nil, fmt.Errorf("%w: duplicate token %s in %q", ErrInvalidPattern, seg.token, raw)
		}
		seen[seg.token] = true
	}

	required := requiredTokens(g)
	for _, tok := range required {
		if !seen[tok] {
			return nil, fmt.Errorf("%w: %s pattern %q is missing %s", ErrInvalidPattern, g, raw, tok)
		}
	}
	if len(seen) != len(required) {
		for tok := range seen {
			if !slices.Contains(required, tok) {
				return nil, fmt.Errorf("%w: token %s does not apply to %s pattern %q", ErrInvalidPattern, tok, g, raw)
			}
		}
	}

	return &Pattern{raw: raw, g: g, segs: segs}, nil
}

func (p *Pattern) String() string {
	return p.raw
}

// Granularity returns the granularity this pattern names.
func (p *Pattern) Granularity() period.Granularity {
	return p.g
}

// Format renders the filename (without extension) for a key.
func (p *Pattern) Format(k period.Key) string {
	return formatSegments(p.segs, k, p.g)
}

// Parse maps a filename (without extension) back to a key. The second
// return is false when the name does not match the pattern or names an
// impossible date, which callers treat as a file to skip.
func (p *Pattern) Parse(name string) (period.Key, bool) {
	fields := map[patternToken]int{}
	pos := 0
	for _, seg := range p.segs {
		if seg.token == tokNone {
			if !strings.HasPrefix(name[pos:], seg.literal) {
				return 0, false
			}
			pos += len(seg.literal)
			continue
		}
		w := seg.token.width()
		if pos+w > len(name) || !allDigits(name[pos:pos+w]) {
			return 0, false
		}
		n, _ := strconv.Atoi(name[pos : pos+w])
		fields[seg.token] = n
		pos += w
	}
	if pos != len(name) {
		return 0, false
	}
	return keyFromFields(fields, p.g)
}

func compileSegments(raw string) ([]patternSegment, error) {
	var segs []patternSegment
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, patternSegment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(raw); {
		if raw[i] == '[' {
			end := strings.IndexByte(raw[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated [ in %q", ErrInvalidPattern, raw)
			}
			lit.WriteString(raw[i+1 : i+end])
			i += end + 1
			continue
		}
		if tok, n := matchToken(raw[i:]); tok != tokNone {
			flush()
			segs = append(segs, patternSegment{token: tok})
			i += n
			continue
		}
		lit.WriteByte(raw[i])
		i++
	}
	flush()
	return segs, nil
}

func matchToken(s string) (patternToken, int) {
	switch {
	case strings.HasPrefix(s, "YYYY"):
		return tokYear, 4
	case strings.HasPrefix(s, "MM"):
		return tokMonth, 2
	case strings.HasPrefix(s, "DD"):
		return tokDay, 2
	case strings.HasPrefix(s, "WW"):
		return tokWeek, 2
	case strings.HasPrefix(s, "Q"):
		return tokQuarter, 1
	}
	return tokNone, 0
}

func formatSegments(segs []patternSegment, k period.Key, g period.Granularity) string {
	t := k.Time()
	year, month, day := t.Date()
	weekYear, week := t.ISOWeek()
	quarter := (int(month)-1)/3 + 1

	var b strings.Builder
	for _, seg := range segs {
		switch seg.token {
		case tokNone:
			b.WriteString(seg.literal)
		case tokYear:
			if g == period.Weekly {
				fmt.Fprintf(&b, "%04d", weekYear)
			} else {
				fmt.Fprintf(&b, "%04d", year)
			}
		case tokMonth:
			fmt.Fprintf(&b, "%02d", int(month))
		case tokDay:
			fmt.Fprintf(&b, "%02d", day)
		case tokWeek:
			fmt.Fprintf(&b, "%02d", week)
		case tokQuarter:
			fmt.Fprintf(&b, "%d", quarter)
		}
	}
	return b.String()
}

func keyFromFields(fields map[patternToken]int, g period.Granularity) (period.Key, bool) {
	year := fields[tokYear]
	switch g {
	case period.Daily:
		m, d := fields[tokMonth], fields[tokDay]
		if m < 1 || m > 12 {
			return 0, false
		}
		t := time.Date(year, time.Month(m), d, 0, 0, 0, 0, time.UTC)
		if t.Year() != year || int(t.Month()) != m || t.Day() != d {
			return 0, false
		}
		return period.KeyOf(t, g), true
	case period.Weekly:
		w := fields[tokWeek]
		if w < 1 || w > 53 {
			return 0, false
		}
		start := period.ISOWeekStart(year, w)
		if wy, ww := start.ISOWeek(); wy != year || ww != w {
			return 0, false
		}
		return period.KeyOf(start, g), true
	case period.Monthly:
		m := fields[tokMonth]
		if m < 1 || m > 12 {
			return 0, false
		}
		return period.KeyOf(time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC), g), true
	case period.Quarterly:
		q := fields[tokQuarter]
		if q < 1 || q > 4 {
			return 0, false
		}
		return period.KeyOf(time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC), g), true
	case period.Yearly:
		return period.KeyOf(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), g), true
	}
	return 0, false
}

func requiredTokens(g period.Granularity) []patternToken {
	switch g {
	case period.Daily:
		return []patternToken{tokYear, tokMonth, tokDay}
	case period.Weekly:
		return []patternToken{tokYear, tokWeek}
	case period.Monthly:
		return []patternToken{tokYear, tokMonth}
	case period.Quarterly:
		return []patternToken{tokYear, tokQuarter}
	case period.Yearly:
		return []patternToken{tokYear}
	}
	return nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
