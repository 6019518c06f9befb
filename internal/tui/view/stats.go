package view

import (
	"fmt"
	"strings"

	"almanac/internal/summary"
)

const coverageBarWidth = 20

// BuildCoverageLines builds the body of the review coverage modal, one
// section per tracked granularity.
func BuildCoverageLines(coverages []*summary.Coverage) []Line {
	if len(coverages) == 0 {
		return []Line{{Text: "No periods tracked yet."}}
	}

	lines := make([]Line, 0, len(coverages)*4+len(coverages))
	for i, cov := range coverages {
		if i > 0 {
			lines = append(lines, Line{Text: ""})
		}
		lines = append(lines, Line{Text: cov.Granularity.Title(), Kind: LineSection})
		span := fmt.Sprintf("%s to %s, %d periods",
			cov.From.Label(cov.Granularity), cov.To.Label(cov.Granularity), cov.Periods)
		lines = append(lines, Line{Text: span, Kind: LineMeta})
		lines = append(lines, coverageLine("Written", cov.Present, cov.Periods, cov.PresentPct()))
		lines = append(lines, coverageLine("Reviewed", cov.Complete, cov.Periods, cov.CompletePct()))
	}
	return lines
}

// StatsFooter renders the footer of the review coverage modal.
func StatsFooter(styles ModalStyles) string {
	return RenderModalButtonsCompact(styles, "[y] Copy", "[Esc] Close")
}

func coverageLine(label string, count, total int, pct float64) Line {
	text := fmt.Sprintf("%-8s %s %3.0f%% (%d/%d)", label, coverageBar(pct), pct, count, total)
	return Line{Text: text}
}

func coverageBar(pct float64) string {
	filled := int(pct/100*coverageBarWidth + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > coverageBarWidth {
		filled = coverageBarWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", coverageBarWidth-filled)
}
