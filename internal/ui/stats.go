package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"almanac/internal/dateutil"
	"almanac/internal/summary"
)

func (a *App) statsCmd() *cobra.Command {
	var since string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show review coverage per granularity",
		Long: `Show how many periods have a note and how many of those are marked
reviewed, for every enabled granularity.

The span runs from the earliest note (or --since) to the current period.`,
		Example: `  almanac stats
  almanac stats --since=2026-01-01`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts summary.BuildCoverageOptions
			opts.Marker = a.config.Completion.Marker
			if since != "" {
				t, err := dateutil.ParseDate(since)
				if err != nil {
					return err
				}
				opts.Since = t
			}

			store, profiles, err := a.openStore()
			if err != nil {
				return err
			}

			first := true
			for _, g := range a.config.EnabledGranularities() {
				cov, err := summary.BuildCoverage(cmd.Context(), store, profiles[g], opts)
				if err != nil {
					return fmt.Errorf("%s coverage: %w", g, err)
				}
				if !first {
					fmt.Println()
				}
				first = false
				printCoverage(cov)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Only count periods from this date (YYYY-MM-DD)")

	return cmd
}

const statsBarWidth = 20

func printCoverage(cov *summary.Coverage) {
	g := cov.Granularity
	fmt.Println(formatHeader(g.Title()))
	if cov.Periods == 0 {
		fmt.Println(formatMuted("  No periods tracked yet."))
		return
	}

	fmt.Println(formatMuted(fmt.Sprintf("  %s to %s, %d periods",
		cov.From.Label(g), cov.To.Label(g), cov.Periods)))
	fmt.Println(statsLine("Written", cov.PresentPct(), cov.Present, cov.Periods, formatWritten))
	fmt.Println(statsLine("Reviewed", cov.CompletePct(), cov.Complete, cov.Periods, formatReviewed))
}

// statsLine renders one labeled coverage bar, filled in proportion to pct.
func statsLine(label string, pct float64, n, total int, paint func(string) string) string {
	fill := int(pct/100*statsBarWidth + 0.5)
	if fill < 0 {
		fill = 0
	}
	if fill > statsBarWidth {
		fill = statsBarWidth
	}
	bar := paint(strings.Repeat("█", fill)) + formatMuted(strings.Repeat("░", statsBarWidth-fill))
	return fmt.Sprintf("  %-8s %s %3.0f%% (%d/%d)", label, bar, pct, n, total)
}
