package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"almanac/internal/dateutil"
	"almanac/internal/note"
	"almanac/internal/period"
	"almanac/internal/vault"
)

func (a *App) listCmd() *cobra.Command {
	var (
		granularity string
		startDate   string
		endDate     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List period notes in a date range",
		Long: `List every period of one granularity within a date range, showing
which periods have a note and which of those are reviewed.

If no dates are specified, lists the period holding today.
If only --start is specified, lists the periods overlapping that single day.
If both --start and --end are specified, lists periods in that range (inclusive).`,
		Example: `  almanac list
  almanac list -g weekly
  almanac list --start=2026-01-01 --end=2026-03-31
  almanac list -g monthly --start=2026-01-01 --end=2026-12-31`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.granularityFlag(granularity)
			if err != nil {
				return err
			}

			dateRange, err := dateutil.NewDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			store, profiles, err := a.openStore()
			if err != nil {
				return err
			}

			notes, err := store.Scan(cmd.Context(), profiles[g])
			if err != nil {
				return fmt.Errorf("scanning vault: %w", err)
			}

			entries := rangeTimeline(notes, dateRange.Start, dateRange.End, g, note.Order(a.config.View.SortOrder))
			if len(entries) == 0 {
				fmt.Println("No periods found in the specified date range.")
				return nil
			}

			rows, counts := listRows(cmd.Context(), store, entries, g, a.config.Completion.Marker)

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = uint(termWidth())
			tbl.AddRow(formatHeader("Period"), formatHeader("Status"), formatHeader("Note"))
			for _, r := range rows {
				tbl.AddRow(r.period, r.status, r.path)
			}
			_, _ = fmt.Fprintln(color.Output, tbl)

			fmt.Println(formatMuted(fmt.Sprintf("%d periods, %d written, %d reviewed",
				len(entries), counts.written, counts.reviewed)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&granularity, "granularity", "g", "", "Granularity to list (daily, weekly, monthly, quarterly, yearly)")
	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")

	return cmd
}

// rangeTimeline merges the scanned notes with placeholders for every period
// overlapping [start, end], keeping only periods inside the range.
func rangeTimeline(notes []*note.Note, start, end time.Time, g period.Granularity, order note.Order) []note.Entry {
	inRange := make(map[period.Key]bool)
	var missing []period.Key
	for _, t := range period.Range(start, end, g) {
		k := period.KeyOf(t, g)
		inRange[k] = true
		missing = append(missing, k)
	}

	var present []*note.Note
	for _, n := range notes {
		if inRange[n.Key] {
			present = append(present, n)
		}
	}

	if !order.Valid() {
		order = note.Descending
	}
	return note.Merge(present, missing, order)
}

type listRow struct {
	period string
	status string
	path   string
}

type listCounts struct {
	written  int
	reviewed int
}

// listRows reads each real note to resolve its review state and renders one
// colored row per entry. Unreadable notes degrade to unreviewed rather than
// aborting the listing.
func listRows(ctx context.Context, store *vault.Store, entries []note.Entry, g period.Granularity, marker string) ([]listRow, listCounts) {
	rows := make([]listRow, 0, len(entries))
	var counts listCounts
	for _, e := range entries {
		r := listRow{period: e.Key.Label(g)}

		switch {
		case e.Synthetic():
			r.period = formatMissing(r.period)
			r.status = formatMissing("· missing")
			r.path = formatMissing("-")
		default:
			counts.written++
			content, err := store.Read(ctx, e.Note.Path)
			if err == nil && note.IsComplete(content, marker) {
				counts.reviewed++
				r.status = formatReviewed("✓ reviewed")
			} else {
				r.status = formatWritten("○ written")
			}
			r.path = e.Note.Path
		}
		rows = append(rows, r)
	}
	return rows, counts
}
