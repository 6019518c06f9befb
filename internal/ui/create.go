package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"almanac/internal/dateutil"
	"almanac/internal/period"
	"almanac/internal/vault"
)

func (a *App) createCmd() *cobra.Command {
	var granularity string

	cmd := &cobra.Command{
		Use:   "create [date]",
		Short: "Create a period note from its template",
		Long: `Create the note for one period, expanding the configured template.

The date argument accepts YYYY-MM-DD, relative words like today, yesterday
and tomorrow, and weekday names (friday means the most recent Friday).
Without an argument the note for the current period is created.`,
		Example: `  almanac create
  almanac create yesterday
  almanac create -g weekly
  almanac create -g monthly 2026-01-15`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.granularityFlag(granularity)
			if err != nil {
				return err
			}

			raw := ""
			if len(args) > 0 {
				raw = args[0]
			}
			when, err := dateutil.ParseRelativeDate(raw, time.Now())
			if err != nil {
				return err
			}

			store, profiles, err := a.openStore()
			if err != nil {
				return err
			}

			pr := profiles[g]
			k := period.KeyOf(when, g)
			path, err := store.CreateNote(cmd.Context(), pr, k)
			if errors.Is(err, vault.ErrExists) {
				fmt.Printf("Note for %s already exists: %s\n", k.Label(g), pr.NotePath(k))
				return nil
			}
			if err != nil {
				return fmt.Errorf("creating note: %w", err)
			}

			fmt.Printf("Created %s (%s)\n", path, k.Label(g))
			return nil
		},
	}

	cmd.Flags().StringVarP(&granularity, "granularity", "g", "", "Granularity to create (daily, weekly, monthly, quarterly, yearly)")

	return cmd
}
