package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"almanac/internal/config"
	"almanac/internal/period"
	"almanac/internal/tui"
	"almanac/internal/vault"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "almanac",
		Short: "A terminal review surface for periodic notes",
		Long: `Almanac keeps daily, weekly, monthly, quarterly and yearly notes
in a plain markdown vault and gives you one place to review them.

Running it without arguments opens the interactive timeline.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.config, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.createCmd())
	a.root.AddCommand(a.statsCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("almanac %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// openStore opens the vault and builds one profile per enabled
// granularity, creating the period folders as needed.
func (a *App) openStore() (*vault.Store, map[period.Granularity]*vault.Profile, error) {
	store, err := vault.Open(a.config.Vault.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening vault: %w", err)
	}

	profiles := make(map[period.Granularity]*vault.Profile)
	for _, g := range a.config.EnabledGranularities() {
		pc := a.config.Period(g)
		pr, err := vault.NewProfile(g, pc.Folder, pc.Pattern, pc.Template)
		if err != nil {
			return nil, nil, fmt.Errorf("profile for %s: %w", g, err)
		}
		if err := store.EnsureFolder(pc.Folder); err != nil {
			return nil, nil, fmt.Errorf("creating %s folder: %w", g, err)
		}
		profiles[g] = pr
	}
	return store, profiles, nil
}

// granularityFlag resolves the -g flag against the configured
// granularities, defaulting to the most specific enabled one.
func (a *App) granularityFlag(raw string) (period.Granularity, error) {
	enabled := a.config.EnabledGranularities()
	if len(enabled) == 0 {
		return "", fmt.Errorf("no granularities are enabled, check your config")
	}
	if raw == "" {
		return enabled[0], nil
	}
	g, err := period.Parse(raw)
	if err != nil {
		return "", err
	}
	if !a.config.Period(g).Enabled {
		return "", fmt.Errorf("%s notes are disabled, enable them in the config first", g)
	}
	return g, nil
}
