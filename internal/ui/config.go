package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"almanac/internal/config"
	"almanac/internal/note"
	"almanac/internal/period"
	"almanac/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  almanac config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.Vault.Path = promptValue(reader, "Vault path", cfg.Vault.Path)
	for _, g := range period.All() {
		pc := periodRef(cfg, g)
		pc.Enabled = promptYesNoDefault(reader, fmt.Sprintf("Track %s notes?", g), pc.Enabled)
		if !pc.Enabled {
			continue
		}
		pc.Folder = promptValue(reader, fmt.Sprintf("  %s folder", g), pc.Folder)
		pc.Pattern = promptValue(reader, fmt.Sprintf("  %s filename pattern", g), pc.Pattern)
		pc.Template = promptValue(reader, fmt.Sprintf("  %s template (empty for none)", g), pc.Template)
	}
	cfg.View.SortOrder = promptOrder(reader, cfg.View.SortOrder)
	cfg.View.FutureHorizon = promptInt(reader, "Future periods to propose", cfg.View.FutureHorizon)
	cfg.Completion.Marker = promptValue(reader, "Review marker", cfg.Completion.Marker)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[vault]")
	fmt.Printf("  path           = %s\n", cfg.Vault.Path)
	for _, g := range period.All() {
		pc := cfg.Period(g)
		if !pc.Enabled {
			continue
		}
		fmt.Printf("\n[periods.%s]\n", g)
		fmt.Printf("  folder         = %s\n", pc.Folder)
		fmt.Printf("  pattern        = %s\n", pc.Pattern)
		if pc.Template != "" {
			fmt.Printf("  template       = %s\n", pc.Template)
		}
	}
	fmt.Println("\n[view]")
	fmt.Printf("  sort_order     = %s\n", cfg.View.SortOrder)
	fmt.Printf("  future_horizon = %d\n", cfg.View.FutureHorizon)
	fmt.Printf("  expand_first   = %t\n", cfg.View.ExpandFirst)
	fmt.Println("\n[completion]")
	fmt.Printf("  marker         = %s\n", cfg.Completion.Marker)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme          = %s\n", cfg.UI.Theme)
}

// periodRef returns a pointer to the per-granularity section so the editor
// can write through it.
func periodRef(cfg *config.Config, g period.Granularity) *config.PeriodConfig {
	switch g {
	case period.Weekly:
		return &cfg.Periods.Weekly
	case period.Monthly:
		return &cfg.Periods.Monthly
	case period.Quarterly:
		return &cfg.Periods.Quarterly
	case period.Yearly:
		return &cfg.Periods.Yearly
	default:
		return &cfg.Periods.Daily
	}
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

// promptYesNoDefault keeps the current value on an empty answer.
func promptYesNoDefault(reader *bufio.Reader, question string, current bool) bool {
	hint := "y/N"
	if current {
		hint = "Y/n"
	}
	fmt.Printf("  %s [%s]: ", question, hint)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return current
	}
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n >= 0 {
			return n
		}
		fmt.Printf("  Expected a non-negative number, got %q.\n", value)
	}
}

func promptOrder(reader *bufio.Reader, current string) string {
	for {
		value := strings.ToLower(promptValue(reader, "Sort order (asc, desc)", current))
		if note.Order(value).Valid() {
			return value
		}
		fmt.Printf("  Invalid order %q. Use asc or desc.\n", value)
	}
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
