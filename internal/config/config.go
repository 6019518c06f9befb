// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"almanac/internal/period"
)

// Config holds the application configuration.
type Config struct {
	Vault      VaultConfig      `toml:"vault"`
	Periods    PeriodsConfig    `toml:"periods"`
	View       ViewConfig       `toml:"view"`
	Completion CompletionConfig `toml:"completion"`
	UI         UIConfig         `toml:"ui"`
}

// VaultConfig locates the note vault on disk.
type VaultConfig struct {
	Path string `toml:"path"`
}

// PeriodConfig holds the settings of one granularity.
type PeriodConfig struct {
	Enabled  bool   `toml:"enabled"`
	Folder   string `toml:"folder"`   // vault-relative folder for this granularity
	Pattern  string `toml:"pattern"`  // filename pattern, e.g. "YYYY-[W]WW"
	Template string `toml:"template"` // vault-relative template path, empty for none
}

// PeriodsConfig holds the per-granularity settings.
type PeriodsConfig struct {
	Daily     PeriodConfig `toml:"daily"`
	Weekly    PeriodConfig `toml:"weekly"`
	Monthly   PeriodConfig `toml:"monthly"`
	Quarterly PeriodConfig `toml:"quarterly"`
	Yearly    PeriodConfig `toml:"yearly"`
}

// ViewConfig holds timeline display settings.
type ViewConfig struct {
	SortOrder     string `toml:"sort_order"`     // "asc" or "desc"
	FutureHorizon int    `toml:"future_horizon"` // missing periods proposed beyond now; 0 disables
	ExpandFirst   bool   `toml:"expand_first"`   // auto-expand the first card
}

// CompletionConfig holds the review marker settings.
type CompletionConfig struct {
	Marker string `toml:"marker"` // task text marking a period as reviewed
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Vault: VaultConfig{
			Path: defaultVaultPath(),
		},
		Periods: PeriodsConfig{
			Daily:     PeriodConfig{Enabled: true, Folder: "daily", Pattern: "YYYY-MM-DD"},
			Weekly:    PeriodConfig{Enabled: true, Folder: "weekly", Pattern: "YYYY-[W]WW"},
			Monthly:   PeriodConfig{Enabled: true, Folder: "monthly", Pattern: "YYYY-MM"},
			Quarterly: PeriodConfig{Enabled: false, Folder: "quarterly", Pattern: "YYYY-[Q]Q"},
			Yearly:    PeriodConfig{Enabled: false, Folder: "yearly", Pattern: "YYYY"},
		},
		View: ViewConfig{
			SortOrder:     "desc",
			FutureHorizon: 1,
			ExpandFirst:   true,
		},
		Completion: CompletionConfig{
			Marker: "Reviewed",
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultVaultPath returns the default vault directory.
func defaultVaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "notes"
	}
	return filepath.Join(home, "notes")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "almanac", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Vault.Path = expandPath(cfg.Vault.Path)

	// A negative horizon is treated as "no future placeholders".
	if cfg.View.FutureHorizon < 0 {
		cfg.View.FutureHorizon = 0
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ALMANAC_VAULT"); v != "" {
		cfg.Vault.Path = v
	}
	if v := os.Getenv("ALMANAC_SORT_ORDER"); v != "" {
		cfg.View.SortOrder = v
	}
	if v := os.Getenv("ALMANAC_FUTURE_HORIZON"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.View.FutureHorizon = n
		}
	}
	if v := os.Getenv("ALMANAC_MARKER"); v != "" {
		cfg.Completion.Marker = v
	}
	if v := os.Getenv("ALMANAC_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Period returns the settings of one granularity.
func (c *Config) Period(g period.Granularity) PeriodConfig {
	switch g {
	case period.Daily:
		return c.Periods.Daily
	case period.Weekly:
		return c.Periods.Weekly
	case period.Monthly:
		return c.Periods.Monthly
	case period.Quarterly:
		return c.Periods.Quarterly
	case period.Yearly:
		return c.Periods.Yearly
	default:
		return PeriodConfig{}
	}
}

// Enabled returns the enabled flags keyed by granularity.
func (c *Config) Enabled() map[period.Granularity]bool {
	out := make(map[period.Granularity]bool, len(period.All()))
	for _, g := range period.All() {
		out[g] = c.Period(g).Enabled
	}
	return out
}

// EnabledGranularities returns the enabled granularities, most specific
// first.
func (c *Config) EnabledGranularities() []period.Granularity {
	var out []period.Granularity
	for _, g := range period.All() {
		if c.Period(g).Enabled {
			out = append(out, g)
		}
	}
	return out
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Vault.Path == "" {
		return errors.New("vault path must be set")
	}

	switch c.View.SortOrder {
	case "asc", "desc":
	default:
		return fmt.Errorf("sort_order must be \"asc\" or \"desc\", got %q", c.View.SortOrder)
	}

	if len(c.EnabledGranularities()) == 0 {
		return errors.New("at least one granularity must be enabled")
	}

	for _, g := range period.All() {
		pc := c.Period(g)
		if !pc.Enabled {
			continue
		}
		if pc.Folder == "" {
			return fmt.Errorf("%s: folder must be set", g)
		}
		if filepath.IsAbs(pc.Folder) {
			return fmt.Errorf("%s: folder must be vault-relative, got %q", g, pc.Folder)
		}
		if pc.Pattern == "" {
			return fmt.Errorf("%s: pattern must be set", g)
		}
	}

	if strings.TrimSpace(c.Completion.Marker) == "" {
		return errors.New("completion marker must be set")
	}

	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
