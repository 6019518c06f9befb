package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"almanac/internal/config"
	"almanac/internal/period"
	"almanac/internal/tui/commands"
	"almanac/internal/vault"
)

// InitState tracks whether startup initialization is required.
type InitState struct {
	NeedsInit     bool
	ConfigMissing bool
	VaultMissing  bool
	ConfigPath    string
	VaultPath     string
}

// DetectInitState checks for a missing config file or vault directory.
func DetectInitState(cfg *config.Config) (InitState, error) {
	state := InitState{
		ConfigPath: config.DefaultConfigPath(),
		VaultPath:  cfg.Vault.Path,
	}

	configMissing, err := pathMissing(state.ConfigPath)
	if err != nil {
		return InitState{}, fmt.Errorf("checking config path: %w", err)
	}
	vaultMissing, err := pathMissing(state.VaultPath)
	if err != nil {
		return InitState{}, fmt.Errorf("checking vault path: %w", err)
	}

	state.ConfigMissing = configMissing
	state.VaultMissing = vaultMissing
	state.NeedsInit = configMissing || vaultMissing
	return state, nil
}

func pathMissing(path string) (bool, error) {
	if path == "" {
		return true, nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, err
}

// openVault opens the vault and builds one profile per enabled
// granularity, creating the period folders as needed.
func openVault(cfg *config.Config) (*vault.Store, map[period.Granularity]*vault.Profile, error) {
	store, err := vault.Open(cfg.Vault.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening vault: %w", err)
	}

	profiles := make(map[period.Granularity]*vault.Profile)
	for _, g := range cfg.EnabledGranularities() {
		pc := cfg.Period(g)
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

// handleInitKeys handles keys in the first-run modal.
func (m Model) handleInitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.completeInit()
	case "esc", "q":
		return m, tea.Quit
	}
	return m, nil
}

// completeInit writes the missing pieces and brings the vault up. Errors
// stay in the modal so the user can retry or quit.
func (m Model) completeInit() (tea.Model, tea.Cmd) {
	if m.initState.ConfigMissing {
		if err := m.config.SaveTo(m.initState.ConfigPath); err != nil {
			m.initError = err.Error()
			return m, nil
		}
	}

	store, profiles, err := openVault(m.config)
	if err != nil {
		m.initError = err.Error()
		return m, nil
	}
	m.store = store
	m.profiles = profiles

	// The watcher lives for the rest of the process; quitting tears it
	// down with everything else.
	events, err := store.Watch(context.Background())
	if err != nil {
		LogError("starting vault watcher", err)
	} else {
		m.events = events
	}

	m.initState = InitState{}
	m.initError = ""
	m.mode = ModeNormal
	m.modalType = ModalNone

	cmds := []tea.Cmd{m.loadTimeline(m.active)}
	if m.events != nil {
		cmds = append(cmds, commands.WaitForVault(m.events))
	}
	return m, tea.Batch(cmds...)
}
