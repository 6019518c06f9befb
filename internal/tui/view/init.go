package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// InitModalModel contains the fields rendered in the first-run modal.
type InitModalModel struct {
	ConfigPath    string
	VaultPath     string
	ConfigMissing bool
	VaultMissing  bool
	ErrorMessage  string
}

// InitModalStyles groups the styles for the first-run modal body.
type InitModalStyles struct {
	BodyStyle  lipgloss.Style
	LabelStyle lipgloss.Style
	HintStyle  lipgloss.Style
}

// RenderInitBody renders the first-run confirmation body listing what will
// be created.
func RenderInitBody(model InitModalModel, styles InitModalStyles) string {
	var b strings.Builder
	b.WriteString(styles.BodyStyle.Render("Welcome. A couple of files are missing:"))
	b.WriteString("\n\n")
	if model.ConfigMissing {
		b.WriteString(styles.LabelStyle.Render("Config"))
		b.WriteString(styles.BodyStyle.Render(model.ConfigPath))
		b.WriteString("\n")
	}
	if model.VaultMissing {
		b.WriteString(styles.LabelStyle.Render("Vault"))
		b.WriteString(styles.BodyStyle.Render(model.VaultPath))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.HintStyle.Render("Enter creates them and opens the vault."))
	if model.ErrorMessage != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.BodyStyle.Render("Error: " + model.ErrorMessage))
	}
	return b.String()
}

// InitFooter renders the footer of the first-run modal.
func InitFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[Enter] Create", "[Esc] Quit")
}
