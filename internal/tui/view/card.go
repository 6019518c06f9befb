package view

import "github.com/charmbracelet/lipgloss"

// CardModel is one display-ready note card.
type CardModel struct {
	Frame     lipgloss.Style
	TitleLine string
	Body      string
}

// RenderCard renders a card box. Collapsed cards carry only the title line;
// expanded ones add the body under a blank separator.
func RenderCard(model CardModel) string {
	content := model.TitleLine
	if model.Body != "" {
		content += "\n\n" + model.Body
	}
	return model.Frame.Render(content)
}
