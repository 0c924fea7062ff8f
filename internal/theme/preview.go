package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Preview renders t as a terminal swatch card: one colored block per palette
// entry followed by the font, layout and animation values.
func Preview(t Theme) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Colors.Text)).
		Background(lipgloss.Color(t.Colors.Background)).
		Padding(0, 1)
	label := lipgloss.NewStyle().Width(22).Foreground(lipgloss.Color("249"))
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))

	var rows []string
	rows = append(rows, title.Render(t.Name+" ("+string(t.ID)+")"), "")
	for _, v := range Variables(t) {
		line := label.Render(v.Name)
		if strings.HasPrefix(v.Name, "color-") {
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(v.Value)).Render("    ")
			line += swatch + " "
		}
		rows = append(rows, line+value.Render(v.Value))
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Colors.Primary)).
		Padding(0, 1)
	return card.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
