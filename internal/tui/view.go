package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModelView renders the TUI model's view as a string.
func ModelView(m model) string {
	switch m.ActiveView {
	case ViewQuitting:
		return "Goodbye!\n"
	case ViewWritten:
		return writtenView(m)
	default:
		return sectionListView(m)
	}
}

func sectionListView(m model) string {
	sectionList := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#555555")).
		Padding(0, 1).
		Render(m.list.View())

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	status := statusStyle.Render(wrapText(m.status, max(m.width-2, 20)))

	return lipgloss.JoinVertical(lipgloss.Left, sectionList, status)
}

func writtenView(m model) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	instructionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))

	body := wrapText(strings.Join(m.summary, "\n"), max(m.width-6, 20))
	return lipgloss.NewStyle().Padding(1).BorderStyle(lipgloss.DoubleBorder()).Render(
		headerStyle.Render("Edits applied") + "\n\n" + body + "\n\n" +
			instructionStyle.Render("Press any key to exit."),
	)
}
