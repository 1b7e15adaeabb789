package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntype/internal/ui/theme"
)

// Frame wraps content in a rounded border that fills the given area,
// centering the content both ways.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a bordered card of content width cw.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(max(cw-2, 0)).
		Padding(1, 2).
		Render(content)
}

// Badge renders a short label on a colored background.
func Badge(label string, bg color.Color) string {
	return lipgloss.NewStyle().
		Foreground(theme.BgDark).
		Background(bg).
		Bold(true).
		Padding(0, 1).
		Render(label)
}

// Button renders a fixed-width button.
func Button(label string, selected, disabled bool, width int) string {
	switch {
	case disabled:
		return theme.ButtonInactive.Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Render(label)
	case selected:
		return theme.ButtonActive.Width(width).Align(lipgloss.Center).Render("▸ " + label)
	}
	return theme.ButtonInactive.Width(width).Align(lipgloss.Center).Render(label)
}
