package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntype/internal/ui/theme"
)

// renderTitle returns the title block.
func renderTitle(cw int, compact bool) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("l e a r n t y p e")
	if compact {
		return lipgloss.PlaceHorizontal(cw, lipgloss.Center, title)
	}
	sub := theme.Subtitle.Render("Eight questions. Six ways to learn. Which one is yours?")
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(title + "\n\n" + sub)
}

// renderNickname renders the nickname field in a bordered box.
func renderNickname(input string, focused bool, cw int) string {
	border := theme.Border
	if focused {
		border = theme.Accent
	}
	label := theme.Hint.Render("Nickname (optional, used for your history)")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw-2).
		Padding(0, 1).
		Render(label + "\n" + input)
}

// renderMenu centers the menu block at content width.
func renderMenu(menu string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(menu)
}
