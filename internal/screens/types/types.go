// Package types lets the user browse the learning-type catalog.
package types

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/learntype/internal/diagnosis"
	"github.com/abhisek/learntype/internal/router"
	"github.com/abhisek/learntype/internal/screen"
	"github.com/abhisek/learntype/internal/ui/layout"
	"github.com/abhisek/learntype/internal/ui/theme"
)

// TypesScreen lists the learning types.
type TypesScreen struct {
	types  []diagnosis.Type
	cursor int
}

var _ screen.Screen = (*TypesScreen)(nil)
var _ screen.KeyHintProvider = (*TypesScreen)(nil)

// New creates a TypesScreen over catalog.
func New(catalog *diagnosis.Catalog) *TypesScreen {
	if catalog == nil {
		catalog = diagnosis.DefaultCatalog()
	}
	return &TypesScreen{types: catalog.Types()}
}

func (s *TypesScreen) Init() tea.Cmd {
	return nil
}

func (s *TypesScreen) Title() string {
	return "Learning Types"
}

func (s *TypesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TypesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.types)-1 {
				s.cursor++
			}
		case "enter":
			if len(s.types) == 0 {
				return s, nil
			}
			detail := newTypeDetail(s.types[s.cursor])
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *TypesScreen) View(width, height int) string {
	if len(s.types) == 0 {
		return ""
	}
	cw := layout.ContentWidth(width)

	var lines []string
	for i, t := range s.types {
		lines = append(lines, s.renderRow(t, i == s.cursor, cw))
	}
	list := strings.Join(lines, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, "\n"+list)
}

func (s *TypesScreen) renderRow(t diagnosis.Type, selected bool, cw int) string {
	marker := "  "
	nameStyle := lipgloss.NewStyle().Foreground(theme.TypeColor(t.ID)).Bold(true)
	if selected {
		marker = "▸ "
		nameStyle = nameStyle.Underline(true)
	}
	name := nameStyle.Render(fmt.Sprintf("%-12s", t.DisplayName))
	sci := theme.Hint.Render(t.ScientificName)

	desc := t.Description
	if room := cw - 4; room > 3 {
		desc = ansi.Truncate(desc, room, "...")
	}
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if selected {
		descStyle = descStyle.Foreground(theme.Text)
	}

	return lipgloss.NewStyle().Width(cw).Render(
		marker + name + " " + sci + "\n    " + descStyle.Render(desc) + "\n")
}
