package types

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntype/internal/diagnosis"
	"github.com/abhisek/learntype/internal/screen"
	"github.com/abhisek/learntype/internal/ui/components"
	"github.com/abhisek/learntype/internal/ui/layout"
	"github.com/abhisek/learntype/internal/ui/theme"
)

// TypeDetailScreen shows everything the catalog knows about one type.
type TypeDetailScreen struct {
	t diagnosis.Type
}

var _ screen.Screen = (*TypeDetailScreen)(nil)
var _ screen.KeyHintProvider = (*TypeDetailScreen)(nil)

func newTypeDetail(t diagnosis.Type) *TypeDetailScreen {
	return &TypeDetailScreen{t: t}
}

func (d *TypeDetailScreen) Init() tea.Cmd { return nil }
func (d *TypeDetailScreen) Title() string { return d.t.DisplayName }

func (d *TypeDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return d, nil
}

func (d *TypeDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *TypeDetailScreen) View(width, height int) string {
	t := d.t
	cw := min(layout.ContentWidth(width), 70)
	accent := theme.TypeColor(t.ID)

	var b strings.Builder

	b.WriteString(components.Badge(strings.ToUpper(t.DisplayName), accent))
	b.WriteString("  ")
	b.WriteString(theme.Hint.Render(t.ScientificName))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(t.Description))
	b.WriteString("\n\n")

	heading := lipgloss.NewStyle().Foreground(accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	val := lipgloss.NewStyle().Foreground(theme.Text)

	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString(heading.Render(title))
		b.WriteString("\n")
		for _, it := range items {
			b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render("  • " + it))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	list("Characteristics", t.Characteristics)
	list("Strengths", t.Strengths)
	list("Watch out for", t.Weaknesses)
	list("Try this", t.Strategies)

	b.WriteString(heading.Render("Coaching"))
	b.WriteString("\n")
	b.WriteString(dim.Render("  Motivation:  ") + val.Render(string(t.Coaching.MotivationApproach)) + "\n")
	b.WriteString(dim.Render("  Style:       ") + val.Render(string(t.Coaching.LearningStyle)) + "\n")
	b.WriteString(dim.Render("  Talk:        ") + val.Render(t.Coaching.CommunicationStyle) + "\n")
	b.WriteString("\n")

	b.WriteString(heading.Render("Scoring"))
	b.WriteString("\n")
	b.WriteString(dim.Render("  " + formatMultipliers(t.Multipliers())))
	b.WriteString("\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, "\n"+b.String())
}

// formatMultipliers renders dimension multipliers sorted by weight.
func formatMultipliers(m map[string]float64) string {
	dims := make([]string, 0, len(m))
	for dim := range m {
		dims = append(dims, dim)
	}
	sort.Slice(dims, func(i, j int) bool {
		if m[dims[i]] != m[dims[j]] {
			return m[dims[i]] > m[dims[j]]
		}
		return dims[i] < dims[j]
	})
	parts := make([]string, 0, len(dims))
	for _, dim := range dims {
		parts = append(parts, fmt.Sprintf("%s ×%.1f", dim, m[dim]))
	}
	return strings.Join(parts, ", ")
}
