// Package result shows a diagnosis result and its coaching note.
package result

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntype/internal/coaching"
	"github.com/abhisek/learntype/internal/diagnosis"
	"github.com/abhisek/learntype/internal/router"
	"github.com/abhisek/learntype/internal/screen"
	"github.com/abhisek/learntype/internal/ui/components"
	"github.com/abhisek/learntype/internal/ui/layout"
	"github.com/abhisek/learntype/internal/ui/theme"
)

const (
	noteTimeout = 30 * time.Second
	topTraits   = 4
)

type noteLoadedMsg struct {
	Note *coaching.Note
	Err  error
}

// ResultScreen displays a diagnosis result.
type ResultScreen struct {
	svc     screen.Services
	result  *diagnosis.Result
	note    *coaching.Note
	noteErr error
	loading bool
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a result screen for res.
func New(svc screen.Services, res *diagnosis.Result) *ResultScreen {
	return &ResultScreen{svc: svc, result: res, loading: svc.Coach != nil && res != nil}
}

func (s *ResultScreen) Init() tea.Cmd {
	if !s.loading {
		return nil
	}
	coach, res := s.svc.Coach, s.result
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), noteTimeout)
		defer cancel()
		note, err := coach.Note(ctx, res)
		return noteLoadedMsg{Note: note, Err: err}
	}
}

func (s *ResultScreen) Title() string {
	return "Your Learning Type"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case noteLoadedMsg:
		s.loading = false
		s.note, s.noteErr = msg.Note, msg.Err
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	res := s.result
	if res == nil {
		return ""
	}
	cw := layout.ContentWidth(width)

	var b strings.Builder

	b.WriteString(theme.Subtitle.Width(cw).Render("You are"))
	b.WriteString("\n")
	badge := components.Badge(strings.ToUpper(res.PrimaryName), theme.TypeColor(res.Primary))
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center, badge))
	b.WriteString("\n")
	if res.HasSecondary() {
		sec := lipgloss.NewStyle().Foreground(theme.TypeColor(res.Secondary)).
			Render(fmt.Sprintf("with a touch of %s", res.SecondaryName))
		b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center, sec))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(cw).Render(res.Description))
	b.WriteString("\n\n")

	conf := components.NewProgressBar("Confidence", float64(res.Confidence)/100, true, cw)
	conf.Color = theme.TypeColor(res.Primary)
	b.WriteString(conf.View())
	b.WriteString("\n\n")

	b.WriteString(section("Strongest traits", cw))
	b.WriteString(renderTraits(res, cw))

	if t, ok := s.catalog().Type(res.Primary); ok {
		b.WriteString("\n")
		b.WriteString(section("How you learn best", cw))
		b.WriteString(theme.Body.Width(cw).Render(fmt.Sprintf("%s. Motivation: %s. Style: %s.",
			t.Coaching.CommunicationStyle, t.Coaching.MotivationApproach, t.Coaching.LearningStyle)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(section("Coaching", cw))
	b.WriteString(s.renderNote(cw))

	return components.Frame(b.String(), width, height)
}

func (s *ResultScreen) catalog() *diagnosis.Catalog {
	if s.svc.Engine != nil {
		return s.svc.Engine.Catalog()
	}
	return diagnosis.DefaultCatalog()
}

func section(name string, cw int) string {
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(cw-lipgloss.Width(name)-1, 0)))
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(name) + " " + divider + "\n"
}

// renderTraits draws a bar per top positive trait, scaled to the highest.
func renderTraits(res *diagnosis.Result, cw int) string {
	top := res.TraitScores.Top(topTraits)
	if len(top) == 0 || top[0].Score <= 0 {
		return theme.Hint.Render("No strong traits yet.") + "\n"
	}
	highest := float64(top[0].Score)

	var b strings.Builder
	for _, e := range top {
		if e.Score <= 0 {
			break
		}
		label := fmt.Sprintf("%-22s", strings.ReplaceAll(e.Dimension, "_", " "))
		bar := components.NewProgressBar(label, float64(e.Score)/highest, false, cw-6)
		bar.Color = theme.TypeColor(res.Primary)
		b.WriteString(bar.View())
		b.WriteString(theme.Hint.Render(fmt.Sprintf(" %+d", e.Score)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *ResultScreen) renderNote(cw int) string {
	switch {
	case s.loading:
		return theme.Hint.Render("Writing your coaching note...")
	case s.noteErr != nil:
		return lipgloss.NewStyle().Foreground(theme.Error).Render("Could not load a coaching note.")
	case s.note == nil:
		return theme.Hint.Render("No coaching note available.")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(s.note.Headline))
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(cw).Render(s.note.Message))
	b.WriteString("\n")
	for _, step := range s.note.NextSteps {
		b.WriteString(theme.Body.Width(cw).Render("  • " + step))
		b.WriteString("\n")
	}
	return b.String()
}
