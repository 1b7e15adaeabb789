package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntype/internal/questionbank"
	"github.com/abhisek/learntype/internal/ui/components"
	"github.com/abhisek/learntype/internal/ui/layout"
	"github.com/abhisek/learntype/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	var body string
	switch {
	case s.errMsg != "":
		body = s.renderError(cw)
	case s.confirmQuit:
		body = s.renderConfirm(cw)
	default:
		body = s.renderQuestion(cw)
	}
	return components.Frame(body, width, height)
}

// renderQuestion renders the info line, the progress bar and the choices.
func (s *QuizScreen) renderQuestion(cw int) string {
	p := s.svc.Engine.Progress(s.sess)

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Question %d of %d", p.Answered+1, p.Total))
	infoLine := infoLeft
	if s.question.Kind == questionbank.KindFollowup {
		tag := theme.Hint.Render("follow-up")
		if pad := cw - lipgloss.Width(infoLeft) - lipgloss.Width(tag); pad > 0 {
			infoLine += strings.Repeat(" ", pad) + tag
		}
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("", float64(p.Percent)/100, true, cw)
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).Render(s.choice.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Press %s or use arrows + Enter", s.optionKeys())))

	return b.String()
}

func (s *QuizScreen) optionKeys() string {
	ids := make([]string, 0, len(s.question.Options))
	for _, o := range s.question.Options {
		ids = append(ids, o.ID)
	}
	return strings.Join(ids, "/")
}

func (s *QuizScreen) renderConfirm(cw int) string {
	title := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Quit the quiz?")
	body := theme.Body.Render(fmt.Sprintf("You have answered %d questions. Quitting discards this session.",
		s.sess.AnsweredCount()))
	hint := theme.Hint.Render("Y to quit · N to keep going")
	return components.Card(title+"\n\n"+body+"\n\n"+hint, min(cw, 56))
}

func (s *QuizScreen) renderError(cw int) string {
	title := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Something went wrong")
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(min(cw, 56) - 6).Render(s.errMsg)
	hint := theme.Hint.Render("Esc to go back")
	return components.Card(title+"\n\n"+body+"\n\n"+hint, min(cw, 56))
}
