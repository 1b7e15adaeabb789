// Package history lists a user's past results.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntype/internal/journal"
	"github.com/abhisek/learntype/internal/router"
	"github.com/abhisek/learntype/internal/screen"
	"github.com/abhisek/learntype/internal/screens/result"
	"github.com/abhisek/learntype/internal/ui/layout"
	"github.com/abhisek/learntype/internal/ui/theme"
)

const historyLimit = 20

type historyLoadedMsg struct {
	Entries []journal.Entry
	Err     error
}

// HistoryScreen displays past results for one nickname.
type HistoryScreen struct {
	svc      screen.Services
	userID   string
	entries  []journal.Entry
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen for userID.
func New(svc screen.Services, userID string) *HistoryScreen {
	return &HistoryScreen{svc: svc, userID: userID}
}

func (s *HistoryScreen) Init() tea.Cmd {
	j, user := s.svc.Journal, s.userID
	return func() tea.Msg {
		if j == nil {
			return historyLoadedMsg{Err: journal.ErrNoStore}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entries, err := j.History(ctx, user, historyLimit)
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		switch {
		case errors.Is(msg.Err, journal.ErrNoStore):
			s.errMsg = "History is not stored in this mode."
		case msg.Err != nil:
			s.errMsg = msg.Err.Error()
		default:
			s.entries = msg.Entries
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.entries) {
				next := result.New(s.svc, s.entries[s.selected].Result)
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.entries) == 0 {
		who := "you"
		if s.userID != "" {
			who = s.userID
		}
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render(fmt.Sprintf("\n\n  No results for %s yet. Take the quiz!", who))
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, e := range s.entries {
		res := e.Result
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		date := res.CompletedAt.Local().Format("Jan 02, 2006 15:04")
		name := lipgloss.NewStyle().Foreground(theme.TypeColor(res.Primary)).Bold(true).
			Render(fmt.Sprintf("%-11s", res.PrimaryName))
		secondary := ""
		if res.HasSecondary() {
			secondary = "  + " + res.SecondaryName
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := style.Render(prefix+date+"  ") + name +
			style.Render(fmt.Sprintf("  %3d%% confidence  %d answers%s", res.Confidence, res.AnsweredCount, secondary))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	return b.String()
}
