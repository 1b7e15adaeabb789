// Package home is the main menu: nickname entry and navigation.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learntype/internal/router"
	"github.com/abhisek/learntype/internal/screen"
	"github.com/abhisek/learntype/internal/screens/history"
	"github.com/abhisek/learntype/internal/screens/quiz"
	"github.com/abhisek/learntype/internal/screens/types"
	"github.com/abhisek/learntype/internal/ui/components"
	"github.com/abhisek/learntype/internal/ui/layout"
)

const maxNickname = 32

// Menu labels.
const (
	LabelQuiz    = "TAKE THE QUIZ"
	LabelTypes   = "LEARNING TYPES"
	LabelHistory = "MY HISTORY"
	LabelQuit    = "QUIT"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	svc        screen.Services
	input      components.TextInput
	menu       components.Menu
	focusInput bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. The nickname field starts with nickname and
// has focus when it is empty.
func New(svc screen.Services, nickname string) *HomeScreen {
	h := &HomeScreen{
		svc:        svc,
		input:      components.NewTextInput("your nickname", maxNickname),
		focusInput: nickname == "",
	}
	h.input.SetValue(nickname)
	if !h.focusInput {
		h.input.Blur()
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: LabelQuiz, Action: func() tea.Cmd {
			return push(quiz.New(h.svc, h.Nickname()))
		}},
		{Label: LabelTypes, Action: func() tea.Cmd {
			return push(types.New(h.svc.Engine.Catalog()))
		}},
		{Label: LabelHistory, Action: func() tea.Cmd {
			return push(history.New(h.svc, h.Nickname()))
		}},
		{Label: LabelQuit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// Nickname returns the entered nickname.
func (h *HomeScreen) Nickname() string {
	return h.input.Value()
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.focusInput {
		return h.input.Init()
	}
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.focusInput {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Tab", Description: "Nickname"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if h.focusInput {
			switch kmsg.String() {
			case "enter", "tab", "down":
				h.focusInput = false
				h.input.Blur()
				return h, nil
			}
		} else if kmsg.String() == "tab" {
			h.focusInput = true
			return h, h.input.Focus()
		} else {
			var cmd tea.Cmd
			h.menu, cmd = h.menu.Update(msg)
			return h, cmd
		}
	}

	if h.focusInput {
		var cmd tea.Cmd
		h.input, cmd = h.input.Update(msg)
		return h, cmd
	}
	return h, nil
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := layout.ContentWidth(width)

	menu := h.menu.View()
	if compact {
		menu = h.menu.Compact()
	}

	sections := []string{
		renderTitle(cw, compact),
		renderNickname(h.input.View(), h.focusInput, cw),
		renderMenu(menu, cw),
	}
	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Frame(strings.Join(sections, sep), width, height)
}
