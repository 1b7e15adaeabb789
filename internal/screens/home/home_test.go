package home

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learntype/internal/questionbank"
	"github.com/abhisek/learntype/internal/router"
	"github.com/abhisek/learntype/internal/screen"
	"github.com/abhisek/learntype/internal/screens/history"
	"github.com/abhisek/learntype/internal/screens/quiz"
	"github.com/abhisek/learntype/internal/screens/types"
	"github.com/abhisek/learntype/internal/session"
)

func testServices() screen.Services {
	return screen.Services{Engine: session.NewEngine(questionbank.Default())}
}

func pushed(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	return msg.Screen
}

func TestHomeScreen_QuizUsesNickname(t *testing.T) {
	h := New(testServices(), "kid")
	if h.focusInput {
		t.Fatal("input should not have focus when a nickname is set")
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	q, ok := pushed(t, cmd).(*quiz.QuizScreen)
	if !ok {
		t.Fatal("expected the quiz screen")
	}
	if q.Session().UserID != "kid" {
		t.Errorf("UserID = %q, want kid", q.Session().UserID)
	}
}

func TestHomeScreen_MenuNavigation(t *testing.T) {
	h := New(testServices(), "kid")
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*types.TypesScreen); !ok {
		t.Error("expected the types screen")
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*history.HistoryScreen); !ok {
		t.Error("expected the history screen")
	}
}

func TestHomeScreen_NicknameFocus(t *testing.T) {
	h := New(testServices(), "")
	if !h.focusInput {
		t.Fatal("input should have focus without a nickname")
	}
	if len(h.KeyHints()) != 1 {
		t.Errorf("KeyHints length = %d, want 1 while typing", len(h.KeyHints()))
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if h.focusInput {
		t.Error("Enter should leave the nickname field")
	}
	h.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if !h.focusInput {
		t.Error("Tab should return to the nickname field")
	}
}

func TestHomeScreen_View(t *testing.T) {
	h := New(testServices(), "")
	if h.View(100, 30) == "" {
		t.Error("expected a non-empty view")
	}
	if h.View(50, 12) == "" {
		t.Error("expected a non-empty compact view")
	}
}
