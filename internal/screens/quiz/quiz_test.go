package quiz

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learntype/internal/diagnosis"
	"github.com/abhisek/learntype/internal/journal"
	"github.com/abhisek/learntype/internal/questionbank"
	"github.com/abhisek/learntype/internal/router"
	"github.com/abhisek/learntype/internal/screen"
	"github.com/abhisek/learntype/internal/screens/result"
	"github.com/abhisek/learntype/internal/session"
	"github.com/abhisek/learntype/internal/store"
)

func testServices(t *testing.T) screen.Services {
	t.Helper()
	db, err := store.Open(fmt.Sprintf("file:quiz-%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return screen.Services{
		Engine:  session.NewEngine(questionbank.Default()),
		Journal: journal.New(db.EventRepo(), db.ResultRepo(), nil, nil),
	}
}

// collect runs cmd and any batched commands, returning every message.
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var msgs []tea.Msg
	for _, c := range batch {
		msgs = append(msgs, collect(t, c)...)
	}
	return msgs
}

// deliver feeds recorded messages back to the screen and returns the rest.
func deliver(t *testing.T, s *QuizScreen, msgs []tea.Msg) []tea.Msg {
	t.Helper()
	var rest []tea.Msg
	for _, msg := range msgs {
		if rec, ok := msg.(recordedMsg); ok {
			if rec.Err != nil {
				t.Errorf("recording %s: %v", rec.What, rec.Err)
			}
			s.Update(rec)
			continue
		}
		rest = append(rest, msg)
	}
	return rest
}

func press(s *QuizScreen, key rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: key, Text: string(key)})
	return cmd
}

func TestQuiz_RunsToResult(t *testing.T) {
	svc := testServices(t)
	s := New(svc, "kid")
	deliver(t, s, collect(t, s.Init()))

	if !strings.Contains(s.View(100, 40), "Question 1 of") {
		t.Error("expected the first question to be shown")
	}

	var next screen.Screen
	for i := 0; i < 20 && next == nil; i++ {
		for _, msg := range deliver(t, s, collect(t, press(s, 'a'))) {
			if r, ok := msg.(router.ReplaceScreenMsg); ok {
				next = r.Screen
			}
		}
	}
	if next == nil {
		t.Fatal("quiz never handed over to the result screen")
	}
	if _, ok := next.(*result.ResultScreen); !ok {
		t.Errorf("next screen = %T, want *result.ResultScreen", next)
	}

	sess := s.Session()
	if sess.Status != session.StatusCompleted {
		t.Fatalf("Status = %s, want completed", sess.Status)
	}
	if sess.Result.Primary != diagnosis.TypeExplorer {
		t.Errorf("Primary = %s, want explorer", sess.Result.Primary)
	}
	if sess.AnsweredCount() != 8 {
		t.Errorf("answered = %d, want 8", sess.AnsweredCount())
	}

	entry, err := svc.Journal.Result(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("journal.Result: %v", err)
	}
	if entry.UserID != "kid" || entry.Result.Primary != diagnosis.TypeExplorer {
		t.Errorf("unexpected journal entry %+v", entry)
	}
}

func TestQuiz_QuitConfirmation(t *testing.T) {
	svc := testServices(t)
	s := New(svc, "")
	deliver(t, s, collect(t, s.Init()))
	deliver(t, s, collect(t, press(s, 'b')))

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !strings.Contains(s.View(100, 40), "Quit the quiz?") {
		t.Fatal("expected the quit confirmation")
	}
	press(s, 'n')
	if s.confirmQuit {
		t.Fatal("expected N to resume the quiz")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	var popped bool
	for _, msg := range deliver(t, s, collect(t, press(s, 'y'))) {
		if _, ok := msg.(router.PopScreenMsg); ok {
			popped = true
		}
	}
	if !popped {
		t.Error("expected Y to pop the quiz")
	}
	if s.Session().Status != session.StatusAbandoned {
		t.Errorf("Status = %s, want abandoned", s.Session().Status)
	}
}

func TestQuiz_KeysWhileConfirmingDoNotAnswer(t *testing.T) {
	svc := testServices(t)
	s := New(svc, "")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	press(s, 'a')
	if got := s.Session().AnsweredCount(); got != 0 {
		t.Errorf("answered = %d, want 0", got)
	}
}

func TestQuiz_HandlesBackAndHints(t *testing.T) {
	s := New(screen.Services{Engine: session.NewEngine(questionbank.Default())}, "")
	if !s.HandlesBack() {
		t.Error("quiz should handle Esc itself")
	}
	if s.Init() != nil {
		t.Error("expected no recording without a journal")
	}
	if len(s.KeyHints()) != 3 {
		t.Errorf("KeyHints length = %d, want 3", len(s.KeyHints()))
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if len(s.KeyHints()) != 2 {
		t.Errorf("confirm KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}
