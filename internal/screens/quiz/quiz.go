// Package quiz runs one diagnosis session in the terminal.
package quiz

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learntype/internal/diagnosis"
	"github.com/abhisek/learntype/internal/questionbank"
	"github.com/abhisek/learntype/internal/router"
	"github.com/abhisek/learntype/internal/screen"
	"github.com/abhisek/learntype/internal/screens/result"
	"github.com/abhisek/learntype/internal/session"
	"github.com/abhisek/learntype/internal/ui/components"
	"github.com/abhisek/learntype/internal/ui/layout"
)

const recordTimeout = 5 * time.Second

// QuizScreen asks the bank's questions one at a time and hands over to the
// result screen once the session completes.
type QuizScreen struct {
	svc         screen.Services
	sess        *session.Session
	question    questionbank.Question
	choice      components.Choice
	shownAt     time.Time
	now         func() time.Time
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackHandler = (*QuizScreen)(nil)

// New starts a session for nickname.
func New(svc screen.Services, nickname string) *QuizScreen {
	s := &QuizScreen{
		svc:  svc,
		sess: svc.Engine.Start(nickname),
		now:  time.Now,
	}
	if q, ok := svc.Engine.Next(s.sess); ok {
		s.show(q)
	}
	return s
}

// Session returns the session being run.
func (s *QuizScreen) Session() *session.Session {
	return s.sess
}

func (s *QuizScreen) show(q questionbank.Question) {
	opts := make([]components.ChoiceOption, 0, len(q.Options))
	for _, o := range q.Options {
		opts = append(opts, components.ChoiceOption{ID: o.ID, Text: o.Text})
	}
	s.question = q
	s.choice = components.NewChoice(q.Text, opts)
	s.shownAt = s.now()
}

func (s *QuizScreen) Init() tea.Cmd {
	sess := s.sess
	return s.record("start", func(ctx context.Context) error {
		return s.svc.Journal.Started(ctx, sess)
	})
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) HandlesBack() bool {
	return true
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "Esc", Description: "Home"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Pick"},
		{Key: "Esc", Description: "Quit"},
	}
}

// record runs fn against the journal off the UI loop.
func (s *QuizScreen) record(what string, fn func(ctx context.Context) error) tea.Cmd {
	if s.svc.Journal == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		return recordedMsg{What: what, Err: fn(ctx)}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordedMsg:
		if msg.Err != nil && s.svc.Logger != nil {
			s.svc.Logger.Warn("failed to record session activity",
				zap.String("session_id", s.sess.ID), zap.String("what", msg.What), zap.Error(msg.Err))
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		if key == "esc" || key == "enter" {
			return s, pop
		}
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, s.abandon()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	if !s.choice.Done() {
		return s, nil
	}
	return s, s.submit()
}

func pop() tea.Msg { return router.PopScreenMsg{} }

func (s *QuizScreen) abandon() tea.Cmd {
	if err := s.svc.Engine.Abandon(s.sess); err != nil {
		return pop
	}
	sess := s.sess
	return tea.Batch(
		s.record("abandon", func(ctx context.Context) error {
			return s.svc.Journal.Abandoned(ctx, sess)
		}),
		pop,
	)
}

func (s *QuizScreen) submit() tea.Cmd {
	optionID, _ := s.choice.Value()
	q := s.question
	out, err := s.svc.Engine.Submit(s.sess, q.ID, optionID, s.now().Sub(s.shownAt))
	if err != nil {
		if s.svc.Journal != nil {
			s.svc.Journal.Rejected(err)
		}
		s.errMsg = err.Error()
		return nil
	}

	var cmds []tea.Cmd
	if out.Record != nil {
		sess, rec := s.sess, *out.Record
		cmds = append(cmds, s.record("answer", func(ctx context.Context) error {
			return s.svc.Journal.Answered(ctx, sess, rec, q.Kind)
		}))
	}

	if out.Done {
		cmds = append(cmds, s.finish())
	} else if out.Next != nil {
		s.show(*out.Next)
	}
	return tea.Batch(cmds...)
}

// finish completes the session and swaps this screen for the result.
func (s *QuizScreen) finish() tea.Cmd {
	if _, err := s.svc.Engine.Complete(s.sess); err != nil {
		s.errMsg = describe(err)
		return nil
	}
	sess := s.sess
	next := result.New(s.svc, sess.Result)
	return tea.Batch(
		s.record("complete", func(ctx context.Context) error {
			return s.svc.Journal.Completed(ctx, sess)
		}),
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
	)
}

func describe(err error) string {
	var noData *diagnosis.InsufficientDataError
	if errors.As(err, &noData) {
		return "Your answers did not point towards any learning type. Try again and pick the options closest to how you really study."
	}
	return err.Error()
}
