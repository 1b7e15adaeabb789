// Package session drives a quiz attempt: which question comes next, how an
// answer updates state, and how a finished attempt becomes a result.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/learntype/internal/diagnosis"
	"github.com/abhisek/learntype/internal/followup"
	"github.com/abhisek/learntype/internal/questionbank"
	"github.com/abhisek/learntype/internal/scoring"
)

// Engine applies the quiz rules to sessions. It holds only immutable
// configuration, so one Engine can serve any number of sessions
// concurrently.
type Engine struct {
	bank    *questionbank.Bank
	catalog *diagnosis.Catalog
	policy  followup.Policy
	now     func() time.Time
	newID   func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalog sets the type catalog. Default: diagnosis.DefaultCatalog().
func WithCatalog(c *diagnosis.Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithPolicy sets the follow-up policy. Default: progressive, uncapped.
func WithPolicy(p followup.Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator sets the session id generator. Default: random UUIDs.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// NewEngine creates an engine over bank.
func NewEngine(bank *questionbank.Bank, opts ...Option) *Engine {
	e := &Engine{
		bank:    bank,
		catalog: diagnosis.DefaultCatalog(),
		policy:  followup.DefaultPolicy(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Bank returns the engine's question bank.
func (e *Engine) Bank() *questionbank.Bank { return e.bank }

// Catalog returns the engine's type catalog.
func (e *Engine) Catalog() *diagnosis.Catalog { return e.catalog }

// Policy returns the engine's follow-up policy.
func (e *Engine) Policy() followup.Policy { return e.policy }

// Start creates a fresh active session.
func (e *Engine) Start(userID string) *Session {
	return &Session{
		ID:          e.newID(),
		UserID:      userID,
		Status:      StatusActive,
		BankVersion: e.bank.Version(),
		Scores:      scoring.TraitScores{},
		StartedAt:   e.now().UTC(),
	}
}

// Next returns the question to ask now. Core questions come first in
// order; after them the follow-up policy decides. ok is false when the
// session has nothing left to ask.
func (e *Engine) Next(s *Session) (questionbank.Question, bool) {
	if s.Status != StatusActive {
		return questionbank.Question{}, false
	}
	for _, q := range e.bank.CoreQuestions() {
		if !s.Answers.Answered(q.ID) {
			return q, true
		}
	}
	return e.policy.Next(s.Scores, e.bank.FollowupQuestions(), s.askedSet())
}

// SubmitOutcome describes the effect of an answer.
type SubmitOutcome struct {
	// Record is the appended answer; nil when the answer was a duplicate.
	Record *scoring.AnswerRecord
	// Next is the question to ask now, if any.
	Next *questionbank.Question
	// Done is true when nothing is left to ask and the session can complete.
	Done bool
}

// Submit records an answer to the pending question.
//
// A repeated answer to an already-answered question is ignored and the
// outcome reports the current next question. An answer to any other
// question than the pending one fails with *UnexpectedQuestionError; an
// unknown option fails with *scoring.InvalidOptionError. Failed submits
// leave s unchanged.
func (e *Engine) Submit(s *Session, questionID, optionID string, responseTime time.Duration) (*SubmitOutcome, error) {
	if err := s.checkActive(); err != nil {
		return nil, err
	}

	if s.Answers.Answered(questionID) {
		return e.outcome(s, nil), nil
	}

	pending, ok := e.Next(s)
	if !ok || pending.ID != questionID {
		if _, known := e.bank.Question(questionID); !known {
			return nil, &scoring.UnknownQuestionError{QuestionID: questionID}
		}
		return nil, &UnexpectedQuestionError{Expected: pending.ID, Got: questionID}
	}

	if responseTime < 0 {
		responseTime = 0
	}
	rec, err := s.Answers.Record(pending, optionID, responseTime)
	if err != nil {
		return nil, err
	}
	scores, err := scoring.ApplyAnswer(s.Scores, pending, optionID)
	if err != nil {
		return nil, err
	}

	s.Answers = append(s.Answers, rec)
	s.Scores = scores
	if pending.Kind == questionbank.KindFollowup {
		s.AskedFollowups = append(s.AskedFollowups, pending.ID)
	}
	return e.outcome(s, &rec), nil
}

func (e *Engine) outcome(s *Session, rec *scoring.AnswerRecord) *SubmitOutcome {
	out := &SubmitOutcome{Record: rec}
	if next, ok := e.Next(s); ok {
		out.Next = &next
	} else {
		out.Done = true
	}
	return out
}

// Progress reports answered versus expected questions. The total counts
// core questions, answered follow-ups, and follow-ups eligible right now,
// so it can grow as answers unlock more.
func (e *Engine) Progress(s *Session) Progress {
	asked := s.askedSet()
	total := e.bank.CoreCount() + len(s.AskedFollowups) +
		e.policy.Remaining(s.Scores, e.bank.FollowupQuestions(), asked)

	p := Progress{
		Answered: len(s.Answers),
		Total:    total,
	}
	if total > 0 {
		p.Percent = min(100, p.Answered*100/total)
	}
	end := e.now()
	if !s.CompletedAt.IsZero() {
		end = s.CompletedAt
	}
	p.Elapsed = max(end.Sub(s.StartedAt), 0)
	return p
}

// Complete classifies the session and attaches its result. The elapsed
// time on the result is the sum of answer response times.
func (e *Engine) Complete(s *Session) (*diagnosis.Result, error) {
	if err := s.checkActive(); err != nil {
		return nil, err
	}
	if n, core := len(s.Answers), e.bank.CoreCount(); n < core {
		return nil, &diagnosis.IncompleteSessionError{Answered: n, Required: core}
	}

	cls, err := e.catalog.Classify(s.Scores)
	if err != nil {
		return nil, err
	}

	now := e.now()
	asm := diagnosis.Assembler{CoreCount: e.bank.CoreCount(), Catalog: e.catalog}
	result, err := asm.Assemble(diagnosis.AssembleInput{
		Classification: cls,
		Scores:         s.Scores,
		AnsweredCount:  len(s.Answers),
		Elapsed:        s.Answers.TotalResponseTime(),
		Now:            now,
	})
	if err != nil {
		return nil, err
	}

	s.Status = StatusCompleted
	s.CompletedAt = result.CompletedAt
	s.Result = result
	return result, nil
}

// Abandon marks an active session as abandoned.
func (e *Engine) Abandon(s *Session) error {
	if err := s.checkActive(); err != nil {
		return err
	}
	s.Status = StatusAbandoned
	s.CompletedAt = e.now().UTC()
	return nil
}

// Resume rebuilds an active session from its persisted transcript. The
// records are replayed against the bank in order; scores are recomputed,
// never trusted from storage.
func (e *Engine) Resume(id, userID string, startedAt time.Time, records []scoring.AnswerRecord) (*Session, error) {
	scores, err := scoring.Replay(e.bank, records)
	if err != nil {
		return nil, fmt.Errorf("resume session %s: %w", id, err)
	}

	s := &Session{
		ID:          id,
		UserID:      userID,
		Status:      StatusActive,
		BankVersion: e.bank.Version(),
		Answers:     append(scoring.Transcript(nil), records...),
		Scores:      scores,
		StartedAt:   startedAt.UTC(),
	}
	for _, r := range records {
		if !e.bank.IsCore(r.QuestionID) {
			s.AskedFollowups = append(s.AskedFollowups, r.QuestionID)
		}
	}
	return s, nil
}
