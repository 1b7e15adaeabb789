package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/learntype/internal/diagnosis"
	"github.com/abhisek/learntype/internal/scoring"
)

// Status is the lifecycle state of a quiz session.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

var (
	// ErrSessionCompleted is returned when answering or completing a
	// session that already has a result.
	ErrSessionCompleted = errors.New("session already completed")

	// ErrSessionAbandoned is returned when using an abandoned session.
	ErrSessionAbandoned = errors.New("session was abandoned")
)

// UnexpectedQuestionError is returned when an answer is submitted for a
// question other than the one currently being asked.
type UnexpectedQuestionError struct {
	Expected string // empty when no question is pending
	Got      string
}

func (e *UnexpectedQuestionError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("unexpected answer for %q: no question is pending", e.Got)
	}
	return fmt.Sprintf("unexpected answer for %q: expected %q", e.Got, e.Expected)
}

// Session is the mutable state of one quiz attempt. Each session owns its
// own transcript and score map; never share a Session across goroutines
// without external locking.
type Session struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id,omitempty"`
	Status      Status `json:"status"`
	BankVersion string `json:"bank_version,omitempty"`

	// Answers is the submission-ordered transcript.
	Answers scoring.Transcript `json:"answers"`

	// Scores is the running trait-score map, always equal to folding Answers.
	Scores scoring.TraitScores `json:"scores"`

	// AskedFollowups lists follow-up ids in the order they were answered.
	AskedFollowups []string `json:"asked_followups,omitempty"`

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at,omitzero"`

	// Result is set once the session completes.
	Result *diagnosis.Result `json:"result,omitempty"`
}

// AnsweredCount returns the number of answers recorded.
func (s *Session) AnsweredCount() int {
	return len(s.Answers)
}

// askedSet returns the follow-ups already answered as a set.
func (s *Session) askedSet() map[string]bool {
	set := make(map[string]bool, len(s.AskedFollowups))
	for _, id := range s.AskedFollowups {
		set[id] = true
	}
	return set
}

func (s *Session) checkActive() error {
	switch s.Status {
	case StatusCompleted:
		return ErrSessionCompleted
	case StatusAbandoned:
		return ErrSessionAbandoned
	}
	return nil
}

// Progress is a snapshot of how far a session has come.
type Progress struct {
	Answered int           `json:"answered"`
	Total    int           `json:"total"`
	Percent  int           `json:"percent"`
	Elapsed  time.Duration `json:"elapsed"`
}
