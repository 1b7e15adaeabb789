package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Session lifecycle actions recorded in session events.
const (
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionAbandon  = "abandon"
)

// SessionEventData captures a session lifecycle transition.
type SessionEventData struct {
	SessionID   string
	UserID      string
	Action      string // start, complete, abandon
	BankVersion string
	Answered    int
	Duration    time.Duration
}

// SessionEvent is a stored session lifecycle event.
type SessionEvent struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// AnswerEventData captures one submitted answer.
type AnswerEventData struct {
	SessionID     string
	QuestionID    string
	OptionID      string
	AnswerSeq     int // position in the session transcript, from 1
	Contributions map[string]int
	ResponseTime  time.Duration
}

// AnswerEvent is a stored answer.
type AnswerEvent struct {
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session lifecycle transition.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records one submitted answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// Answers returns a session's answers in transcript order.
	Answers(ctx context.Context, sessionID string) ([]AnswerEvent, error)

	// SessionEvents returns a session's lifecycle events in sequence order.
	SessionEvents(ctx context.Context, sessionID string) ([]SessionEvent, error)

	// RecentSessions returns start events, newest first.
	RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int    // max results (0 = unlimited)
	UserID string // filter by user when non-empty
}

// ResultRecord is a stored diagnosis result.
type ResultRecord struct {
	SessionID     string
	UserID        string
	PrimaryType   string
	SecondaryType string
	Confidence    int
	AnsweredCount int
	Elapsed       time.Duration
	CompletedAt   time.Time
	// Data is the full result document as JSON.
	Data []byte
}

// DefaultHistoryLimit is the number of results ListByUser returns when no
// limit is given.
const DefaultHistoryLimit = 10

// ResultRepo stores completed diagnosis results.
type ResultRepo interface {
	// Save stores a result. Saving a second result for the same session
	// replaces the first.
	Save(ctx context.Context, rec ResultRecord) error

	// Get returns the result for a session, or ErrNotFound.
	Get(ctx context.Context, sessionID string) (*ResultRecord, error)

	// ListByUser returns a user's results, newest first. limit <= 0 means
	// DefaultHistoryLimit.
	ListByUser(ctx context.Context, userID string, limit int) ([]ResultRecord, error)
}
