// Package journal records quiz session activity to the event store, the
// result store, and metrics. The HTTP API and the terminal UI both report
// through it, so a session looks the same in history whichever front end
// ran it.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/learntype/internal/diagnosis"
	"github.com/abhisek/learntype/internal/metrics"
	"github.com/abhisek/learntype/internal/questionbank"
	"github.com/abhisek/learntype/internal/scoring"
	"github.com/abhisek/learntype/internal/session"
	"github.com/abhisek/learntype/internal/store"
)

// ErrNoStore is returned by queries when the journal has no backing store.
var ErrNoStore = errors.New("no result store configured")

// Journal fans session activity out to its sinks. Any sink may be nil.
type Journal struct {
	events  store.EventRepo
	results store.ResultRepo
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// New creates a journal.
func New(events store.EventRepo, results store.ResultRepo, m *metrics.Metrics, logger *zap.Logger) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{events: events, results: results, metrics: m, logger: logger.Named("journal")}
}

// Started records a new session.
func (j *Journal) Started(ctx context.Context, s *session.Session) error {
	j.metrics.SessionStarted()
	j.logger.Info("session started", zap.String("session_id", s.ID), zap.String("user_id", s.UserID))
	if j.events == nil {
		return nil
	}
	return j.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:   s.ID,
		UserID:      s.UserID,
		Action:      store.ActionStart,
		BankVersion: s.BankVersion,
	})
}

// Answered records an accepted answer of the given question kind.
func (j *Journal) Answered(ctx context.Context, s *session.Session, rec scoring.AnswerRecord, kind questionbank.Kind) error {
	j.metrics.AnswerAccepted(string(kind))
	j.logger.Debug("answer recorded",
		zap.String("session_id", s.ID),
		zap.String("question_id", rec.QuestionID),
		zap.String("option_id", rec.OptionID),
		zap.Int("seq", rec.Seq))
	if j.events == nil {
		return nil
	}
	return j.events.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:     s.ID,
		QuestionID:    rec.QuestionID,
		OptionID:      rec.OptionID,
		AnswerSeq:     rec.Seq,
		Contributions: rec.Contributions,
		ResponseTime:  rec.ResponseTime,
	})
}

// Rejected counts an answer the engine refused.
func (j *Journal) Rejected(err error) {
	var invalid *scoring.InvalidOptionError
	var unknown *scoring.UnknownQuestionError
	var unexpected *session.UnexpectedQuestionError
	switch {
	case errors.As(err, &invalid):
		j.metrics.AnswerRejected("invalid_option")
	case errors.As(err, &unknown):
		j.metrics.AnswerRejected("unknown_question")
	case errors.As(err, &unexpected):
		j.metrics.AnswerRejected("unexpected_question")
	case errors.Is(err, session.ErrSessionCompleted), errors.Is(err, session.ErrSessionAbandoned):
		j.metrics.AnswerRejected("session_closed")
	}
}

// Completed records a completed session and stores its result.
func (j *Journal) Completed(ctx context.Context, s *session.Session) error {
	r := s.Result
	if r == nil {
		return fmt.Errorf("session %s has no result", s.ID)
	}
	j.metrics.SessionCompleted(string(r.Primary), r.Confidence, r.Elapsed)
	j.logger.Info("session completed",
		zap.String("session_id", s.ID),
		zap.String("primary", string(r.Primary)),
		zap.String("secondary", string(r.Secondary)),
		zap.Int("confidence", r.Confidence))

	var errs []error
	if j.events != nil {
		errs = append(errs, j.events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:   s.ID,
			UserID:      s.UserID,
			Action:      store.ActionComplete,
			BankVersion: s.BankVersion,
			Answered:    r.AnsweredCount,
			Duration:    r.Elapsed,
		}))
	}
	if j.results != nil {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		errs = append(errs, j.results.Save(ctx, store.ResultRecord{
			SessionID:     s.ID,
			UserID:        s.UserID,
			PrimaryType:   string(r.Primary),
			SecondaryType: string(r.Secondary),
			Confidence:    r.Confidence,
			AnsweredCount: r.AnsweredCount,
			Elapsed:       r.Elapsed,
			CompletedAt:   r.CompletedAt,
			Data:          data,
		}))
	}
	return errors.Join(errs...)
}

// Abandoned records an abandoned session.
func (j *Journal) Abandoned(ctx context.Context, s *session.Session) error {
	j.metrics.SessionAbandoned()
	j.logger.Info("session abandoned", zap.String("session_id", s.ID), zap.Int("answered", s.AnsweredCount()))
	if j.events == nil {
		return nil
	}
	return j.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:   s.ID,
		UserID:      s.UserID,
		Action:      store.ActionAbandon,
		BankVersion: s.BankVersion,
		Answered:    s.AnsweredCount(),
		Duration:    s.Answers.TotalResponseTime(),
	})
}

// Entry is one stored result.
type Entry struct {
	SessionID string            `json:"session_id"`
	UserID    string            `json:"user_id,omitempty"`
	Result    *diagnosis.Result `json:"result"`
}

// Result returns the stored result of a session. A missing result wraps
// store.ErrNotFound.
func (j *Journal) Result(ctx context.Context, sessionID string) (*Entry, error) {
	if j.results == nil {
		return nil, ErrNoStore
	}
	rec, err := j.results.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return decodeEntry(*rec)
}

// History returns a user's results, newest first.
func (j *Journal) History(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if j.results == nil {
		return nil, ErrNoStore
	}
	recs, err := j.results.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(recs))
	for _, rec := range recs {
		e, err := decodeEntry(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

func decodeEntry(rec store.ResultRecord) (*Entry, error) {
	var r diagnosis.Result
	if err := json.Unmarshal(rec.Data, &r); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", rec.SessionID, err)
	}
	return &Entry{SessionID: rec.SessionID, UserID: rec.UserID, Result: &r}, nil
}

// Replay rebuilds a session from its recorded start event and answers.
// The rebuilt session is active; completing it re-derives the result from
// the current bank and catalog.
func (j *Journal) Replay(ctx context.Context, engine *session.Engine, sessionID string) (*session.Session, error) {
	if j.events == nil {
		return nil, ErrNoStore
	}
	evs, err := j.events.SessionEvents(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	var start *store.SessionEvent
	for i := range evs {
		if evs[i].Action == store.ActionStart {
			start = &evs[i]
			break
		}
	}
	if start == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, store.ErrNotFound)
	}

	answers, err := j.events.Answers(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	records := make([]scoring.AnswerRecord, 0, len(answers))
	for _, a := range answers {
		records = append(records, scoring.AnswerRecord{
			QuestionID:    a.QuestionID,
			OptionID:      a.OptionID,
			Contributions: a.Contributions,
			Seq:           a.AnswerSeq,
			ResponseTime:  a.ResponseTime,
		})
	}
	startedAt := start.Timestamp
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	return engine.Resume(sessionID, start.UserID, startedAt, records)
}
