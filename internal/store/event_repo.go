package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builders and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableSessionEvents).
		Columns("sequence", "timestamp", "session_id", "user_id", "action", "bank_version", "answered", "duration_ms").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.UserID, data.Action, data.BankVersion, data.Answered, data.Duration.Milliseconds()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	var contributions any
	if len(data.Contributions) > 0 {
		raw, err := json.Marshal(data.Contributions)
		if err != nil {
			return fmt.Errorf("marshal contributions: %w", err)
		}
		contributions = string(raw)
	}

	query, args := builder().Insert(tableAnswerEvents).
		Columns("sequence", "timestamp", "session_id", "question_id", "option_id", "answer_seq", "contributions", "response_ms").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.QuestionID, data.OptionID, data.AnswerSeq, contributions, data.ResponseTime.Milliseconds()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) Answers(ctx context.Context, sessionID string) ([]AnswerEvent, error) {
	b := builder()
	t := b.Table(tableAnswerEvents)
	query, args := b.Select(
		t.C("sequence"), t.C("timestamp"), t.C("session_id"), t.C("question_id"),
		t.C("option_id"), t.C("answer_seq"), t.C("contributions"), t.C("response_ms"),
	).
		From(t).
		Where(entsql.EQ(t.C("session_id"), sessionID)).
		OrderBy(t.C("answer_seq")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var events []AnswerEvent
	for rows.Next() {
		var (
			e             AnswerEvent
			contributions sql.NullString
			responseMs    int64
		)
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.SessionID, &e.QuestionID,
			&e.OptionID, &e.AnswerSeq, &contributions, &responseMs); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		if contributions.Valid && contributions.String != "" {
			if err := json.Unmarshal([]byte(contributions.String), &e.Contributions); err != nil {
				return nil, fmt.Errorf("unmarshal contributions: %w", err)
			}
		}
		e.ResponseTime = time.Duration(responseMs) * time.Millisecond
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}
	return events, nil
}

func (r *eventRepo) SessionEvents(ctx context.Context, sessionID string) ([]SessionEvent, error) {
	b := builder()
	t := b.Table(tableSessionEvents)
	query, args := sessionEventSelect(b, t).
		Where(entsql.EQ(t.C("session_id"), sessionID)).
		OrderBy(t.C("sequence")).
		Query()
	return r.querySessionEvents(ctx, query, args)
}

func (r *eventRepo) RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	b := builder()
	t := b.Table(tableSessionEvents)
	pred := entsql.EQ(t.C("action"), ActionStart)
	if opts.UserID != "" {
		pred = entsql.And(pred, entsql.EQ(t.C("user_id"), opts.UserID))
	}
	sel := sessionEventSelect(b, t).
		Where(pred).
		OrderBy(entsql.Desc(t.C("sequence")))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()
	return r.querySessionEvents(ctx, query, args)
}

func sessionEventSelect(b *entsql.DialectBuilder, t *entsql.SelectTable) *entsql.Selector {
	return b.Select(
		t.C("sequence"), t.C("timestamp"), t.C("session_id"), t.C("user_id"),
		t.C("action"), t.C("bank_version"), t.C("answered"), t.C("duration_ms"),
	).From(t)
}

func (r *eventRepo) querySessionEvents(ctx context.Context, query string, args []any) ([]SessionEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var (
			e          SessionEvent
			durationMs int64
		)
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.SessionID, &e.UserID,
			&e.Action, &e.BankVersion, &e.Answered, &durationMs); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableLLMRequests).
		Columns("sequence", "timestamp", "provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "request_body", "response_body").
		Values(seqNum, time.Now().UTC(), data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}
