package api

import (
	"time"

	"github.com/abhisek/learntype/internal/diagnosis"
	"github.com/abhisek/learntype/internal/questionbank"
	"github.com/abhisek/learntype/internal/session"
)

// Response documents. Option weights stay server-side.

type optionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type questionView struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Kind    string       `json:"kind"`
	Options []optionView `json:"options"`
}

func newQuestionView(q questionbank.Question) *questionView {
	v := &questionView{ID: q.ID, Text: q.Text, Kind: string(q.Kind)}
	for _, o := range q.Options {
		v.Options = append(v.Options, optionView{ID: o.ID, Text: o.Text})
	}
	return v
}

type progressView struct {
	Answered       int     `json:"answered"`
	Total          int     `json:"total"`
	Percent        int     `json:"percent"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

func newProgressView(p session.Progress) progressView {
	return progressView{
		Answered:       p.Answered,
		Total:          p.Total,
		Percent:        p.Percent,
		ElapsedSeconds: p.Elapsed.Seconds(),
	}
}

type sessionView struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id,omitempty"`
	Status      session.Status    `json:"status"`
	BankVersion string            `json:"bank_version"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Progress    progressView      `json:"progress"`
	Question    *questionView     `json:"question,omitempty"`
	Result      *diagnosis.Result `json:"result,omitempty"`
}

func (s *Server) newSessionView(sess *session.Session) sessionView {
	v := sessionView{
		ID:          sess.ID,
		UserID:      sess.UserID,
		Status:      sess.Status,
		BankVersion: sess.BankVersion,
		StartedAt:   sess.StartedAt,
		Progress:    newProgressView(s.engine.Progress(sess)),
		Result:      sess.Result,
	}
	if !sess.CompletedAt.IsZero() {
		t := sess.CompletedAt
		v.CompletedAt = &t
	}
	if sess.Status == session.StatusActive {
		if q, ok := s.engine.Next(sess); ok {
			v.Question = newQuestionView(q)
		}
	}
	return v
}

type answerView struct {
	Accepted bool              `json:"accepted"`
	Done     bool              `json:"done"`
	Question *questionView     `json:"question,omitempty"`
	Progress progressView      `json:"progress"`
	Result   *diagnosis.Result `json:"result,omitempty"`
}

type typeView struct {
	diagnosis.Type
	Multipliers map[string]float64 `json:"multipliers"`
}

func newTypeView(t diagnosis.Type) typeView {
	return typeView{Type: t, Multipliers: t.Multipliers()}
}
