package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/abhisek/learntype/internal/session"
)

type createSessionRequest struct {
	UserID string `json:"user_id"`
}

type answerRequest struct {
	QuestionID     string `json:"question_id"`
	OptionID       string `json:"option_id"`
	ResponseTimeMs int64  `json:"response_time_ms"`
}

type questionResponse struct {
	Done     bool          `json:"done"`
	Question *questionView `json:"question,omitempty"`
	Progress progressView  `json:"progress"`
}

// decodeBody decodes a JSON request body into v. An empty body leaves v
// untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return badRequest("invalid request body: " + err.Error())
	}
	return nil
}

// handleCreateSession handles POST /v1/sessions
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	sess := s.engine.Start(strings.TrimSpace(req.UserID))
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		s.fail(w, err)
		return
	}
	if err := s.journal.Started(r.Context(), sess); err != nil {
		s.logger.Warn("failed to record session start", zap.String("session_id", sess.ID), zap.Error(err))
	}
	writeJSON(w, http.StatusCreated, s.newSessionView(sess))
}

// handleGetSession handles GET /v1/sessions/{id}
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Load(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.newSessionView(sess))
}

// handleGetQuestion handles GET /v1/sessions/{id}/question
func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Load(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := closedError(sess); err != nil {
		s.fail(w, err)
		return
	}

	resp := questionResponse{Progress: newProgressView(s.engine.Progress(sess))}
	if q, ok := s.engine.Next(sess); ok {
		resp.Question = newQuestionView(q)
	} else {
		resp.Done = true
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSubmitAnswer handles POST /v1/sessions/{id}/answers
//
// The session completes as soon as nothing is left to ask; the response
// then carries the result.
func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if req.QuestionID == "" || req.OptionID == "" {
		s.fail(w, badRequest("question_id and option_id are required"))
		return
	}

	id := mux.Vars(r)["id"]
	defer s.lock(id)()

	ctx := r.Context()
	sess, err := s.sessions.Load(ctx, id)
	if err != nil {
		s.fail(w, err)
		return
	}

	out, err := s.engine.Submit(sess, req.QuestionID, req.OptionID, time.Duration(req.ResponseTimeMs)*time.Millisecond)
	if err != nil {
		s.journal.Rejected(err)
		s.fail(w, err)
		return
	}

	resp := answerView{Accepted: out.Record != nil, Done: out.Done}
	if out.Next != nil {
		resp.Question = newQuestionView(*out.Next)
	}

	if out.Done {
		if _, err := s.engine.Complete(sess); err != nil {
			s.fail(w, err)
			return
		}
	}
	// Journal only after the session is saved.
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.fail(w, err)
		return
	}
	if out.Record != nil {
		q, _ := s.engine.Bank().Question(out.Record.QuestionID)
		if err := s.journal.Answered(ctx, sess, *out.Record, q.Kind); err != nil {
			s.logger.Warn("failed to record answer", zap.String("session_id", id), zap.Error(err))
		}
	}
	if out.Done {
		if err := s.journal.Completed(ctx, sess); err != nil {
			s.logger.Error("failed to record result", zap.String("session_id", id), zap.Error(err))
		}
	}

	resp.Progress = newProgressView(s.engine.Progress(sess))
	resp.Result = sess.Result
	writeJSON(w, http.StatusOK, resp)
}

// handleAbandon handles POST /v1/sessions/{id}/abandon
func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	defer s.lock(id)()

	ctx := r.Context()
	sess, err := s.sessions.Load(ctx, id)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.engine.Abandon(sess); err != nil {
		s.fail(w, err)
		return
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.fail(w, err)
		return
	}
	if err := s.journal.Abandoned(ctx, sess); err != nil {
		s.logger.Warn("failed to record abandon", zap.String("session_id", id), zap.Error(err))
	}
	writeJSON(w, http.StatusOK, s.newSessionView(sess))
}

// closedError returns the error for using a session that is no longer
// active, or nil.
func closedError(sess *session.Session) error {
	switch sess.Status {
	case session.StatusCompleted:
		return session.ErrSessionCompleted
	case session.StatusAbandoned:
		return session.ErrSessionAbandoned
	}
	return nil
}
