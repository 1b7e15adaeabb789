package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/abhisek/learntype/internal/diagnosis"
	"github.com/abhisek/learntype/internal/journal"
	"github.com/abhisek/learntype/internal/session"
	"github.com/abhisek/learntype/internal/sessionstore"
)

type historyResponse struct {
	UserID  string          `json:"user_id"`
	Results []journal.Entry `json:"results"`
}

// lookupResult finds the result of a session. Live sessions are checked
// first; sessions that have expired from the session store fall back to
// the result store.
func (s *Server) lookupResult(ctx context.Context, id string) (*journal.Entry, error) {
	sess, err := s.sessions.Load(ctx, id)
	switch {
	case err == nil:
		switch sess.Status {
		case session.StatusCompleted:
			return &journal.Entry{SessionID: sess.ID, UserID: sess.UserID, Result: sess.Result}, nil
		case session.StatusAbandoned:
			return nil, session.ErrSessionAbandoned
		}
		return nil, errResultPending
	case !errors.Is(err, sessionstore.ErrNotFound):
		return nil, err
	}

	entry, err := s.journal.Result(ctx, id)
	if errors.Is(err, journal.ErrNoStore) {
		return nil, sessionstore.ErrNotFound
	}
	return entry, err
}

// handleGetResult handles GET /v1/sessions/{id}/result
func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	entry, err := s.lookupResult(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// handleGetCoaching handles GET /v1/sessions/{id}/coaching
func (s *Server) handleGetCoaching(w http.ResponseWriter, r *http.Request) {
	entry, err := s.lookupResult(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err)
		return
	}
	note, err := s.coach.Note(r.Context(), entry.Result)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// handleUserResults handles GET /v1/users/{userId}/results
func (s *Server) handleUserResults(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.fail(w, badRequest("limit must be a positive integer"))
			return
		}
		limit = n
	}

	entries, err := s.journal.History(r.Context(), userID, limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{UserID: userID, Results: entries})
}

// handleListTypes handles GET /v1/types
func (s *Server) handleListTypes(w http.ResponseWriter, r *http.Request) {
	types := s.engine.Catalog().Types()
	views := make([]typeView, 0, len(types))
	for _, t := range types {
		views = append(views, newTypeView(t))
	}
	writeJSON(w, http.StatusOK, views)
}

// handleGetType handles GET /v1/types/{id}
func (s *Server) handleGetType(w http.ResponseWriter, r *http.Request) {
	t, ok := s.engine.Catalog().Type(diagnosis.TypeID(mux.Vars(r)["id"]))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown learning type")
		return
	}
	writeJSON(w, http.StatusOK, newTypeView(t))
}
