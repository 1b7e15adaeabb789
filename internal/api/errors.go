package api

import (
	"errors"
	"net/http"

	"github.com/abhisek/learntype/internal/diagnosis"
	"github.com/abhisek/learntype/internal/journal"
	"github.com/abhisek/learntype/internal/scoring"
	"github.com/abhisek/learntype/internal/session"
	"github.com/abhisek/learntype/internal/sessionstore"
	"github.com/abhisek/learntype/internal/store"
)

// errBadRequest marks malformed request input.
type errBadRequest struct{ msg string }

func (e *errBadRequest) Error() string { return e.msg }

func badRequest(msg string) error { return &errBadRequest{msg: msg} }

// errResultPending is returned when a result is requested for an active
// session.
var errResultPending = errors.New("session is still in progress")

// classifyError returns the HTTP status and machine-readable code for err.
func classifyError(err error) (int, string) {
	var (
		bad        *errBadRequest
		invalid    *scoring.InvalidOptionError
		unknown    *scoring.UnknownQuestionError
		unexpected *session.UnexpectedQuestionError
		incomplete *diagnosis.IncompleteSessionError
		noData     *diagnosis.InsufficientDataError
	)
	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest, "bad_request"
	case errors.As(err, &invalid):
		return http.StatusBadRequest, "invalid_option"
	case errors.As(err, &unknown):
		return http.StatusBadRequest, "unknown_question"
	case errors.As(err, &unexpected):
		return http.StatusBadRequest, "unexpected_question"
	case errors.Is(err, sessionstore.ErrNotFound), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, session.ErrSessionCompleted):
		return http.StatusConflict, "session_completed"
	case errors.Is(err, session.ErrSessionAbandoned):
		return http.StatusConflict, "session_abandoned"
	case errors.As(err, &incomplete):
		return http.StatusUnprocessableEntity, "session_incomplete"
	case errors.As(err, &noData):
		return http.StatusUnprocessableEntity, "insufficient_data"
	case errors.Is(err, errResultPending):
		return http.StatusUnprocessableEntity, "result_pending"
	case errors.Is(err, journal.ErrNoStore):
		return http.StatusServiceUnavailable, "unavailable"
	}
	return http.StatusInternalServerError, "internal"
}
