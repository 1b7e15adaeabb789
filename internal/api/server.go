// Package api exposes quiz sessions, results, and the type catalog over
// HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"hash/fnv"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/learntype/internal/coaching"
	"github.com/abhisek/learntype/internal/journal"
	"github.com/abhisek/learntype/internal/metrics"
	"github.com/abhisek/learntype/internal/session"
	"github.com/abhisek/learntype/internal/sessionstore"
)

// Deps holds everything the server needs. Engine and Sessions are
// required; the rest may be nil.
type Deps struct {
	Engine   *session.Engine
	Sessions sessionstore.Store
	Journal  *journal.Journal
	Coach    *coaching.Coach
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
	// HealthCheck reports whether backing services are reachable.
	HealthCheck func(ctx context.Context) error
}

// Server handles the HTTP API.
type Server struct {
	engine   *session.Engine
	sessions sessionstore.Store
	journal  *journal.Journal
	coach    *coaching.Coach
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	logger   *zap.Logger
	health   func(ctx context.Context) error

	locks [64]sync.Mutex
}

// NewServer creates a server from deps.
func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	coach := deps.Coach
	if coach == nil {
		coach = coaching.New(nil, deps.Engine.Catalog(), coaching.DefaultConfig(), logger)
	}
	jr := deps.Journal
	if jr == nil {
		jr = journal.New(nil, nil, deps.Metrics, logger)
	}
	return &Server{
		engine:   deps.Engine,
		sessions: deps.Sessions,
		journal:  jr,
		coach:    coach,
		metrics:  deps.Metrics,
		gatherer: deps.Gatherer,
		logger:   logger.Named("api"),
		health:   deps.HealthCheck,
	}
}

// lock serializes requests that mutate the same session. Sessions hash to
// one of a fixed set of mutexes.
func (s *Server) lock(id string) func() {
	h := fnv.New32a()
	h.Write([]byte(id))
	mu := &s.locks[h.Sum32()%uint32(len(s.locks))]
	mu.Lock()
	return mu.Unlock
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.observe)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if s.gatherer != nil {
		r.Handle("/metrics", metrics.Handler(s.gatherer)).Methods(http.MethodGet)
	}

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/sessions", s.handleCreateSession).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}", s.handleGetSession).Methods(http.MethodGet)
	v1.HandleFunc("/sessions/{id}/question", s.handleGetQuestion).Methods(http.MethodGet)
	v1.HandleFunc("/sessions/{id}/answers", s.handleSubmitAnswer).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/abandon", s.handleAbandon).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/result", s.handleGetResult).Methods(http.MethodGet)
	v1.HandleFunc("/sessions/{id}/coaching", s.handleGetCoaching).Methods(http.MethodGet)
	v1.HandleFunc("/users/{userId}/results", s.handleUserResults).Methods(http.MethodGet)
	v1.HandleFunc("/types", s.handleListTypes).Methods(http.MethodGet)
	v1.HandleFunc("/types/{id}", s.handleGetType).Methods(http.MethodGet)

	// Subrouters do not inherit these from the root.
	for _, router := range []*mux.Router{r, v1} {
		router.NotFoundHandler = http.HandlerFunc(notFound)
		router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	}
	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not_found", "no such route")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{
		"status":       "ok",
		"bank_version": s.engine.Bank().Version(),
	}
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			body["status"] = "degraded"
			body["error"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, body)
			return
		}
	}
	writeJSON(w, http.StatusOK, body)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// observe logs and measures every request, labelled by route template.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		elapsed := time.Since(start)
		s.metrics.ObserveHTTP(route, r.Method, rec.status, elapsed)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", rec.status),
			zap.Duration("duration", elapsed),
		}
		if rec.status >= http.StatusInternalServerError {
			s.logger.Error("request failed", fields...)
		} else {
			s.logger.Debug("request", fields...)
		}
	})
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// fail maps err onto a status code and writes it.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status, code := classifyError(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, status, code, "internal error")
		return
	}
	writeError(w, status, code, err.Error())
}

// ServerConfig holds http.Server settings for Serve.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Serve listens on cfg.Addr and serves h until ctx is cancelled, then shuts
// down gracefully. ready, when non-nil, receives the bound address.
func Serve(ctx context.Context, cfg ServerConfig, h http.Handler, logger *zap.Logger, ready chan<- net.Addr) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
		if ready != nil {
			ready <- ln.Addr()
		}
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
