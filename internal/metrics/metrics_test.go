package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learntype/internal/store"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return New(reg), reg
}

func TestSessionCounters(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.SessionStarted()
	m.SessionStarted()
	m.AnswerAccepted("core")
	m.AnswerAccepted("core")
	m.AnswerAccepted("followup")
	m.AnswerRejected("invalid_option")
	m.SessionCompleted("explorer", 58, 90*time.Second)
	m.SessionAbandoned()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionsStarted))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AnswersSubmitted.WithLabelValues("core")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnswersSubmitted.WithLabelValues("followup")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvalidAnswers.WithLabelValues("invalid_option")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsCompleted.WithLabelValues("explorer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsAbandoned))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Confidence))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SessionStarted()
		m.AnswerAccepted("core")
		m.AnswerRejected("x")
		m.SessionCompleted("explorer", 1, time.Second)
		m.SessionAbandoned()
		m.ObserveHTTP("/health", "GET", 200, time.Millisecond)
		m.ObserveLLMRequest(store.LLMRequestEventData{}, 0)
	})
}

func TestObserveLLMRequest(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.ObserveLLMRequest(store.LLMRequestEventData{
		Provider: "openai", Purpose: "coaching-note", Success: true,
		InputTokens: 120, OutputTokens: 80, LatencyMs: 900,
	}, 0.002)
	m.ObserveLLMRequest(store.LLMRequestEventData{Provider: "openai", Purpose: "coaching-note"}, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LLMRequests.WithLabelValues("openai", "coaching-note", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LLMRequests.WithLabelValues("openai", "coaching-note", "error")))
	assert.Equal(t, 120.0, testutil.ToFloat64(m.LLMTokens.WithLabelValues("input")))
	assert.Equal(t, 80.0, testutil.ToFloat64(m.LLMTokens.WithLabelValues("output")))
	assert.InDelta(t, 0.002, testutil.ToFloat64(m.LLMCost), 1e-12)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m, reg := newTestMetrics(t)
	m.SessionStarted()
	m.ObserveHTTP("/v1/sessions", "POST", 201, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "learntype_sessions_started_total 1")
	assert.True(t, strings.Contains(body, `learntype_http_requests_total{code="201",method="POST",route="/v1/sessions"} 1`), body)
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
