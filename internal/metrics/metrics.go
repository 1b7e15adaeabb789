// Package metrics defines the Prometheus instruments for quiz sessions, the
// HTTP API, and LLM calls.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/learntype/internal/store"
)

const namespace = "learntype"

// Metrics holds every instrument. A nil *Metrics is valid and records
// nothing, so callers never need to guard.
type Metrics struct {
	SessionsStarted   prometheus.Counter
	SessionsCompleted *prometheus.CounterVec
	SessionsAbandoned prometheus.Counter
	AnswersSubmitted  *prometheus.CounterVec
	InvalidAnswers    *prometheus.CounterVec
	Confidence        prometheus.Histogram
	SessionDuration   prometheus.Histogram

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	LLMRequests *prometheus.CounterVec
	LLMTokens   *prometheus.CounterVec
	LLMCost     prometheus.Counter
	LLMLatency  *prometheus.HistogramVec
}

// New registers all instruments with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SessionsStarted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Total number of quiz sessions started",
		}),
		SessionsCompleted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_completed_total",
			Help:      "Total number of quiz sessions completed, by primary learning type",
		}, []string{"primary_type"}),
		SessionsAbandoned: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_abandoned_total",
			Help:      "Total number of quiz sessions abandoned",
		}),
		AnswersSubmitted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_submitted_total",
			Help:      "Total number of accepted answers, by question kind",
		}, []string{"kind"}),
		InvalidAnswers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_rejected_total",
			Help:      "Total number of rejected answers, by reason",
		}, []string{"reason"}),
		Confidence: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "result_confidence",
			Help:      "Confidence of completed diagnoses",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
		SessionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_answer_seconds",
			Help:      "Total answer time of completed sessions in seconds",
			Buckets:   []float64{15, 30, 60, 120, 300, 600},
		}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"route", "method", "code"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		LLMRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Total number of LLM requests",
		}, []string{"provider", "purpose", "outcome"}),
		LLMTokens: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_tokens_total",
			Help:      "Total number of LLM tokens",
		}, []string{"direction"}),
		LLMCost: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_cost_usd_total",
			Help:      "Estimated LLM spend in USD",
		}),
		LLMLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "Duration of LLM requests in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"provider"}),
	}
}

// Handler serves the metrics in g in the Prometheus exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.SessionsStarted.Inc()
}

func (m *Metrics) AnswerAccepted(kind string) {
	if m == nil {
		return
	}
	m.AnswersSubmitted.WithLabelValues(kind).Inc()
}

func (m *Metrics) AnswerRejected(reason string) {
	if m == nil {
		return
	}
	m.InvalidAnswers.WithLabelValues(reason).Inc()
}

func (m *Metrics) SessionCompleted(primaryType string, confidence int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.SessionsCompleted.WithLabelValues(primaryType).Inc()
	m.Confidence.Observe(float64(confidence))
	m.SessionDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) SessionAbandoned() {
	if m == nil {
		return
	}
	m.SessionsAbandoned.Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(route, method string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// ObserveLLMRequest implements llm.Observer.
func (m *Metrics) ObserveLLMRequest(data store.LLMRequestEventData, costUSD float64) {
	if m == nil {
		return
	}
	outcome := "success"
	if !data.Success {
		outcome = "error"
	}
	m.LLMRequests.WithLabelValues(data.Provider, data.Purpose, outcome).Inc()
	m.LLMTokens.WithLabelValues("input").Add(float64(data.InputTokens))
	m.LLMTokens.WithLabelValues("output").Add(float64(data.OutputTokens))
	m.LLMCost.Add(costUSD)
	m.LLMLatency.WithLabelValues(data.Provider).Observe(float64(data.LatencyMs) / 1000)
}
