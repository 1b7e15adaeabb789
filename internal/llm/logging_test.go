package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/learntype/internal/store"
)

type fakeRecorder struct {
	events []store.LLMRequestEventData
	err    error
}

func (f *fakeRecorder) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	f.events = append(f.events, data)
	return f.err
}

type fakeObserver struct {
	events []store.LLMRequestEventData
	costs  []float64
}

func (f *fakeObserver) ObserveLLMRequest(data store.LLMRequestEventData, cost float64) {
	f.events = append(f.events, data)
	f.costs = append(f.costs, cost)
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"headline":"hi"}`),
		Usage:   Usage{InputTokens: 100, OutputTokens: 50},
	})
	rec := &fakeRecorder{}
	obs := &fakeObserver{}
	p := WithLogging(mock, "mock", Deps{Recorder: rec, Observer: obs})

	ctx := WithPurpose(context.Background(), "coaching-note")
	_, err := p.Generate(ctx, Request{
		System:   "coach",
		Messages: []Message{{Role: RoleUser, Content: "note please"}},
		Schema:   &Schema{Name: "coaching-note", Definition: map[string]any{"type": "object"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 recorded event, got %d", len(rec.events))
	}
	e := rec.events[0]
	if e.Provider != "mock" || e.Model != "mock" || e.Purpose != "coaching-note" || !e.Success {
		t.Errorf("event = %+v", e)
	}
	if e.InputTokens != 100 || e.OutputTokens != 50 {
		t.Errorf("tokens = %d/%d", e.InputTokens, e.OutputTokens)
	}
	for _, want := range []string{"[system]\ncoach", "[user]\nnote please", "[schema: coaching-note]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}
	if e.ResponseBody != `{"headline":"hi"}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
	if len(obs.events) != 1 || obs.costs[0] != 0 {
		t.Errorf("observer got %d events, cost %v", len(obs.events), obs.costs)
	}
}

func TestLoggingProvider_RecordsFailureAndSurvivesRecorderError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: time.Second, Err: errors.New("slow down")}})
	rec := &fakeRecorder{err: errors.New("disk full")}
	p := WithLogging(mock, "mock", Deps{Recorder: rec, Logger: zap.New(core)})

	_, err := p.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit passed through, got %T", err)
	}
	if len(rec.events) != 1 || rec.events[0].Success || rec.events[0].ErrorMessage == "" {
		t.Fatalf("expected failed event, got %+v", rec.events)
	}
	if rec.events[0].Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown", rec.events[0].Purpose)
	}
	if logs.FilterMessage("llm request failed").Len() != 1 {
		t.Error("expected a failure log entry")
	}
	if logs.FilterMessage("failed to record llm request event").Len() != 1 {
		t.Error("expected a recorder failure log entry")
	}
}

func TestLoggingProvider_NilDeps(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", Deps{})
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	got := c.Cost(1_000_000, 1_000_000)
	if math.Abs(got-0.75) > 1e-9 {
		t.Errorf("cost = %v, want 0.75", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Error("expected nil for unknown model")
	}
}
