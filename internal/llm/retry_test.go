package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

var (
	okNote  = MockResponse{Content: json.RawMessage(`{"ok":true}`)}
	down    = MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
	garbled = MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}
)

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantCalls int
		wantErr   bool
	}{
		{"first attempt succeeds", []MockResponse{okNote}, 1, false},
		{"transient then success", []MockResponse{down, okNote}, 2, false},
		{"all attempts fail", []MockResponse{down, down, down, okNote}, 3, true},
		{"rate limit waits RetryAfter", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, okNote}, 2, false},
		{"invalid response retried once", []MockResponse{garbled, garbled, okNote}, 2, true},
		{"invalid then transient then success", []MockResponse{garbled, down, okNote}, 3, false},
		{"max tokens not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, okNote}, 1, true},
		{"rejected not retried", []MockResponse{{Err: &ErrRequestRejected{Status: 401, Err: errors.New("bad key")}}, okNote}, 1, true},
		{"plain error treated as transient", []MockResponse{{Err: errors.New("connection reset")}, okNote}, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if string(resp.Content) != `{"ok":true}` {
					t.Fatalf("unexpected content: %s", resp.Content)
				}
			}
			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("expected %d calls, got %d", tt.wantCalls, mock.CallCount())
			}
		})
	}
}

func TestRetry_ContextCancelledDuringBackoff(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: time.Hour}}, okNote)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := WithRetry(mock, retryConfig()).Generate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("backoff ignored cancellation")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(down, okNote)
	p := WithRetry(mock, RetryConfig{})
	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestRetry_BackoffCapped(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 10 * time.Millisecond, MaxWait: 50 * time.Millisecond, Multiplier: 10}}
	for attempt := range 5 {
		wait := r.backoff(attempt, errors.New("x"))
		if wait < 0 || wait > 60*time.Millisecond {
			t.Fatalf("attempt %d: wait %s outside [0, 60ms]", attempt, wait)
		}
	}
}
