package llm

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestStatusError(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		status int
		check  func(error) bool
		name   string
	}{
		{http.StatusTooManyRequests, func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) }, "rate limit"},
		{http.StatusInternalServerError, func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }, "unavailable"},
		{http.StatusRequestTimeout, func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }, "unavailable"},
		{0, func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }, "unavailable"},
		{http.StatusUnauthorized, func(err error) bool { var e *ErrRequestRejected; return errors.As(err, &e) }, "rejected"},
		{http.StatusBadRequest, func(err error) bool { var e *ErrRequestRejected; return errors.As(err, &e) }, "rejected"},
	}
	for _, tt := range tests {
		err := statusError(tt.status, nil, cause)
		if !tt.check(err) {
			t.Errorf("status %d: got %T, want %s", tt.status, err, tt.name)
		}
		if !errors.Is(err, cause) {
			t.Errorf("status %d: cause not wrapped", tt.status)
		}
	}
}

func TestStatusError_RetryAfter(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "7")
	var rl *ErrRateLimit
	if !errors.As(statusError(http.StatusTooManyRequests, h, nil), &rl) {
		t.Fatal("expected ErrRateLimit")
	}
	if rl.RetryAfter != 7*time.Second {
		t.Fatalf("RetryAfter = %s, want 7s", rl.RetryAfter)
	}

	h.Set("Retry-After", "Wed, 21 Oct 2015 07:28:00 GMT")
	if got := retryAfter(h); got != 0 {
		t.Fatalf("http-date Retry-After = %s, want 0", got)
	}
}

func TestFinish(t *testing.T) {
	schema := &Schema{
		Name: "test",
		Definition: map[string]any{
			"type":       "object",
			"properties": map[string]any{"ok": map[string]any{"type": "boolean"}},
			"required":   []any{"ok"},
		},
	}

	resp, err := finish(Request{}, completion{
		content: json.RawMessage(`plain text`),
		usage:   Usage{InputTokens: 3, OutputTokens: 4},
		model:   "m",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StopReason != StopEnd || resp.Usage.TotalTokens != 7 || resp.Model != "m" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	_, err = finish(Request{Schema: schema}, completion{content: json.RawMessage(`{"ok":`), stop: StopMaxTokens})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T", err)
	}

	_, err = finish(Request{Schema: schema}, completion{content: json.RawMessage(`{}`)})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}

	resp, err = finish(Request{Schema: schema}, completion{content: json.RawMessage(`{"ok":true}`), stop: StopEnd})
	if err != nil || string(resp.Content) != `{"ok":true}` {
		t.Fatalf("valid structured output: resp=%+v err=%v", resp, err)
	}
}
