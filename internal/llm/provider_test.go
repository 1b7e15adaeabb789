package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"first note"`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Err: &ErrRateLimit{}},
	)
	mock.AddResponse(MockResponse{Content: json.RawMessage(`"third note"`)})

	ctx := context.Background()
	resp, err := mock.Generate(ctx, Request{System: "coach", Messages: []Message{{Role: RoleUser, Content: "one"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `"first note"` || resp.Model != "mock" || resp.StopReason != StopEnd {
		t.Fatalf("unexpected first response: %+v", resp)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Fatalf("expected 15 total tokens, got %d", resp.Usage.TotalTokens)
	}

	var rl *ErrRateLimit
	if _, err := mock.Generate(ctx, Request{}); !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
	if resp, err := mock.Generate(ctx, Request{}); err != nil || string(resp.Content) != `"third note"` {
		t.Fatalf("third call: resp=%+v err=%v", resp, err)
	}

	var unavail *ErrProviderUnavailable
	if _, err := mock.Generate(ctx, Request{}); !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable from empty queue, got: %T", err)
	}
	if mock.CallCount() != 4 {
		t.Fatalf("expected 4 calls, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "coach" {
		t.Fatalf("expected system 'coach', got %q", mock.Calls[0].System)
	}
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestMockProvider_StructuredOutput(t *testing.T) {
	schema := &Schema{
		Name: "mock-note",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"headline"},
		},
	}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"message":"no headline"}`)},
		MockResponse{Content: json.RawMessage(`{"headline":`), StopReason: StopMaxTokens},
		MockResponse{Content: json.RawMessage(`{"headline":"ok"}`)},
	)
	req := Request{Schema: schema}

	var inv *ErrInvalidResponse
	if _, err := mock.Generate(context.Background(), req); !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
	var maxTok *ErrMaxTokensExceeded
	if _, err := mock.Generate(context.Background(), req); !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T", err)
	}
	if _, err := mock.Generate(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMockProvider_CanceledContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := mock.Generate(ctx, Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected the call to be recorded, got %d", mock.CallCount())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "coaching-note")
	if p := PurposeFrom(ctx); p != "coaching-note" {
		t.Fatalf("expected 'coaching-note', got %q", p)
	}

	ctx = WithSubject(ctx, "explorer")
	if p := PurposeFrom(ctx); p != "coaching-note" {
		t.Fatalf("subject must keep purpose, got %q", p)
	}
	if s := SubjectFrom(ctx); s != "explorer" {
		t.Fatalf("expected subject 'explorer', got %q", s)
	}
	if s := SubjectFrom(context.Background()); s != "" {
		t.Fatalf("expected empty subject, got %q", s)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openrouter without key",
			cfg:     Config{Provider: "openrouter"},
			wantErr: true,
		},
		{
			name:    "none needs no key",
			cfg:     Config{Provider: "none"},
			wantErr: false,
		},
		{
			name:    "negative retry attempts",
			cfg:     Config{Provider: "mock", Retry: RetryConfig{MaxAttempts: -1}},
			wantErr: true,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
