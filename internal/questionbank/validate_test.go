package questionbank

import (
	"errors"
	"strings"
	"testing"
)

func opts(ids ...string) []Option {
	out := make([]Option, len(ids))
	for i, id := range ids {
		out[i] = Option{ID: id, Text: id, Weights: Weights{"openness": 1}}
	}
	return out
}

func core(id string, order int) Question {
	return Question{ID: id, Kind: KindCore, Order: order, Options: opts("A", "B")}
}

func followup(id string, order int, cond Condition) Question {
	return Question{ID: id, Kind: KindFollowup, Order: order, Options: opts("A", "B"), Condition: cond}
}

func TestValidate_SeedBankPasses(t *testing.T) {
	if err := validateQuestions(seedQuestions()); err != nil {
		t.Fatalf("seed bank validation failed: %v", err)
	}
}

func TestValidateQuestions(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
		want      string
	}{
		{
			name:      "empty bank",
			questions: nil,
			want:      "no questions",
		},
		{
			name:      "duplicate question id",
			questions: []Question{core("q1", 1), core("q1", 2)},
			want:      `duplicate question ID: "q1"`,
		},
		{
			name:      "empty question id",
			questions: []Question{core("q1", 1), core("", 2)},
			want:      "empty ID",
		},
		{
			name: "duplicate option id",
			questions: []Question{
				{ID: "q1", Kind: KindCore, Order: 1, Options: opts("A", "A")},
			},
			want: `duplicate option ID "A"`,
		},
		{
			name: "no options",
			questions: []Question{
				{ID: "q1", Kind: KindCore, Order: 1},
			},
			want: "no options",
		},
		{
			name:      "followup without condition",
			questions: []Question{core("q1", 1), followup("f1", 1, nil)},
			want:      "empty condition",
		},
		{
			name:      "constraint without bounds",
			questions: []Question{core("q1", 1), followup("f1", 1, Condition{"openness": {}})},
			want:      "needs min or max",
		},
		{
			name:      "min greater than max",
			questions: []Question{core("q1", 1), followup("f1", 1, Condition{"openness": Between(5, 2)})},
			want:      "min 5 > max 2",
		},
		{
			name: "core with condition",
			questions: []Question{
				{ID: "q1", Kind: KindCore, Order: 1, Options: opts("A"), Condition: Condition{"openness": AtLeast(1)}},
			},
			want: "must not have a condition",
		},
		{
			name:      "duplicate order within kind",
			questions: []Question{core("q1", 1), core("q2", 1)},
			want:      "share order 1",
		},
		{
			name:      "no core questions",
			questions: []Question{followup("f1", 1, Condition{"openness": AtLeast(1)})},
			want:      "no core questions",
		},
		{
			name: "unknown kind",
			questions: []Question{
				core("q1", 1),
				{ID: "q2", Kind: "bonus", Order: 2, Options: opts("A")},
			},
			want: `unknown kind "bonus"`,
		},
		{
			name: "option weights scoreGap",
			questions: []Question{
				{ID: "q1", Kind: KindCore, Order: 1, Options: []Option{{ID: "A", Weights: Weights{ScoreGap: 1}}}},
			},
			want: "derived dimension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateQuestions(tt.questions)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %q, got: %v", tt.want, err)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected *ConfigError, got %T", err)
			}
		})
	}
}

func TestValidateQuestions_ReportsAllProblems(t *testing.T) {
	questions := []Question{
		core("q1", 1),
		core("q1", 2),
		followup("f1", 1, nil),
	}
	err := validateQuestions(questions)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if len(cfgErr.Problems) != 2 {
		t.Errorf("got %d problems, want 2: %v", len(cfgErr.Problems), cfgErr.Problems)
	}
}

func TestValidateQuestions_NeutralOptionAllowed(t *testing.T) {
	questions := []Question{
		{ID: "q1", Kind: KindCore, Order: 1, Options: []Option{
			{ID: "A", Weights: Weights{"openness": 2}},
			{ID: "B"},
			{ID: "C", Weights: Weights{"openness": 0}},
		}},
	}
	if err := validateQuestions(questions); err != nil {
		t.Fatalf("neutral options should be legal: %v", err)
	}
}
