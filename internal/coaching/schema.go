package coaching

import "github.com/abhisek/learntype/internal/llm"

// NoteSchema defines the JSON schema for LLM coaching-note responses.
var NoteSchema = &llm.Schema{
	Name:        "coaching-note",
	Description: "A short personalised study note for a learner of a diagnosed learning type",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"maxLength":   80,
				"description": "One encouraging line addressed to the learner",
			},
			"message": map[string]any{
				"type":        "string",
				"maxLength":   600,
				"description": "Two to four sentences in the coach voice described in the prompt",
			},
			"next_steps": map[string]any{
				"type":        "array",
				"minItems":    1,
				"maxItems":    4,
				"items":       map[string]any{"type": "string"},
				"description": "Concrete actions the learner can take this week",
			},
		},
		"required":             []any{"headline", "message", "next_steps"},
		"additionalProperties": false,
	},
}
