package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":  map[string]any{"type": "string"},
			"level": map[string]any{"type": "integer"},
			"style": map[string]any{"type": "string", "enum": []any{"visual", "verbal", "kinesthetic"}},
			"scores": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"name", "level"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["name"].Type != "STRING" {
		t.Fatalf("expected STRING for name, got %s", schema.Properties["name"].Type)
	}
	if schema.Properties["level"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for level, got %s", schema.Properties["level"].Type)
	}
	if len(schema.Properties["style"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["style"].Enum))
	}
	if schema.Properties["scores"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for scores, got %s", schema.Properties["scores"].Type)
	}
	if schema.Properties["scores"].Items.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for scores items, got %s", schema.Properties["scores"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiSchema_ArrayBoundsAndStringRequired(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"steps": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 4,
				"items":    map[string]any{"type": "string"},
			},
			"odd": map[string]any{"type": "null"},
		},
		"required": []string{"steps"},
	}

	schema := buildGeminiSchema(def)

	steps := schema.Properties["steps"]
	if steps.MinItems == nil || *steps.MinItems != 1 {
		t.Fatalf("expected minItems 1, got %v", steps.MinItems)
	}
	if steps.MaxItems == nil || *steps.MaxItems != 4 {
		t.Fatalf("expected maxItems 4, got %v", steps.MaxItems)
	}
	if schema.Properties["odd"].Type != "STRING" {
		t.Fatalf("expected unknown type to fall back to STRING, got %s", schema.Properties["odd"].Type)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "steps" {
		t.Fatalf("expected required [steps], got %v", schema.Required)
	}
}
