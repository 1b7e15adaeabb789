package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// DiagnosisResult holds the final classification of a completed session.
// Unlike the event entities it is written once per session.
type DiagnosisResult struct {
	ent.Schema
}

func (DiagnosisResult) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Unique().
			NotEmpty(),
		field.String("user_id").
			Default(""),
		field.String("primary_type"),
		field.String("secondary_type").
			Default("").
			Comment("Empty when the result has no secondary type"),
		field.Int("confidence").
			Range(0, 100),
		field.Int("answered_count"),
		field.Int64("elapsed_ms"),
		field.Time("completed_at"),
		field.JSON("data", map[string]any{}).
			Comment("Full result document including trait scores and candidates"),
	}
}

func (DiagnosisResult) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "completed_at"),
	}
}
