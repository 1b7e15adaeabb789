package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Contribution is the serialized per-trait delta of one answer.
type Contribution struct {
	Trait string `json:"trait"`
	Delta int    `json:"delta"`
}

// AnswerEvent records one accepted answer.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty(),
		field.String("question_id").
			NotEmpty(),
		field.String("option_id").
			NotEmpty(),
		field.Int("answer_seq").
			NonNegative().
			Comment("Position of the answer within the session"),
		field.JSON("contributions", []Contribution{}).
			Optional().
			Comment("Trait deltas applied by this answer"),
		field.Int64("response_ms").
			Default(0),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id", "answer_seq").Unique(),
	}
}
