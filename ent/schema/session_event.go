package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records quiz session lifecycle events.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("user_id").
			Default("").
			Comment("Nickname the session was started for"),
		field.String("action").
			NotEmpty().
			Comment("start, complete or abandon"),
		field.String("bank_version").
			Default("").
			Comment("Question bank version the session ran against"),
		field.Int("answered").
			Default(0).
			Comment("Answers recorded so far"),
		field.Int64("duration_ms").
			Default(0).
			Comment("Elapsed time since start (complete and abandon only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
