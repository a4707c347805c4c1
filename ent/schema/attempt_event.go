package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AttemptEvent records a submit or a retake of one quiz attempt.
type AttemptEvent struct {
	ent.Schema
}

func (AttemptEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AttemptEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("attempt_id").
			NotEmpty().
			Immutable().
			Comment("Groups the events of one attempt"),
		field.Enum("action").
			Values("submit", "retake").
			Immutable(),
		field.Int("question_count").
			Default(0).
			Comment("Bank size when the event was recorded"),
		field.Int("answered_count").
			Default(0),
		field.JSON("answers", []*int{}).
			Optional().
			Comment("Selected option per question; null means absent"),
	}
}

func (AttemptEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("attempt_id"),
	}
}
