package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// KVEntry is a string value stored under a unique name.
type KVEntry struct {
	ent.Schema
}

func (KVEntry) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("name").
			NotEmpty().
			Immutable(),
		field.Text("value"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}
