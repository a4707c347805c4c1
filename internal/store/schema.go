package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	kvTable      = "kv_entries"
	kvName       = "name"
	kvValue      = "value"
	kvUpdatedAt  = "updated_at"
	attemptTable = "attempt_events"
	colID        = "id"
	colSequence  = "sequence"
	colTimestamp = "timestamp"
	colAttemptID = "attempt_id"
	colAction    = "action"
	colQuestions = "question_count"
	colAnswered  = "answered_count"
	colAnswers   = "answers"
)

var (
	// KVEntriesColumns holds the columns for the "kv_entries" table.
	KVEntriesColumns = []*schema.Column{
		{Name: kvName, Type: field.TypeString},
		{Name: kvValue, Type: field.TypeString, Size: 2147483647},
		{Name: kvUpdatedAt, Type: field.TypeTime},
	}
	// KVEntriesTable holds the schema information for the "kv_entries" table.
	KVEntriesTable = &schema.Table{
		Name:       kvTable,
		Columns:    KVEntriesColumns,
		PrimaryKey: []*schema.Column{KVEntriesColumns[0]},
	}

	// AttemptEventsColumns holds the columns for the "attempt_events" table.
	AttemptEventsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeTime},
		{Name: colAttemptID, Type: field.TypeString},
		{Name: colAction, Type: field.TypeString},
		{Name: colQuestions, Type: field.TypeInt, Default: 0},
		{Name: colAnswered, Type: field.TypeInt, Default: 0},
		{Name: colAnswers, Type: field.TypeJSON, Nullable: true},
	}
	// AttemptEventsTable holds the schema information for the "attempt_events" table.
	AttemptEventsTable = &schema.Table{
		Name:       attemptTable,
		Columns:    AttemptEventsColumns,
		PrimaryKey: []*schema.Column{AttemptEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "attemptevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{AttemptEventsColumns[1]},
			},
			{
				Name:    "attemptevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{AttemptEventsColumns[2]},
			},
			{
				Name:    "attemptevent_attempt_id",
				Unique:  false,
				Columns: []*schema.Column{AttemptEventsColumns[3]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		KVEntriesTable,
		AttemptEventsTable,
	}
)
