package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	Action    string    // exact action match ("" = any)
	AttemptID string    // exact attempt match ("" = any)
}

// KVRepo is a string key-value table.
type KVRepo interface {
	// Get returns the value stored under key. The bool is false when the
	// key is absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists the keys beginning with prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Attempt actions.
const (
	ActionSubmit = "submit"
	ActionRetake = "retake"
)

// AttemptEventData captures one attempt boundary. Answers holds one slot per
// question in bank order; nil means absent.
type AttemptEventData struct {
	AttemptID     string
	Action        string
	QuestionCount int
	Answers       []*int
}

// AttemptEvent is a stored attempt boundary.
type AttemptEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// AnsweredCount returns the number of populated answer slots.
func (e AttemptEvent) AnsweredCount() int {
	n := 0
	for _, a := range e.Answers {
		if a != nil {
			n++
		}
	}
	return n
}

// EventRepo provides append and query access to the attempt log.
type EventRepo interface {
	// AppendAttempt records a submit or retake.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// QueryAttempts returns matching events, newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error)
}
