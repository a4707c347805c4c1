// Package history records attempt boundaries in the attempt log and reads
// them back with scores recomputed against the current bank.
package history

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/quizz/internal/bank"
	"github.com/abhisek/quizz/internal/scoring"
	"github.com/abhisek/quizz/internal/session"
	"github.com/abhisek/quizz/internal/store"
)

// DefaultLimit is the number of entries Recent returns when opts.Limit <= 0.
const DefaultLimit = 20

const writeTimeout = 5 * time.Second

// Recorder appends submit and retake events. It implements session.Recorder;
// write failures are logged and do not reach the session.
type Recorder struct {
	events store.EventRepo
	bank   *bank.Bank
	log    *zap.Logger
}

var _ session.Recorder = (*Recorder)(nil)

// NewRecorder returns a Recorder writing to events. A nil logger is allowed.
func NewRecorder(events store.EventRepo, b *bank.Bank, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{events: events, bank: b, log: log}
}

func (r *Recorder) RecordSubmit(st session.State) {
	r.append(store.ActionSubmit, st)
}

func (r *Recorder) RecordRetake(previous session.State) {
	r.append(store.ActionRetake, previous)
}

func (r *Recorder) append(action string, st session.State) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	err := r.events.AppendAttempt(ctx, store.AttemptEventData{
		AttemptID:     st.AttemptID,
		Action:        action,
		QuestionCount: r.bank.Count(),
		Answers:       st.Answers,
	})
	if err != nil {
		r.log.Warn("record attempt",
			zap.String("action", action),
			zap.String("attempt_id", st.AttemptID),
			zap.Error(err))
	}
}

// Entry is one attempt event with its score.
type Entry struct {
	Event  store.AttemptEvent
	Report scoring.Report
}

// Recent returns the events matching opts, newest first, each scored
// against b.
func Recent(ctx context.Context, events store.EventRepo, b *bank.Bank, opts store.QueryOpts) ([]Entry, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	evs, err := events.QueryAttempts(ctx, opts)
	if err != nil {
		return nil, err
	}

	questions := b.All()
	entries := make([]Entry, 0, len(evs))
	for _, e := range evs {
		entries = append(entries, Entry{
			Event:  e,
			Report: scoring.Score(questions, e.Answers),
		})
	}
	return entries, nil
}

// Stale reports whether the event was recorded against a bank of a
// different size, in which case its recomputed score may be misleading.
func (e Entry) Stale() bool {
	return e.Event.QuestionCount != e.Report.Total
}
