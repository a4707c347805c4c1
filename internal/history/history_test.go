package history

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/quizz/internal/bank"
	"github.com/abhisek/quizz/internal/session"
	"github.com/abhisek/quizz/internal/store"
)

func testBank(t *testing.T, n int) *bank.Bank {
	t.Helper()
	qs := make([]bank.Question, n)
	for i := range qs {
		qs[i] = bank.Question{
			ID:      i + 1,
			Prompt:  fmt.Sprintf("Q%d", i+1),
			Options: []string{"a", "b"},
			Correct: 0,
		}
	}
	b, err := bank.New(qs)
	require.NoError(t, err)
	return b
}

func openEvents(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "quizz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

// failingEvents rejects every append.
type failingEvents struct{ store.EventRepo }

func (failingEvents) AppendAttempt(context.Context, store.AttemptEventData) error {
	return errors.New("database is locked")
}

func TestRecorder_SubmitAndRetake(t *testing.T) {
	b := testBank(t, 4)
	events := openEvents(t)
	rec := NewRecorder(events, b, zaptest.NewLogger(t))

	sess := session.New(b, session.WithRecorder(rec))
	sess.SelectOption(0, 0)
	sess.SelectOption(1, 1)
	sess.SelectOption(2, 0)
	first := sess.AttemptID()
	sess.Submit()
	sess.Retake()
	sess.SelectOption(3, 0)
	sess.Submit()

	entries, err := Recent(context.Background(), events, b, store.QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, store.ActionSubmit, entries[0].Event.Action)
	assert.Equal(t, sess.AttemptID(), entries[0].Event.AttemptID)
	assert.Equal(t, 1, entries[0].Report.CorrectCount)
	assert.Equal(t, 1, entries[0].Report.AnsweredCount)

	assert.Equal(t, store.ActionRetake, entries[1].Event.Action)
	assert.Equal(t, first, entries[1].Event.AttemptID)

	assert.Equal(t, store.ActionSubmit, entries[2].Event.Action)
	assert.Equal(t, first, entries[2].Event.AttemptID)
	assert.Equal(t, 2, entries[2].Report.CorrectCount)
	assert.Equal(t, 3, entries[2].Report.AnsweredCount)
	assert.Equal(t, 50, entries[2].Report.Percent)
	assert.False(t, entries[2].Stale())
}

func TestRecent_Limit(t *testing.T) {
	b := testBank(t, 2)
	events := openEvents(t)
	rec := NewRecorder(events, b, nil)

	for i := 0; i < 5; i++ {
		rec.RecordSubmit(session.Fresh(2))
	}

	entries, err := Recent(context.Background(), events, b, store.QueryOpts{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	entries, err = Recent(context.Background(), events, b, store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestRecent_Filters(t *testing.T) {
	b := testBank(t, 2)
	events := openEvents(t)
	sess := session.New(b, session.WithRecorder(NewRecorder(events, b, nil)))
	first := sess.AttemptID()
	sess.Submit()
	sess.Retake()
	sess.Submit()

	entries, err := Recent(context.Background(), events, b, store.QueryOpts{Action: store.ActionRetake})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, first, entries[0].Event.AttemptID)

	entries, err = Recent(context.Background(), events, b, store.QueryOpts{AttemptID: sess.AttemptID()})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, store.ActionSubmit, entries[0].Event.Action)

	entries, err = Recent(context.Background(), events, b, store.QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecent_StaleBank(t *testing.T) {
	events := openEvents(t)
	NewRecorder(events, testBank(t, 3), nil).RecordSubmit(session.Fresh(3))

	entries, err := Recent(context.Background(), events, testBank(t, 5), store.QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Stale())
	assert.Equal(t, 5, entries[0].Report.Total)
}

func TestRecorder_FailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rec := NewRecorder(failingEvents{}, testBank(t, 1), zap.New(core))

	assert.NotPanics(t, func() { rec.RecordSubmit(session.Fresh(1)) })
	assert.Equal(t, 1, logs.FilterMessage("record attempt").Len())
}
