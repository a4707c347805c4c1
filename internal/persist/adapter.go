// Package persist loads and saves session state through a key-value store.
package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/abhisek/quizz/internal/session"
)

const (
	// KeyPrefix is shared by every version of the state key.
	KeyPrefix = "quiz.state."

	// Version is the current state schema version. Bump it on an
	// incompatible change to State's JSON form.
	Version = "v1"

	// Key holds the current state.
	Key = KeyPrefix + Version

	defaultTimeout = 5 * time.Second
)

// ErrShape is returned by Decode when the stored value is JSON but not a
// session state.
var ErrShape = errors.New("stored state has the wrong shape")

// Adapter reads and writes the session state slot. Load and Save never fail
// the caller.
type Adapter struct {
	kv      KV
	log     *zap.Logger
	timeout time.Duration
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the adapter's logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l
		}
	}
}

// WithTimeout bounds each storage call.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// New returns an Adapter over kv.
func New(kv KV, opts ...Option) *Adapter {
	a := &Adapter{kv: kv, log: zap.NewNop(), timeout: defaultTimeout}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load reads the stored state. It reports false when the key is missing or
// the value is unreadable; the caller should start fresh. The answers slice
// is returned at its stored length and is not checked against the bank.
func (a *Adapter) Load() (session.State, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	raw, ok, err := a.kv.Get(ctx, Key)
	if err != nil {
		a.log.Warn("read stored state", zap.String("key", Key), zap.Error(err))
		return session.State{}, false
	}
	if !ok {
		a.log.Debug("no stored state", zap.String("key", Key))
		return session.State{}, false
	}

	st, err := Decode([]byte(raw))
	if err != nil {
		a.log.Warn("discarding stored state", zap.String("key", Key), zap.Error(err))
		return session.State{}, false
	}
	return st, true
}

// Save writes st under Key, overwriting any previous value. Failures are
// logged; the in-memory session stays authoritative.
func (a *Adapter) Save(st session.State) {
	data, err := json.Marshal(st)
	if err != nil {
		a.log.Error("encode state", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.kv.Put(ctx, Key, string(data)); err != nil {
		a.log.Warn("save state", zap.String("key", Key), zap.Error(err))
	}
}

// PruneStale deletes state keys whose version is older than Version. Keys
// with an unparseable or newer version are left alone. Returns the deleted
// keys.
func (a *Adapter) PruneStale(ctx context.Context) ([]string, error) {
	keys, err := a.kv.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list state keys: %w", err)
	}

	var pruned []string
	for _, k := range keys {
		v := strings.TrimPrefix(k, KeyPrefix)
		if !semver.IsValid(v) || semver.Compare(v, Version) >= 0 {
			continue
		}
		if err := a.kv.Delete(ctx, k); err != nil {
			return pruned, fmt.Errorf("delete %s: %w", k, err)
		}
		a.log.Info("pruned stale state key", zap.String("key", k))
		pruned = append(pruned, k)
	}
	return pruned, nil
}

// Decode parses a stored value. The value must be a JSON object whose
// "answers" is an array and whose "currentIndex" is a number. Answer
// elements that are not integers become absent, a non-boolean "finished"
// reads as false, and a non-string "attemptId" reads as empty.
func Decode(data []byte) (session.State, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return session.State{}, fmt.Errorf("parse state: %w", err)
	}
	if fields == nil {
		return session.State{}, fmt.Errorf("%w: not an object", ErrShape)
	}

	var st session.State

	idx, ok := number(fields["currentIndex"])
	if !ok {
		return session.State{}, fmt.Errorf("%w: currentIndex is not a number", ErrShape)
	}
	st.CurrentIndex = idx

	raw := bytes.TrimSpace(fields["answers"])
	if len(raw) == 0 || raw[0] != '[' {
		return session.State{}, fmt.Errorf("%w: answers is not an array", ErrShape)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return session.State{}, fmt.Errorf("%w: answers: %v", ErrShape, err)
	}
	st.Answers = make([]*int, len(items))
	for i, item := range items {
		if v, ok := integer(item); ok {
			st.Answers[i] = &v
		}
	}

	if raw, ok := fields["finished"]; ok {
		_ = json.Unmarshal(raw, &st.Finished)
	}
	if raw, ok := fields["attemptId"]; ok {
		_ = json.Unmarshal(raw, &st.AttemptID)
	}
	return st, nil
}

// number reads a JSON number, truncating toward zero and saturating at
// ±MaxInt32. The session clamps the result to the bank.
func number(raw json.RawMessage) (int, bool) {
	f, ok := jsonFloat(raw)
	if !ok {
		return 0, false
	}
	f = max(-math.MaxInt32, min(f, math.MaxInt32))
	return int(f), true
}

// integer reads a JSON number with no fractional part within ±MaxInt32.
func integer(raw json.RawMessage) (int, bool) {
	f, ok := jsonFloat(raw)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func jsonFloat(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}
