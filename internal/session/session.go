package session

import (
	"go.uber.org/zap"

	"github.com/abhisek/quizz/internal/bank"
	"github.com/abhisek/quizz/internal/export"
	"github.com/abhisek/quizz/internal/scoring"
)

// Saver persists the session after every mutation. Implementations must not
// fail the caller; persistence is best-effort.
type Saver interface {
	Save(State)
}

// Recorder observes attempt boundaries for the attempt log.
type Recorder interface {
	// RecordSubmit is called after the state has been marked finished.
	RecordSubmit(State)

	// RecordRetake is called with the state that a retake discarded.
	RecordRetake(previous State)
}

// Option configures a Session.
type Option func(*Session)

// WithSaver sets the persistence target.
func WithSaver(s Saver) Option {
	return func(sess *Session) { sess.saver = s }
}

// WithRecorder sets the attempt log observer.
func WithRecorder(r Recorder) Option {
	return func(sess *Session) { sess.recorder = r }
}

// WithLogger sets the logger used for transition diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(sess *Session) {
		if l != nil {
			sess.log = l
		}
	}
}

// Session owns the state of one quiz attempt and exposes its transitions.
// Every mutator clamps or ignores bad input instead of failing, and every
// mutator persists through the Saver before returning.
//
// A Session is driven by a single event loop and is not safe for
// concurrent use.
type Session struct {
	bank     *bank.Bank
	state    State
	saver    Saver
	recorder Recorder
	log      *zap.Logger
}

// New starts a fresh session over b.
func New(b *bank.Bank, opts ...Option) *Session {
	s := newSession(b, opts)
	s.state = Fresh(b.Count())
	return s
}

// Restore hydrates a session from a previously persisted state, repairing
// it against b. The repaired state is saved when repair changed anything.
func Restore(b *bank.Bank, st State, opts ...Option) *Session {
	s := newSession(b, opts)
	repaired, changed := normalize(st, b)
	s.state = repaired
	if changed {
		s.log.Info("repaired restored session",
			zap.Int("stored_slots", len(st.Answers)),
			zap.Int("bank_size", b.Count()),
			zap.Int("current_index", repaired.CurrentIndex))
		s.persist()
	}
	return s
}

func newSession(b *bank.Bank, opts []Option) *Session {
	s := &Session{bank: b, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bank returns the question bank the session runs over.
func (s *Session) Bank() *bank.Bank {
	return s.bank
}

// Count returns the number of questions.
func (s *Session) Count() int {
	return s.bank.Count()
}

// CurrentIndex returns the position of the question on screen.
func (s *Session) CurrentIndex() int {
	return s.state.CurrentIndex
}

// Current returns the question on screen. It reports false only for an
// empty bank.
func (s *Session) Current() (bank.Question, bool) {
	return s.bank.Get(s.state.CurrentIndex)
}

// Answer returns the option selected for question i.
func (s *Session) Answer(i int) (int, bool) {
	if i < 0 || i >= len(s.state.Answers) || s.state.Answers[i] == nil {
		return 0, false
	}
	return *s.state.Answers[i], true
}

// AnsweredCount returns the number of answered questions.
func (s *Session) AnsweredCount() int {
	return s.state.AnsweredCount()
}

// Finished reports whether the attempt has been submitted.
func (s *Session) Finished() bool {
	return s.state.Finished
}

// Phase returns the coarse session state.
func (s *Session) Phase() Phase {
	if s.state.Finished {
		return PhaseCompleted
	}
	return PhaseInProgress
}

// AttemptID returns the identifier of the current attempt.
func (s *Session) AttemptID() string {
	return s.state.AttemptID
}

// State returns a copy of the session state.
func (s *Session) State() State {
	return s.state.Clone()
}

// IsFirst reports whether the current question is the first one.
func (s *Session) IsFirst() bool {
	return s.state.CurrentIndex == 0
}

// IsLast reports whether the current question is the last one.
func (s *Session) IsLast() bool {
	return s.state.CurrentIndex >= s.Count()-1
}

// SelectOption records option for question q, replacing any earlier choice.
// Out-of-range indices are ignored. Answers may still change after submit.
// Reports whether the selection was applied.
func (s *Session) SelectOption(q, option int) bool {
	question, ok := s.bank.Get(q)
	if !ok || !question.HasOption(option) {
		s.log.Debug("ignored selection",
			zap.Int("question", q), zap.Int("option", option))
		return false
	}

	s.state.Answers[q] = &option
	s.log.Debug("selected option",
		zap.Int("question", q), zap.Int("option", option), zap.Bool("finished", s.state.Finished))
	s.persist()
	return true
}

// Select records option for the current question.
func (s *Session) Select(option int) bool {
	return s.SelectOption(s.state.CurrentIndex, option)
}

// GoTo moves to question i, clamped to the bank.
func (s *Session) GoTo(i int) {
	s.state.CurrentIndex = clamp(i, s.Count())
	s.persist()
}

// Next moves forward one question; a no-op on the last question.
func (s *Session) Next() {
	s.GoTo(s.state.CurrentIndex + 1)
}

// Prev moves back one question; a no-op on the first question.
func (s *Session) Prev() {
	s.GoTo(s.state.CurrentIndex - 1)
}

// NextUnanswered moves to the first absent slot after the current
// question, wrapping around. Reports false when every slot is answered.
func (s *Session) NextUnanswered() bool {
	n := s.Count()
	for step := 1; step <= n; step++ {
		i := (s.state.CurrentIndex + step) % n
		if s.state.Answers[i] == nil {
			s.GoTo(i)
			return true
		}
	}
	return false
}

// Submit marks the attempt finished and returns its score. Partial and
// empty submissions are allowed; submitting again just re-scores. Only
// the first submit of an attempt reaches the recorder.
func (s *Session) Submit() scoring.Report {
	first := !s.state.Finished
	s.state.Finished = true
	s.persist()

	report := s.Report()
	s.log.Info("submitted attempt",
		zap.String("attempt_id", s.state.AttemptID),
		zap.Int("correct", report.CorrectCount),
		zap.Int("answered", report.AnsweredCount),
		zap.Int("total", report.Total))

	if first && s.recorder != nil {
		s.recorder.RecordSubmit(s.state.Clone())
	}
	return report
}

// Retake discards the attempt and starts over from the first question.
func (s *Session) Retake() {
	previous := s.state
	s.state = Fresh(s.Count())
	s.persist()

	s.log.Info("retake",
		zap.String("previous_attempt_id", previous.AttemptID),
		zap.String("attempt_id", s.state.AttemptID))

	if s.recorder != nil {
		s.recorder.RecordRetake(previous)
	}
}

// Report scores the current answers. It does not change the session.
func (s *Session) Report() scoring.Report {
	return scoring.Score(s.bank.All(), s.state.Answers)
}

// CSV exports the current answers, regardless of completion.
func (s *Session) CSV(sep export.LineEnding) string {
	return export.Encode(export.Rows(s.bank.All(), s.state.Answers), sep)
}

func (s *Session) persist() {
	if s.saver == nil {
		return
	}
	s.saver.Save(s.state.Clone())
}
