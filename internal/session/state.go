package session

import (
	"slices"

	"github.com/google/uuid"

	"github.com/abhisek/quizz/internal/bank"
)

// Phase is the coarse state of a session.
type Phase int

const (
	PhaseInProgress Phase = iota // answering questions
	PhaseCompleted               // submitted; results available
)

func (p Phase) String() string {
	if p == PhaseCompleted {
		return "completed"
	}
	return "in-progress"
}

// State is the persisted form of a session.
type State struct {
	// CurrentIndex is the bank position of the question on screen.
	CurrentIndex int `json:"currentIndex"`

	// Answers holds one slot per question in bank order; nil means absent.
	Answers []*int `json:"answers"`

	// Finished is set by submit and cleared only by retake.
	Finished bool `json:"finished"`

	// AttemptID groups the events of one attempt in the attempt log.
	AttemptID string `json:"attemptId,omitempty"`
}

// newAttemptID is replaced in tests that need stable IDs.
var newAttemptID = uuid.NewString

// Fresh returns the initial state for a bank of count questions.
func Fresh(count int) State {
	if count < 0 {
		count = 0
	}
	return State{
		CurrentIndex: 0,
		Answers:      make([]*int, count),
		Finished:     false,
		AttemptID:    newAttemptID(),
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Answers = make([]*int, len(s.Answers))
	for i, a := range s.Answers {
		if a != nil {
			v := *a
			out.Answers[i] = &v
		}
	}
	return out
}

// AnsweredCount returns the number of populated slots.
func (s State) AnsweredCount() int {
	n := 0
	for _, a := range s.Answers {
		if a != nil {
			n++
		}
	}
	return n
}

// normalize repairs a hydrated state against b: answers are resized to the
// bank (truncated or padded with absent slots), indices the question does
// not have are dropped, the position is clamped, and a missing attempt ID is
// assigned. Reports whether anything changed.
func normalize(s State, b *bank.Bank) (State, bool) {
	out := s.Clone()
	changed := false
	count := b.Count()

	if len(out.Answers) != count {
		resized := make([]*int, count)
		copy(resized, out.Answers)
		out.Answers = resized
		changed = true
	}

	for i, a := range out.Answers {
		if a == nil {
			continue
		}
		q, _ := b.Get(i)
		if !q.HasOption(*a) {
			out.Answers[i] = nil
			changed = true
		}
	}

	if idx := clamp(out.CurrentIndex, count); idx != out.CurrentIndex {
		out.CurrentIndex = idx
		changed = true
	}

	if out.AttemptID == "" {
		out.AttemptID = newAttemptID()
		changed = true
	}

	return out, changed
}

// clamp bounds i to [0, count-1]; an empty bank pins it to 0.
func clamp(i, count int) int {
	if count <= 0 || i < 0 {
		return 0
	}
	return min(i, count-1)
}

// Equal reports whether s and o describe the same session.
func (s State) Equal(o State) bool {
	return s.CurrentIndex == o.CurrentIndex &&
		s.Finished == o.Finished &&
		s.AttemptID == o.AttemptID &&
		equalAnswers(s.Answers, o.Answers)
}

func equalAnswers(a, b []*int) bool {
	return slices.EqualFunc(a, b, func(x, y *int) bool {
		if x == nil || y == nil {
			return x == y
		}
		return *x == *y
	})
}
