package bank

import "slices"

// Question is a single multiple-choice question.
type Question struct {
	// ID is unique within a bank and stable across releases.
	ID int `yaml:"id" json:"id"`

	// Prompt is the question text shown to the player.
	Prompt string `yaml:"prompt" json:"prompt"`

	// Options are the answer choices in display order.
	Options []string `yaml:"options" json:"options"`

	// Correct is the index into Options of the right answer.
	Correct int `yaml:"correct" json:"correct"`

	// Explanation is shown in the results breakdown. May be empty.
	Explanation string `yaml:"explanation,omitempty" json:"explanation,omitempty"`
}

// HasOption reports whether i is a valid index into Options.
func (q Question) HasOption(i int) bool {
	return i >= 0 && i < len(q.Options)
}

// OptionText returns the text of option i, or "" when i is out of range.
func (q Question) OptionText(i int) string {
	if !q.HasOption(i) {
		return ""
	}
	return q.Options[i]
}

// CorrectText returns the text of the correct option.
func (q Question) CorrectText() string {
	return q.OptionText(q.Correct)
}

// clone returns a copy that shares no memory with q.
func (q Question) clone() Question {
	q.Options = slices.Clone(q.Options)
	return q
}
