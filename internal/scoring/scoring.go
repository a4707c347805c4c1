// Package scoring turns a set of answers into a score report.
package scoring

import (
	"fmt"

	"github.com/abhisek/quizz/internal/bank"
)

// NoAnswer is shown in place of the selected option text when a question
// was left unanswered.
const NoAnswer = "(no answer)"

// Line is the per-question entry of a Report.
type Line struct {
	Number       int    `json:"number"` // 1-based position in the bank
	Prompt       string `json:"prompt"`
	SelectedText string `json:"selectedText"`
	CorrectText  string `json:"correctText"`
	IsCorrect    bool   `json:"isCorrect"`
	Explanation  string `json:"explanation,omitempty"`

	// Answered is false when the slot was absent or held an index the
	// question does not have.
	Answered bool `json:"answered"`
}

// Report is the derived summary of an attempt. It is recomputed on demand
// and never persisted.
type Report struct {
	CorrectCount  int    `json:"correctCount"`
	AnsweredCount int    `json:"answeredCount"`
	Total         int    `json:"total"`
	Percent       int    `json:"percent"`
	PerQuestion   []Line `json:"perQuestion"`
}

// Score grades answers against questions. answers[i] holds the selected
// option index for questions[i], or nil when absent. Missing trailing slots
// and out-of-range indices count as absent.
func Score(questions []bank.Question, answers []*int) Report {
	r := Report{
		Total:       len(questions),
		PerQuestion: make([]Line, 0, len(questions)),
	}

	for i, q := range questions {
		sel, answered := selected(q, answers, i)

		line := Line{
			Number:       i + 1,
			Prompt:       q.Prompt,
			SelectedText: NoAnswer,
			CorrectText:  q.CorrectText(),
			Explanation:  q.Explanation,
			Answered:     answered,
		}
		if answered {
			r.AnsweredCount++
			line.SelectedText = q.OptionText(sel)
			line.IsCorrect = sel == q.Correct
		}
		if line.IsCorrect {
			r.CorrectCount++
		}
		r.PerQuestion = append(r.PerQuestion, line)
	}

	r.Percent = Percent(r.CorrectCount, r.Total)
	return r
}

// Percent returns correct/total as a whole percentage, rounding halves up.
// A zero total yields 0.
func Percent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	// round(c*100/t) with ties away from zero, in integers:
	// floor((200c + t) / 2t).
	return (200*correct + total) / (2 * total)
}

// ScoreLine formats the headline of the results screen.
func (r Report) ScoreLine() string {
	return fmt.Sprintf("%d correct out of %d (%d answered)", r.CorrectCount, r.Total, r.AnsweredCount)
}

// PercentLine formats the percentage line of the results screen.
func (r Report) PercentLine() string {
	return fmt.Sprintf("Score: %d%%", r.Percent)
}

// Result returns the literal used for a line's outcome.
func (l Line) Result() string {
	if l.IsCorrect {
		return "Correct"
	}
	return "Wrong"
}

// selected returns the valid option index recorded for question i.
func selected(q bank.Question, answers []*int, i int) (int, bool) {
	if i >= len(answers) || answers[i] == nil {
		return 0, false
	}
	sel := *answers[i]
	if !q.HasOption(sel) {
		return 0, false
	}
	return sel, true
}
