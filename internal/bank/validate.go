package bank

import (
	"fmt"
	"strings"
)

// MinOptions is the smallest number of options a question may have.
const MinOptions = 2

// ValidationError lists every problem found in a question set.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question bank validation failed:\n  - %s",
		strings.Join(e.Problems, "\n  - "))
}

// validateQuestions performs all structural checks on the given questions.
// Returns a *ValidationError describing all problems found, or nil if valid.
// An empty set is valid.
func validateQuestions(questions []Question) error {
	var errs []string

	seen := make(map[int]int, len(questions))
	for i, q := range questions {
		pos := i + 1

		if prev, dup := seen[q.ID]; dup {
			errs = append(errs, fmt.Sprintf("question %d: duplicate id %d (first used by question %d)", pos, q.ID, prev))
		} else {
			seen[q.ID] = pos
		}

		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, fmt.Sprintf("question %d (id %d): empty prompt", pos, q.ID))
		}

		if len(q.Options) < MinOptions {
			errs = append(errs, fmt.Sprintf("question %d (id %d): has %d options, need at least %d", pos, q.ID, len(q.Options), MinOptions))
		}

		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				errs = append(errs, fmt.Sprintf("question %d (id %d): option %d is empty", pos, q.ID, j+1))
			}
		}

		if len(q.Options) > 0 && !q.HasOption(q.Correct) {
			errs = append(errs, fmt.Sprintf("question %d (id %d): correct index %d out of range [0, %d]", pos, q.ID, q.Correct, len(q.Options)-1))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}
