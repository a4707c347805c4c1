package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizz/internal/ui/theme"
)

// NoChoice marks an option list with nothing chosen.
const NoChoice = -1

// MultiChoice renders one question's options with a movable cursor. The
// chosen option is owned by the caller; the component only draws it.
type MultiChoice struct {
	Prompt  string
	Options []string
	Cursor  int
	Chosen  int

	// Reveal marks the correct option and a wrong choice.
	Reveal  bool
	Correct int
}

// NewMultiChoice creates an option list. The cursor starts on the chosen
// option, or the first one when nothing is chosen.
func NewMultiChoice(prompt string, options []string, chosen int) MultiChoice {
	cursor := 0
	if chosen >= 0 && chosen < len(options) {
		cursor = chosen
	} else {
		chosen = NoChoice
	}
	return MultiChoice{
		Prompt:  prompt,
		Options: options,
		Cursor:  cursor,
		Chosen:  chosen,
		Correct: NoChoice,
	}
}

// Up moves the cursor up, stopping at the first option.
func (m *MultiChoice) Up() {
	if m.Cursor > 0 {
		m.Cursor--
	}
}

// Down moves the cursor down, stopping at the last option.
func (m *MultiChoice) Down() {
	if m.Cursor < len(m.Options)-1 {
		m.Cursor++
	}
}

// Choose marks option i as chosen and moves the cursor to it. Out-of-range
// indices are ignored.
func (m *MultiChoice) Choose(i int) {
	if i < 0 || i >= len(m.Options) {
		return
	}
	m.Chosen = i
	m.Cursor = i
}

// View renders the prompt and options wrapped to width.
func (m MultiChoice) View(width int) string {
	var b strings.Builder

	b.WriteString(theme.Prompt.Width(width).Render(m.Prompt))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		pointer := "  "
		if i == m.Cursor {
			pointer = "▸ "
		}
		mark := "( )"
		if i == m.Chosen {
			mark = "(•)"
		}
		line := fmt.Sprintf("%s%s %d. %s", pointer, mark, i+1, opt)

		style := theme.Unselected
		switch {
		case m.Reveal && i == m.Correct:
			style = theme.Correct
		case m.Reveal && i == m.Chosen:
			style = theme.Incorrect
		case i == m.Chosen:
			style = theme.Chosen
		case i == m.Cursor:
			style = theme.Cursor
		}
		b.WriteString(style.Width(width).Render(line))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(width).Render(strings.TrimRight(b.String(), "\n"))
}
