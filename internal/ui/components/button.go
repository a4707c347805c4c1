package components

import (
	"strings"

	"github.com/abhisek/quizz/internal/ui/theme"
)

// Button is a key-labelled action that can be greyed out.
type Button struct {
	Key     string
	Label   string
	Enabled bool
}

// View renders the button.
func (b Button) View() string {
	label := b.Key + " " + b.Label
	if b.Enabled {
		return theme.ButtonEnabled.Render(label)
	}
	return theme.ButtonDisabled.Render(label)
}

// ButtonRow renders buttons side by side separated by gap spaces.
func ButtonRow(gap int, buttons ...Button) string {
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		parts[i] = b.View()
	}
	return strings.Join(parts, strings.Repeat(" ", gap))
}
