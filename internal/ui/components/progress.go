package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizz/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label   string
	Done    int
	Total   int
	ShowPct bool
	Width   int
}

// NewProgressBar creates a progress bar at done/total.
func NewProgressBar(label string, done, total int, showPct bool, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Done:    done,
		Total:   total,
		ShowPct: showPct,
		Width:   width,
	}
}

// Fraction returns done/total clamped to [0, 1]; 0 when total is 0.
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Done) / float64(p.Total)
	return max(0, min(f, 1))
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	pctWidth := 0
	if p.ShowPct {
		pctWidth = 6 // "  100%"
	}

	barWidth := p.Width - labelWidth - pctWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth)*p.Fraction() + 0.5)
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if p.ShowPct {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("%5d%%", int(p.Fraction()*100+0.5)))
	}

	return result
}
