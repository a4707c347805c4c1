// Package results implements the score screen shown after submit.
package results

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizz/internal/scoring"
	"github.com/abhisek/quizz/internal/screen"
	"github.com/abhisek/quizz/internal/session"
	"github.com/abhisek/quizz/internal/ui/components"
	"github.com/abhisek/quizz/internal/ui/layout"
	"github.com/abhisek/quizz/internal/ui/theme"
)

// headerLines is the height of everything above the breakdown.
const headerLines = 7

type keyMap struct {
	Retake  key.Binding
	Export  key.Binding
	Review  key.Binding
	History key.Binding
}

// ResultsScreen shows the score and a scrollable per-question breakdown.
// The report is recomputed from the session on every render.
type ResultsScreen struct {
	session *session.Session
	export  screen.ExportFunc
	keys    keyMap
	vp      viewport.Model

	status    string
	statusErr bool
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen over s.
func New(s *session.Session, export screen.ExportFunc) *ResultsScreen {
	return &ResultsScreen{
		session: s,
		export:  export,
		keys: keyMap{
			Retake:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retake")),
			Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
			Review:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "review answers")),
			History: key.NewBinding(key.WithKeys("H", "h"), key.WithHelp("h", "history")),
		},
		vp: viewport.New(viewport.WithWidth(76), viewport.WithHeight(10)),
	}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Scroll"},
		{Key: "r", Description: "Retake"},
		{Key: "b", Description: "Review"},
		{Key: "e", Description: "Export"},
		{Key: "h", Description: "History"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ExportedMsg:
		if msg.Err != nil {
			r.status, r.statusErr = "Export failed: "+msg.Err.Error(), true
		} else {
			r.status, r.statusErr = "Exported to "+msg.Path, false
		}
		return r, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, r.keys.Retake):
			r.session.Retake()
			return r, screen.Emit(screen.ShowQuizMsg{})
		case key.Matches(msg, r.keys.Review):
			return r, screen.Emit(screen.ShowQuizMsg{})
		case key.Matches(msg, r.keys.History):
			return r, screen.Emit(screen.ShowHistoryMsg{})
		case key.Matches(msg, r.keys.Export):
			r.status, r.statusErr = "Exporting...", false
			return r, screen.ExportCmd(r.export)
		}
	}

	var cmd tea.Cmd
	r.vp, cmd = r.vp.Update(msg)
	return r, cmd
}

func (r *ResultsScreen) View(width, height int) string {
	inner := min(width-4, 76)
	report := r.session.Report()

	var b strings.Builder
	b.WriteString(theme.Title.Width(inner).Render(report.ScoreLine()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(inner).Align(lipgloss.Center).Bold(true).Render(report.PercentLine()))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar("", report.Total, report.Total, false, inner).View())
	b.WriteString("\n")

	if r.status != "" {
		style := theme.StatusOK
		if r.statusErr {
			style = theme.StatusErr
		}
		b.WriteString(style.Render(r.status))
	}
	b.WriteString("\n\n")

	r.vp.SetWidth(inner)
	r.vp.SetHeight(max(height-headerLines-2, 3))
	r.vp.SetContent(Breakdown(report, inner))
	b.WriteString(r.vp.View())

	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Render(b.String())
}

// Breakdown renders one block per question wrapped to width.
func Breakdown(report scoring.Report, width int) string {
	if len(report.PerQuestion) == 0 {
		return theme.Hint.Render("No questions in this bank.")
	}

	body := lipgloss.NewStyle().Width(width - 3).PaddingLeft(3)
	blocks := make([]string, 0, len(report.PerQuestion))
	for _, line := range report.PerQuestion {
		var b strings.Builder

		mark := theme.Incorrect.Render("✘ " + line.Result())
		if line.IsCorrect {
			mark = theme.Correct.Render("✔ " + line.Result())
		}
		b.WriteString(theme.Prompt.Width(width).Render(fmt.Sprintf("%d. %s", line.Number, line.Prompt)))
		b.WriteString("\n")
		b.WriteString(body.Render(mark))
		b.WriteString("\n")
		b.WriteString(body.Render(theme.Label.Render("Your answer: ") + line.SelectedText))
		b.WriteString("\n")
		b.WriteString(body.Render(theme.Label.Render("Correct answer: ") + line.CorrectText))
		if line.Explanation != "" {
			b.WriteString("\n")
			b.WriteString(body.Render(theme.Hint.Render(line.Explanation)))
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}
