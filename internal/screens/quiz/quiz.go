// Package quiz implements the question screen.
package quiz

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizz/internal/screen"
	"github.com/abhisek/quizz/internal/session"
	"github.com/abhisek/quizz/internal/ui/components"
	"github.com/abhisek/quizz/internal/ui/layout"
	"github.com/abhisek/quizz/internal/ui/theme"
)

// QuizScreen shows one question at a time and drives the session.
type QuizScreen struct {
	session *session.Session
	export  screen.ExportFunc
	keys    keyMap
	help    help.Model
	choice  components.MultiChoice

	status    string
	statusErr bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the question screen over s. export may be nil, in which case
// the export key reports an error.
func New(s *session.Session, export screen.ExportFunc) *QuizScreen {
	q := &QuizScreen{
		session: s,
		export:  export,
		keys:    newKeyMap(),
		help:    help.New(),
	}
	q.sync()
	return q
}

func (q *QuizScreen) Init() tea.Cmd {
	return nil
}

func (q *QuizScreen) Title() string {
	if q.session.Count() == 0 {
		return "No questions"
	}
	return fmt.Sprintf("Question %d / %d", q.session.CurrentIndex()+1, q.session.Count())
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Select"}}
	if q.keys.Prev.Enabled() {
		hints = append(hints, layout.KeyHint{Key: "←", Description: "Prev"})
	}
	if q.keys.Next.Enabled() {
		hints = append(hints, layout.KeyHint{Key: "→", Description: "Next"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "s", Description: "Submit"},
		layout.KeyHint{Key: "?", Description: "Help"},
	)
	return hints
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ExportedMsg:
		if msg.Err != nil {
			q.status, q.statusErr = "Export failed: "+msg.Err.Error(), true
		} else {
			q.status, q.statusErr = "Exported to "+msg.Path, false
		}
		return q, nil

	case tea.KeyPressMsg:
		return q.handleKey(msg)
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, q.keys.Help):
		q.help.ShowAll = !q.help.ShowAll
		return q, nil

	case key.Matches(msg, q.keys.Submit):
		q.session.Submit()
		return q, screen.Emit(screen.ShowResultsMsg{})

	case key.Matches(msg, q.keys.Export):
		q.status, q.statusErr = "Exporting...", false
		return q, screen.ExportCmd(q.export)
	}

	if q.session.Count() == 0 {
		return q, nil
	}

	switch {
	case key.Matches(msg, q.keys.Up):
		q.choice.Up()
		return q, nil

	case key.Matches(msg, q.keys.Down):
		q.choice.Down()
		return q, nil

	case key.Matches(msg, q.keys.Choose):
		q.selectOption(q.choice.Cursor)

	case key.Matches(msg, q.keys.Digit):
		n, _ := strconv.Atoi(msg.String())
		q.selectOption(n - 1)

	case key.Matches(msg, q.keys.Prev):
		q.session.Prev()

	case key.Matches(msg, q.keys.Next):
		q.session.Next()

	case key.Matches(msg, q.keys.First):
		q.session.GoTo(0)

	case key.Matches(msg, q.keys.Last):
		q.session.GoTo(q.session.Count() - 1)

	case key.Matches(msg, q.keys.Unanswered):
		if !q.session.NextUnanswered() {
			q.status, q.statusErr = "Every question is answered.", false
			return q, nil
		}

	default:
		return q, nil
	}

	q.status = ""
	q.sync()
	return q, nil
}

func (q *QuizScreen) selectOption(i int) {
	if q.session.Select(i) {
		q.choice.Choose(i)
	}
}

// sync rebuilds the option list for the current question and toggles the
// navigation bindings at the bank boundaries.
func (q *QuizScreen) sync() {
	q.keys.Prev.SetEnabled(!q.session.IsFirst())
	q.keys.Next.SetEnabled(!q.session.IsLast())

	cur, ok := q.session.Current()
	if !ok {
		q.choice = components.MultiChoice{Chosen: components.NoChoice, Correct: components.NoChoice}
		return
	}
	chosen, answered := q.session.Answer(q.session.CurrentIndex())
	if !answered {
		chosen = components.NoChoice
	}
	q.choice = components.NewMultiChoice(cur.Prompt, cur.Options, chosen)
	if q.session.Finished() {
		q.choice.Reveal = true
		q.choice.Correct = cur.Correct
	}
}

// cardStyle colors the question card by outcome once the attempt is
// submitted.
func (q *QuizScreen) cardStyle() lipgloss.Style {
	if !q.session.Finished() {
		return theme.Card
	}
	if q.choice.Chosen == q.choice.Correct {
		return theme.CorrectCard
	}
	return theme.WrongCard
}

func (q *QuizScreen) View(width, height int) string {
	inner := min(width-4, 76)

	if q.session.Count() == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("\n" + theme.Hint.Render("This question bank is empty. Press s to see results."))
	}

	var b strings.Builder

	if q.session.Finished() {
		b.WriteString(theme.Label.Render("Reviewing a submitted attempt. Changes update your score; press s for results."))
		b.WriteString("\n\n")
	}

	i, n := q.session.CurrentIndex()+1, q.session.Count()
	b.WriteString(components.NewProgressBar(fmt.Sprintf("Question %d / %d", i, n), i, n, false, inner).View())
	b.WriteString("\n\n")

	b.WriteString(q.cardStyle().Width(inner).Render(q.choice.View(inner - 4)))
	b.WriteString("\n\n")

	b.WriteString(components.ButtonRow(2,
		components.Button{Key: "←", Label: "Prev", Enabled: !q.session.IsFirst()},
		components.Button{Key: "→", Label: "Next", Enabled: !q.session.IsLast()},
		components.Button{Key: "s", Label: "Submit", Enabled: true},
	))
	b.WriteString("\n")

	if q.status != "" {
		style := theme.StatusOK
		if q.statusErr {
			style = theme.StatusErr
		}
		b.WriteString("\n")
		b.WriteString(style.Render(q.status))
		b.WriteString("\n")
	}

	q.help.SetWidth(inner)
	b.WriteString("\n")
	b.WriteString(q.help.View(q.keys))

	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Render(b.String())
}
