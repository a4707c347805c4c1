// Package history implements the attempt log screen.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	hist "github.com/abhisek/quizz/internal/history"
	"github.com/abhisek/quizz/internal/router"
	"github.com/abhisek/quizz/internal/screen"
	"github.com/abhisek/quizz/internal/store"
	"github.com/abhisek/quizz/internal/ui/layout"
	"github.com/abhisek/quizz/internal/ui/theme"
)

// Loader fetches recent attempts, newest first.
type Loader func(ctx context.Context) ([]hist.Entry, error)

type historyLoadedMsg struct {
	Entries []hist.Entry
	Err     error
}

// HistoryScreen lists recorded submits and retakes.
type HistoryScreen struct {
	load     Loader
	entries  []hist.Entry
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the history screen. A nil loader means no attempt log is
// configured.
func New(load Loader) *HistoryScreen {
	return &HistoryScreen{
		load:     load,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	if s.load == nil {
		s.loaded = true
		return nil
	}
	load := s.load
	return func() tea.Msg {
		entries, err := load(context.Background())
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = msg.Entries
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.errMsg != "" {
		return centered.Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if s.load == nil {
		return centered.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempt log in ephemeral mode.")
	}
	if !s.loaded {
		return centered.Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.entries) == 0 {
		return centered.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Submit a quiz to see it here.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, e := range s.entries {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(prefix+Summary(e))))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, line := range details(e) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					theme.Hint.Render("    "+line)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// Summary formats one attempt as a single line.
func Summary(e hist.Entry) string {
	action := "Submitted"
	if e.Event.Action == store.ActionRetake {
		action = "Retook   "
	}
	line := fmt.Sprintf("%s  %s  %d/%d correct  %3d%%",
		e.Event.Timestamp.Local().Format("Jan 02, 2006 15:04"),
		action,
		e.Report.CorrectCount,
		e.Report.Total,
		e.Report.Percent)
	if e.Stale() {
		line += "  *"
	}
	return line
}

func details(e hist.Entry) []string {
	lines := []string{
		fmt.Sprintf("Attempt %s", e.Event.AttemptID),
		fmt.Sprintf("%d of %d answered", e.Report.AnsweredCount, e.Report.Total),
	}
	if e.Stale() {
		lines = append(lines, fmt.Sprintf("* recorded against %d questions; the bank now has %d",
			e.Event.QuestionCount, e.Report.Total))
	}
	return lines
}
