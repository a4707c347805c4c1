// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/quizz/internal/router"
	"github.com/abhisek/quizz/internal/screen"
	"github.com/abhisek/quizz/internal/screens/history"
	"github.com/abhisek/quizz/internal/screens/quiz"
	"github.com/abhisek/quizz/internal/screens/results"
	"github.com/abhisek/quizz/internal/session"
	"github.com/abhisek/quizz/internal/ui/layout"
)

// Options carries the dependencies of the TUI.
type Options struct {
	Session *session.Session
	Export  screen.ExportFunc
	History history.Loader
	Logger  *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	width  int
	height int
}

// newAppModel starts on the results screen when the restored attempt is
// already submitted, otherwise on the question screen.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	m := AppModel{opts: opts}
	if opts.Session.Finished() {
		m.router = router.New(m.resultsScreen())
	} else {
		m.router = router.New(m.quizScreen())
	}
	return m
}

func (m AppModel) quizScreen() screen.Screen {
	return quiz.New(m.opts.Session, m.opts.Export)
}

func (m AppModel) resultsScreen() screen.Screen {
	return results.New(m.opts.Session, m.opts.Export)
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case screen.ShowQuizMsg:
		m.opts.Logger.Debug("show screen", zap.String("screen", "quiz"))
		return m, m.router.Replace(m.quizScreen())

	case screen.ShowResultsMsg:
		m.opts.Logger.Debug("show screen", zap.String("screen", "results"))
		return m, m.router.Replace(m.resultsScreen())

	case screen.ShowHistoryMsg:
		m.opts.Logger.Debug("show screen", zap.String("screen", "history"))
		return m, m.router.Push(history.New(m.opts.History))

	case screen.ExportedMsg:
		if msg.Err != nil {
			m.opts.Logger.Warn("export", zap.Error(msg.Err))
		} else {
			m.opts.Logger.Info("export", zap.String("path", msg.Path))
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	var hints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if p, ok := active.(screen.KeyHintProvider); ok {
			hints = p.KeyHints()
		}
	}
	hints = append(hints, layout.KeyHint{Key: "q", Description: "Quit"})

	s := m.opts.Session
	header := layout.RenderHeader(title, s.AnsweredCount(), s.Count(), m.width)
	footer := layout.RenderFooter(hints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
