package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizz/internal/bank"
	"github.com/abhisek/quizz/internal/screen"
	"github.com/abhisek/quizz/internal/screens/history"
	"github.com/abhisek/quizz/internal/screens/quiz"
	"github.com/abhisek/quizz/internal/screens/results"
	"github.com/abhisek/quizz/internal/session"
)

func testSession(t *testing.T) *session.Session {
	t.Helper()
	b, err := bank.New([]bank.Question{
		{ID: 1, Prompt: "First?", Options: []string{"a", "b"}, Correct: 0},
		{ID: 2, Prompt: "Second?", Options: []string{"a", "b"}, Correct: 1},
	})
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}
	return session.New(b)
}

// drive applies msg and then every message its command chain produces.
func drive(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		updated, cmd := m.Update(next)
		m = updated.(AppModel)
		if cmd != nil {
			if out := cmd(); out != nil {
				queue = append(queue, out)
			}
		}
	}
	return m
}

func TestNewAppModel_StartsOnQuiz(t *testing.T) {
	m := newAppModel(Options{Session: testSession(t)})
	if _, ok := m.router.Active().(*quiz.QuizScreen); !ok {
		t.Errorf("active screen = %T, want *quiz.QuizScreen", m.router.Active())
	}
}

func TestNewAppModel_StartsOnResultsWhenFinished(t *testing.T) {
	s := testSession(t)
	s.Submit()

	m := newAppModel(Options{Session: s})
	if _, ok := m.router.Active().(*results.ResultsScreen); !ok {
		t.Errorf("active screen = %T, want *results.ResultsScreen", m.router.Active())
	}
}

func TestAppModel_SubmitShowsResults(t *testing.T) {
	m := newAppModel(Options{Session: testSession(t)})
	m = drive(t, m, tea.KeyPressMsg{Code: 's', Text: "s"})

	if _, ok := m.router.Active().(*results.ResultsScreen); !ok {
		t.Errorf("active screen = %T, want *results.ResultsScreen", m.router.Active())
	}
	if m.router.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", m.router.Depth())
	}
}

func TestAppModel_RetakeShowsQuiz(t *testing.T) {
	s := testSession(t)
	s.SelectOption(0, 0)
	s.Submit()
	m := newAppModel(Options{Session: s})

	m = drive(t, m, tea.KeyPressMsg{Code: 'r', Text: "r"})

	if _, ok := m.router.Active().(*quiz.QuizScreen); !ok {
		t.Errorf("active screen = %T, want *quiz.QuizScreen", m.router.Active())
	}
	if s.Finished() || s.AnsweredCount() != 0 {
		t.Errorf("state after retake = %+v", s.State())
	}
}

func TestAppModel_HistoryPushAndPop(t *testing.T) {
	s := testSession(t)
	s.Submit()
	m := newAppModel(Options{Session: s})

	m = drive(t, m, screen.ShowHistoryMsg{})
	if _, ok := m.router.Active().(*history.HistoryScreen); !ok {
		t.Fatalf("active screen = %T, want *history.HistoryScreen", m.router.Active())
	}
	if m.router.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", m.router.Depth())
	}

	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := m.router.Active().(*results.ResultsScreen); !ok {
		t.Errorf("active screen after esc = %T, want *results.ResultsScreen", m.router.Active())
	}
}

func TestAppModel_EscOnRootIsNoop(t *testing.T) {
	m := newAppModel(Options{Session: testSession(t)})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("expected no command for esc on the root screen")
	}
}

func TestAppModel_Quit(t *testing.T) {
	m := newAppModel(Options{Session: testSession(t)})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd produced %T, want tea.QuitMsg", cmd())
	}
}

func TestAppModel_View(t *testing.T) {
	s := testSession(t)
	s.SelectOption(1, 1)
	m := newAppModel(Options{Session: s})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	frame := updated.(AppModel).render()

	for _, want := range []string{"Question 1 / 2", "1/2 answered", "First?", "Quit"} {
		if !strings.Contains(frame, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppModel_ViewTooSmall(t *testing.T) {
	m := newAppModel(Options{Session: testSession(t)})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	if !strings.Contains(updated.(AppModel).render(), "Terminal") {
		t.Error("expected a min-size message")
	}
}
