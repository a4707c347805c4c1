package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizz/internal/bank"
	hist "github.com/abhisek/quizz/internal/history"
	"github.com/abhisek/quizz/internal/router"
	"github.com/abhisek/quizz/internal/scoring"
	"github.com/abhisek/quizz/internal/store"
)

func ptr(i int) *int { return &i }

func testEntries(t *testing.T) []hist.Entry {
	t.Helper()
	b, err := bank.New([]bank.Question{
		{ID: 1, Prompt: "A?", Options: []string{"x", "y"}, Correct: 0},
		{ID: 2, Prompt: "B?", Options: []string{"x", "y"}, Correct: 1},
	})
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)
	submit := store.AttemptEvent{
		Timestamp: ts,
		AttemptEventData: store.AttemptEventData{
			AttemptID: "a-2", Action: store.ActionSubmit, QuestionCount: 2,
			Answers: []*int{ptr(0), ptr(1)},
		},
	}
	retake := store.AttemptEvent{
		Timestamp: ts.Add(-time.Hour),
		AttemptEventData: store.AttemptEventData{
			AttemptID: "a-1", Action: store.ActionRetake, QuestionCount: 3,
			Answers: []*int{ptr(0), nil, nil},
		},
	}
	return []hist.Entry{
		{Event: submit, Report: scoring.Score(b.All(), submit.Answers)},
		{Event: retake, Report: scoring.Score(b.All(), retake.Answers)},
	}
}

func loaded(t *testing.T, entries []hist.Entry, err error) *HistoryScreen {
	t.Helper()
	s := New(func(context.Context) ([]hist.Entry, error) { return entries, err })
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	s.Update(cmd())
	return s
}

func TestHistoryScreen_Title(t *testing.T) {
	s := New(nil)
	if s.Title() != "History" {
		t.Errorf("Title = %q, want %q", s.Title(), "History")
	}
}

func TestHistoryScreen_Loading(t *testing.T) {
	s := New(func(context.Context) ([]hist.Entry, error) { return nil, nil })
	if !strings.Contains(s.View(80, 24), "Loading") {
		t.Error("expected loading view before the load completes")
	}
}

func TestHistoryScreen_Ephemeral(t *testing.T) {
	s := New(nil)
	if s.Init() != nil {
		t.Error("expected no load command without a loader")
	}
	if !strings.Contains(s.View(80, 24), "ephemeral") {
		t.Error("expected ephemeral message")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := loaded(t, nil, nil)
	if !strings.Contains(s.View(80, 24), "No attempts yet") {
		t.Error("expected empty message")
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := loaded(t, nil, errors.New("database is locked"))
	if !strings.Contains(s.View(80, 24), "database is locked") {
		t.Error("expected error in view")
	}
}

func TestHistoryScreen_List(t *testing.T) {
	s := loaded(t, testEntries(t), nil)
	view := s.View(100, 24)

	for _, want := range []string{"Submitted", "2/2 correct", "Retook", "1/2 correct"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistoryScreen_NavigateAndExpand(t *testing.T) {
	s := loaded(t, testEntries(t), nil)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Fatalf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	view := s.View(100, 24)
	if !strings.Contains(view, "Attempt a-1") {
		t.Error("expected expanded details")
	}
	if !strings.Contains(view, "recorded against 3 questions") {
		t.Error("expected stale note for a resized bank")
	}
}

func TestHistoryScreen_Back(t *testing.T) {
	s := loaded(t, nil, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("cmd produced %T, want router.PopScreenMsg", cmd())
	}
}

func TestSummary(t *testing.T) {
	entries := testEntries(t)
	if got := Summary(entries[0]); !strings.Contains(got, "Mar 14, 2026 09:30") || strings.HasSuffix(got, "*") {
		t.Errorf("Summary = %q", got)
	}
	if got := Summary(entries[1]); !strings.HasSuffix(got, "*") {
		t.Errorf("Summary of stale entry = %q, want trailing *", got)
	}
}
