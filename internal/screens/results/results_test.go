package results

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizz/internal/bank"
	"github.com/abhisek/quizz/internal/scoring"
	"github.com/abhisek/quizz/internal/screen"
	"github.com/abhisek/quizz/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testSession(t *testing.T) *session.Session {
	t.Helper()
	b, err := bank.New([]bank.Question{
		{ID: 1, Prompt: "Capital of France?", Options: []string{"Paris", "Rome"}, Correct: 0, Explanation: "Paris has been the capital since 987."},
		{ID: 2, Prompt: "2 + 2?", Options: []string{"3", "4"}, Correct: 1},
		{ID: 3, Prompt: "Blue is a?", Options: []string{"color", "shape"}, Correct: 0},
	})
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}
	s := session.New(b)
	s.SelectOption(0, 0)
	s.SelectOption(1, 0)
	s.Submit()
	return s
}

func TestResultsScreen_Title(t *testing.T) {
	r := New(testSession(t), nil)
	if r.Title() != "Results" {
		t.Errorf("Title = %q, want %q", r.Title(), "Results")
	}
}

func TestResultsScreen_View(t *testing.T) {
	r := New(testSession(t), nil)
	view := r.View(100, 40)

	for _, want := range []string{
		"1 correct out of 3 (2 answered)",
		"Score: 33%",
		"Capital of France?",
		"Paris has been the capital",
		"(no answer)",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResultsScreen_Recomputes(t *testing.T) {
	s := testSession(t)
	r := New(s, nil)

	s.SelectOption(1, 1)
	if !strings.Contains(r.View(100, 40), "2 correct out of 3 (2 answered)") {
		t.Error("expected the report to follow edits after submit")
	}
}

func TestResultsScreen_Retake(t *testing.T) {
	s := testSession(t)
	r := New(s, nil)

	_, cmd := r.Update(keyPress('r'))
	if s.Finished() || s.AnsweredCount() != 0 {
		t.Errorf("state after retake = %+v", s.State())
	}
	if cmd == nil {
		t.Fatal("expected a command after retake")
	}
	if _, ok := cmd().(screen.ShowQuizMsg); !ok {
		t.Errorf("cmd produced %T, want screen.ShowQuizMsg", cmd())
	}
}

func TestResultsScreen_Review(t *testing.T) {
	s := testSession(t)
	r := New(s, nil)

	_, cmd := r.Update(keyPress('b'))
	if cmd == nil {
		t.Fatal("expected a command after review")
	}
	if _, ok := cmd().(screen.ShowQuizMsg); !ok {
		t.Errorf("cmd produced %T, want screen.ShowQuizMsg", cmd())
	}
	if !s.Finished() {
		t.Error("review must keep the attempt finished")
	}
}

func TestResultsScreen_History(t *testing.T) {
	r := New(testSession(t), nil)
	_, cmd := r.Update(keyPress('h'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(screen.ShowHistoryMsg); !ok {
		t.Errorf("cmd produced %T, want screen.ShowHistoryMsg", cmd())
	}
}

func TestResultsScreen_Export(t *testing.T) {
	r := New(testSession(t), nil)

	_, cmd := r.Update(keyPress('e'))
	msg, ok := cmd().(screen.ExportedMsg)
	if !ok || msg.Err == nil {
		t.Fatalf("expected an export error without an export func, got %+v", msg)
	}

	r.Update(msg)
	if !strings.Contains(r.View(100, 40), "Export failed") {
		t.Error("expected export failure in view")
	}
}

func TestBreakdown(t *testing.T) {
	report := scoring.Score(nil, nil)
	if !strings.Contains(Breakdown(report, 60), "No questions") {
		t.Error("expected empty bank message")
	}

	s := testSession(t)
	out := Breakdown(s.Report(), 60)
	if strings.Count(out, "Correct answer:") != 3 {
		t.Errorf("expected one block per question:\n%s", out)
	}
	if !strings.Contains(out, "✘ Wrong") || !strings.Contains(out, "✔ Correct") {
		t.Errorf("expected both outcomes:\n%s", out)
	}
}
