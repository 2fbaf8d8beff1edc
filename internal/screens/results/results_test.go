package results

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sharpen/internal/content"
	"github.com/abhisek/sharpen/internal/quiz"
	"github.com/abhisek/sharpen/internal/quizgen"
	"github.com/abhisek/sharpen/internal/router"
)

type stubRatings struct{}

func (stubRatings) Get(string) float64 { return 1200 }

func (stubRatings) Put(string, float64) error { return nil }

type stubGrader struct{ result quizgen.GradeResult }

func (g stubGrader) Grade(context.Context, quizgen.GradeInput) quizgen.GradeResult {
	return g.result
}

type stubOracle struct {
	report    string
	reportErr error
}

func (stubOracle) Generate(context.Context, quizgen.GenerateInput) (*quizgen.Question, error) {
	return nil, errors.New("not used")
}

func (stubOracle) Grade(context.Context, quizgen.GradeInput) quizgen.GradeResult {
	return quizgen.GradeResult{}
}

func (o stubOracle) Report(context.Context, []quizgen.RoundSummary, string) (string, error) {
	return o.report, o.reportErr
}

// finishedSession plays a full 3-round quiz.
func finishedSession(t *testing.T) *quiz.Session {
	t.Helper()
	s := quiz.NewSession(stubRatings{}, nil)
	if err := s.Start(content.FromTopic("history"), 3); err != nil {
		t.Fatalf("Start: %v", err)
	}
	grader := stubGrader{result: quizgen.GradeResult{Correct: true, ScorePercent: 90}}
	for i := 0; i < 3; i++ {
		q := &quizgen.Question{
			Kind:   quizgen.KindOpenAnalysis,
			Prompt: "Explain the causes.",
		}
		now := time.Now()
		if err := s.AttachQuestion(q, now); err != nil {
			t.Fatalf("AttachQuestion: %v", err)
		}
		if err := s.Submit(context.Background(), "because", grader, now); err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	if s.Phase != quiz.PhaseFinished {
		t.Fatalf("phase = %s, want %s", s.Phase, quiz.PhaseFinished)
	}
	return s
}

func TestResultsScreen_View(t *testing.T) {
	r := New(finishedSession(t), stubOracle{report: "plan"})
	if r.View(80, 24) == "" {
		t.Error("expected non-empty results view")
	}
}

func TestResultsScreen_ReportDelivery(t *testing.T) {
	r := New(finishedSession(t), stubOracle{report: "Review chapter 3."})

	cmd := r.Init()
	if cmd == nil {
		t.Fatal("expected a report command from Init")
	}
	scr, _ := r.Update(cmd())
	r = scr.(*ResultsScreen)

	if r.report != "Review chapter 3." {
		t.Errorf("report = %q, want the oracle's text", r.report)
	}
	if r.generating {
		t.Error("expected generating to clear after delivery")
	}
}

func TestResultsScreen_ReportFailureAndRetry(t *testing.T) {
	r := New(finishedSession(t), stubOracle{reportErr: errors.New("rate limited")})

	cmd := r.Init()
	scr, _ := r.Update(cmd())
	r = scr.(*ResultsScreen)
	if r.reportErr == "" {
		t.Fatal("expected report error to be recorded")
	}
	if r.View(80, 24) == "" {
		t.Error("expected non-empty view with failed report")
	}

	scr, cmd = r.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	r = scr.(*ResultsScreen)
	if cmd == nil {
		t.Error("expected retry to issue a report command")
	}
	if !r.generating {
		t.Error("expected generating flag during retry")
	}
}

func TestResultsScreen_EnterRestartsSession(t *testing.T) {
	session := finishedSession(t)
	r := New(session, stubOracle{})

	_, cmd := r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if session.Phase != quiz.PhaseIdle {
		t.Errorf("phase = %s, want %s after restart", session.Phase, quiz.PhaseIdle)
	}
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected a PopScreenMsg back to setup")
	}
}

func TestResultsScreen_EscUnwindsToHome(t *testing.T) {
	r := New(finishedSession(t), stubOracle{})

	_, cmd := r.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected a PopToRootMsg to home")
	}
}

func TestTruncatePrompt(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short prompt", 20, "short prompt"},
		{"a very long prompt that keeps going", 10, "a very ..."},
		{"日本の首都はどこですか、答えてください", 8, "日本の首都..."},
		{"x", 2, "x"},
	}
	for _, tt := range tests {
		if got := truncatePrompt(tt.in, tt.n); got != tt.want {
			t.Errorf("truncatePrompt(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
