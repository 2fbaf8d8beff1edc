package quiz

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sharpen/internal/content"
	quizsess "github.com/abhisek/sharpen/internal/quiz"
	"github.com/abhisek/sharpen/internal/quizgen"
	"github.com/abhisek/sharpen/internal/router"
	"github.com/abhisek/sharpen/internal/screen"
)

// mockOracle implements quizgen.Oracle for testing.
type mockOracle struct {
	question   *quizgen.Question
	genErr     error
	grade      quizgen.GradeResult
	gradeCalls int
}

func (m *mockOracle) Generate(context.Context, quizgen.GenerateInput) (*quizgen.Question, error) {
	if m.genErr != nil {
		return nil, m.genErr
	}
	q := *m.question
	return &q, nil
}

func (m *mockOracle) Grade(context.Context, quizgen.GradeInput) quizgen.GradeResult {
	m.gradeCalls++
	return m.grade
}

func (m *mockOracle) Report(context.Context, []quizgen.RoundSummary, string) (string, error) {
	return "study plan", nil
}

type fakeRatings struct {
	stored map[string]float64
}

func (f *fakeRatings) Get(topic string) float64 {
	if r, ok := f.stored[topic]; ok {
		return r
	}
	return 1200
}

func (f *fakeRatings) Put(topic string, r float64) error {
	if f.stored == nil {
		f.stored = map[string]float64{}
	}
	f.stored[topic] = r
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func mcQuestion() *quizgen.Question {
	return &quizgen.Question{
		Kind:               quizgen.KindMultipleChoice,
		Prompt:             "Which planet is largest?",
		Options:            []string{"Mars", "Jupiter", "Venus", "Earth"},
		AnswerKey:          "Jupiter",
		Hint:               "It is a gas giant.",
		DifficultyEstimate: 1400,
	}
}

func testQuizScreen(t *testing.T, oracle *mockOracle) *QuizScreen {
	t.Helper()
	session := quizsess.NewSession(&fakeRatings{}, nil)
	if err := session.Start(content.FromTopic("astronomy"), 3); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return New(session, oracle)
}

// attachQuestion drives the screen through question delivery.
func attachQuestion(t *testing.T, q *QuizScreen, question *quizgen.Question) *QuizScreen {
	t.Helper()
	scr, _ := q.Update(questionReadyMsg{Question: question})
	return scr.(*QuizScreen)
}

func TestQuizScreen_Title(t *testing.T) {
	q := testQuizScreen(t, &mockOracle{question: mcQuestion()})
	if q.Title() != "Quiz" {
		t.Errorf("Title = %q, want %q", q.Title(), "Quiz")
	}
}

func TestQuizScreen_View_Waiting(t *testing.T) {
	q := testQuizScreen(t, &mockOracle{question: mcQuestion()})
	if q.View(80, 24) == "" {
		t.Error("expected non-empty view while waiting for a question")
	}
}

func TestQuizScreen_QuestionReady(t *testing.T) {
	q := testQuizScreen(t, &mockOracle{question: mcQuestion()})
	q = attachQuestion(t, q, mcQuestion())

	if q.session.Phase != quizsess.PhaseAwaitingAnswer {
		t.Errorf("phase = %s, want %s", q.session.Phase, quizsess.PhaseAwaitingAnswer)
	}
	if q.View(80, 24) == "" {
		t.Error("expected non-empty question view")
	}
}

func TestQuizScreen_GenerationError_Retry(t *testing.T) {
	oracle := &mockOracle{question: mcQuestion()}
	q := testQuizScreen(t, oracle)

	scr, _ := q.Update(questionReadyMsg{Err: context.DeadlineExceeded})
	q = scr.(*QuizScreen)
	if q.genErr == "" {
		t.Fatal("expected generation error to be recorded")
	}
	if q.View(80, 24) == "" {
		t.Error("expected non-empty error view")
	}

	scr, cmd := q.Update(keyPress('r'))
	q = scr.(*QuizScreen)
	if q.genErr != "" {
		t.Error("expected retry to clear the error")
	}
	if cmd == nil {
		t.Error("expected retry to issue a generation command")
	}
}

func TestQuizScreen_SubmitMultipleChoice(t *testing.T) {
	oracle := &mockOracle{
		question: mcQuestion(),
		grade:    quizgen.GradeResult{Correct: true, ScorePercent: 100, Explanation: "Right."},
	}
	q := testQuizScreen(t, oracle)
	q = attachQuestion(t, q, mcQuestion())

	// Pick option B and submit.
	scr, _ := q.Update(keyPress('2'))
	q = scr.(*QuizScreen)
	scr, cmd := q.Update(specialKey(tea.KeyEnter))
	q = scr.(*QuizScreen)
	if cmd == nil {
		t.Fatal("expected a grading command after submit")
	}
	if !q.grading {
		t.Error("expected grading flag while the grade is in flight")
	}

	// Deliver the grade.
	scr, _ = q.Update(cmd())
	q = scr.(*QuizScreen)

	if oracle.gradeCalls != 1 {
		t.Errorf("grade calls = %d, want 1", oracle.gradeCalls)
	}
	if q.session.Phase != quizsess.PhaseShowingFeedback {
		t.Errorf("phase = %s, want %s", q.session.Phase, quizsess.PhaseShowingFeedback)
	}
	if q.session.Feedback == nil || !q.session.Feedback.Correct {
		t.Error("expected correct feedback")
	}
	if q.View(80, 24) == "" {
		t.Error("expected non-empty feedback view")
	}
}

func TestQuizScreen_HintReveal(t *testing.T) {
	q := testQuizScreen(t, &mockOracle{question: mcQuestion()})
	q = attachQuestion(t, q, mcQuestion())

	scr, _ := q.Update(specialKey(tea.KeyF1))
	q = scr.(*QuizScreen)

	if !q.hintOpen {
		t.Error("expected hint to be open after F1")
	}
	if !q.session.HintRevealed {
		t.Error("expected session to record the hint")
	}
}

func TestQuizScreen_AdvanceToNextQuestion(t *testing.T) {
	oracle := &mockOracle{
		question: mcQuestion(),
		grade:    quizgen.GradeResult{Correct: true, ScorePercent: 100},
	}
	q := testQuizScreen(t, oracle)
	q = attachQuestion(t, q, mcQuestion())

	scr, cmd := q.Update(specialKey(tea.KeyEnter))
	q = scr.(*QuizScreen)
	scr, _ = q.Update(cmd())
	q = scr.(*QuizScreen)

	scr, cmd = q.Update(specialKey(tea.KeyEnter))
	q = scr.(*QuizScreen)
	if q.session.Phase != quizsess.PhaseAwaitingQuestion {
		t.Errorf("phase = %s, want %s", q.session.Phase, quizsess.PhaseAwaitingQuestion)
	}
	if cmd == nil {
		t.Error("expected a generation command for the next round")
	}
}

func TestQuizScreen_FinishReplacesWithResults(t *testing.T) {
	oracle := &mockOracle{
		question: mcQuestion(),
		grade:    quizgen.GradeResult{Correct: true, ScorePercent: 100},
	}
	q := testQuizScreen(t, oracle)

	// Play all three rounds.
	var cmd tea.Cmd
	var scr screen.Screen = q
	for i := 0; i < 3; i++ {
		scr, _ = scr.Update(questionReadyMsg{Question: mcQuestion()})
		scr, cmd = scr.Update(specialKey(tea.KeyEnter))
		scr, _ = scr.Update(cmd())
		scr, cmd = scr.Update(specialKey(tea.KeyEnter))
	}

	if cmd == nil {
		t.Fatal("expected a navigation command after the last round")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected a ReplaceScreenMsg to the results screen")
	}
}

func TestQuizScreen_KeyHints(t *testing.T) {
	q := testQuizScreen(t, &mockOracle{question: mcQuestion()})
	q = attachQuestion(t, q, mcQuestion())

	if len(q.KeyHints()) == 0 {
		t.Error("expected non-empty key hints while answering")
	}
}
