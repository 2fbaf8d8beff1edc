// Package quiz implements the active quiz screen: question display,
// answer entry, hint reveal, and per-round feedback.
package quiz

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sharpen/internal/quiz"
	"github.com/abhisek/sharpen/internal/quizgen"
	"github.com/abhisek/sharpen/internal/router"
	"github.com/abhisek/sharpen/internal/screen"
	"github.com/abhisek/sharpen/internal/screens/results"
	"github.com/abhisek/sharpen/internal/ui/components"
	"github.com/abhisek/sharpen/internal/ui/layout"
)

// QuizScreen drives one started quiz session round by round.
type QuizScreen struct {
	session *quiz.Session
	oracle  quizgen.Oracle

	choices  components.Choices
	answer   components.TextArea
	now      time.Time // last tick, for the countdown display
	grading  bool
	genErr   string
	warnMsg  string
	hintOpen bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatsProvider = (*QuizScreen)(nil)

// New creates the quiz screen for an already-started session.
func New(session *quiz.Session, oracle quizgen.Oracle) *QuizScreen {
	return &QuizScreen{
		session: session,
		oracle:  oracle,
		now:     time.Now(),
	}
}

func (q *QuizScreen) Init() tea.Cmd {
	return tea.Batch(q.generateQuestion(), tickCmd())
}

func (q *QuizScreen) Title() string {
	return "Quiz"
}

func (q *QuizScreen) HeaderStats() layout.HeaderStats {
	return layout.HeaderStats{
		Topic:  q.session.Material.Key,
		Rating: q.session.Rating,
		Streak: q.session.Streak,
	}
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	switch q.session.Phase {
	case quiz.PhaseAwaitingQuestion:
		if q.genErr != "" {
			return []layout.KeyHint{
				{Key: "R", Description: "Retry"},
				{Key: "Esc", Description: "Abandon quiz"},
			}
		}
		return nil
	case quiz.PhaseAwaitingAnswer:
		hints := []layout.KeyHint{}
		if q.session.Question != nil && q.session.Question.Kind == quizgen.KindMultipleChoice {
			hints = append(hints,
				layout.KeyHint{Key: "↑↓/1-4", Description: "Choose"},
				layout.KeyHint{Key: "Enter", Description: "Submit"})
		} else {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Submit"})
		}
		if !q.session.HintRevealed {
			hints = append(hints, layout.KeyHint{Key: "F1", Description: "Hint (-50 pts)"})
		}
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Abandon"})
		return hints
	case quiz.PhaseShowingFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Abandon"},
		}
	}
	return nil
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		return q.handleQuestionReady(msg)
	case gradedMsg:
		return q.handleGraded(msg)
	case timerTickMsg:
		q.now = time.Time(msg)
		if q.session.Phase == quiz.PhaseFinished {
			return q, nil
		}
		return q, tickCmd()
	case tea.KeyMsg:
		return q.handleKey(msg)
	}

	return q.forwardToInput(msg)
}

func (q *QuizScreen) handleQuestionReady(msg questionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		// Stay in PhaseAwaitingQuestion; the user retries explicitly.
		q.genErr = msg.Err.Error()
		return q, nil
	}

	q.genErr = ""
	q.warnMsg = ""
	q.hintOpen = false
	if err := q.session.AttachQuestion(msg.Question, time.Now()); err != nil {
		q.genErr = err.Error()
		return q, nil
	}

	if msg.Question.Kind == quizgen.KindMultipleChoice {
		q.choices = components.NewChoices(msg.Question.Options)
		return q, nil
	}
	q.answer = components.NewTextArea("Write your solution or analysis...", 72, 8)
	return q, q.answer.Init()
}

func (q *QuizScreen) handleGraded(msg gradedMsg) (screen.Screen, tea.Cmd) {
	q.grading = false

	// The grade is already computed; replay it through the session so
	// scoring, rating, and history follow the one code path.
	static := quizgen.GraderFunc(func(context.Context, quizgen.GradeInput) quizgen.GradeResult {
		return msg.Result
	})
	if err := q.session.Submit(context.Background(), msg.Answer, static, msg.SubmittedAt); err != nil {
		if !errors.Is(err, quiz.ErrEmptyAnswer) {
			q.warnMsg = err.Error()
		}
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if q.grading {
		return q, nil
	}
	key := msg.String()

	switch q.session.Phase {
	case quiz.PhaseAwaitingQuestion:
		if q.genErr != "" {
			switch key {
			case "r", "R":
				q.genErr = ""
				return q, q.generateQuestion()
			case "esc":
				return q, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
		return q, nil

	case quiz.PhaseAwaitingAnswer:
		switch key {
		case "esc":
			return q, func() tea.Msg { return router.PopScreenMsg{} }
		case "f1":
			if q.session.RevealHint() {
				q.hintOpen = true
			}
			return q, nil
		case "enter":
			if q.session.Question.Kind == quizgen.KindMultipleChoice {
				return q.submit(q.choices.Value())
			}
		case "ctrl+s":
			if q.session.Question.Kind == quizgen.KindOpenAnalysis {
				return q.submit(q.answer.Value())
			}
		}
		return q.forwardToInput(msg)

	case quiz.PhaseShowingFeedback:
		switch key {
		case "enter", "space":
			return q.advance()
		case "esc":
			return q, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	return q, nil
}

func (q *QuizScreen) forwardToInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if q.session.Phase != quiz.PhaseAwaitingAnswer || q.session.Question == nil {
		return q, nil
	}

	var cmd tea.Cmd
	if q.session.Question.Kind == quizgen.KindMultipleChoice {
		q.choices, cmd = q.choices.Update(msg)
	} else {
		q.answer, cmd = q.answer.Update(msg)
	}
	return q, cmd
}

// submit starts the round's grading. The submit instant is captured
// here so a slow grading call cannot push the answer past the window.
func (q *QuizScreen) submit(answer string) (screen.Screen, tea.Cmd) {
	now := time.Now()

	// Past the window the grader is never consulted; resolve inline.
	if q.session.Remaining(now) < 0 {
		if err := q.session.Submit(context.Background(), answer, q.oracle, now); err != nil {
			q.warnMsg = err.Error()
		}
		return q, nil
	}

	input := quizgen.GradeInput{
		Question: *q.session.Question,
		Context:  q.session.Material.Text,
		Answer:   answer,
	}

	if err := validateAnswer(answer); err != nil {
		q.warnMsg = err.Error()
		return q, nil
	}

	q.warnMsg = ""
	q.grading = true
	oracle := q.oracle
	return q, func() tea.Msg {
		return gradedMsg{
			Answer:      answer,
			SubmittedAt: now,
			Result:      oracle.Grade(context.Background(), input),
		}
	}
}

func (q *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if err := q.session.Advance(); err != nil {
		q.warnMsg = err.Error()
		return q, nil
	}

	if q.session.Phase == quiz.PhaseFinished {
		return q, func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: results.New(q.session, q.oracle),
			}
		}
	}
	return q, q.generateQuestion()
}

// generateQuestion asks the oracle for the next question asynchronously.
func (q *QuizScreen) generateQuestion() tea.Cmd {
	input := q.session.GenerateInput()
	oracle := q.oracle
	return func() tea.Msg {
		question, err := oracle.Generate(context.Background(), input)
		return questionReadyMsg{Question: question, Err: err}
	}
}

func validateAnswer(answer string) error {
	if len(answer) == 0 || allWhitespace(answer) {
		return errors.New("write an answer before submitting")
	}
	return nil
}

func allWhitespace(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// tickCmd returns a 1-second tick command for the countdown.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
