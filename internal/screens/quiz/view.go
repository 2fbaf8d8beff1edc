package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sharpen/internal/quiz"
	"github.com/abhisek/sharpen/internal/quizgen"
	"github.com/abhisek/sharpen/internal/ui/components"
	"github.com/abhisek/sharpen/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	switch q.session.Phase {
	case quiz.PhaseAwaitingQuestion:
		return q.renderWaiting(width)
	case quiz.PhaseAwaitingAnswer:
		return q.renderQuestion(width)
	case quiz.PhaseShowingFeedback:
		return q.renderFeedback(width)
	}
	return ""
}

func (q *QuizScreen) renderWaiting(width int) string {
	if q.genErr != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("\n\n" +
				theme.Incorrect.Render("Could not generate a question") + "\n\n" +
				theme.Body.Render(q.genErr) + "\n\n" +
				theme.Hint.Render("Press R to retry, Esc to abandon the quiz."))
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n  Writing your next question...")
}

// renderHUD renders the status line above the question.
func (q *QuizScreen) renderHUD(width int) string {
	s := q.session
	tier, _ := s.Tier()

	left := theme.Body.Bold(true).
		Render(fmt.Sprintf("  Question %d/%d", s.Index+1, s.Limit))

	right := theme.TierBadge(tier) +
		lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("  %.0f", s.Rating)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("   score %d   streak %d  ", s.Score, s.Streak))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (q *QuizScreen) renderQuestion(width int) string {
	s := q.session
	question := s.Question
	if question == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(q.renderHUD(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	// Advisory countdown; enforcement happens only at submit.
	remaining := s.Remaining(q.now).Seconds()
	b.WriteString("  " + components.CountdownBar(remaining, quiz.AnswerWindow.Seconds(), min(width-4, 60)))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Width(width - 4).
		PaddingLeft(2).
		Foreground(theme.Text).
		Bold(true).
		Render(question.Prompt)
	b.WriteString(prompt)
	b.WriteString("\n\n")

	if q.hintOpen {
		b.WriteString(theme.Hint.Width(width - 4).PaddingLeft(2).
			Render("Hint: " + question.Hint))
		b.WriteString("\n\n")
	}

	if question.Kind == quizgen.KindMultipleChoice {
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(q.choices.View()))
	} else {
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(q.answer.View()))
	}

	if q.grading {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).PaddingLeft(2).
			Render("Grading your answer..."))
	}
	if q.warnMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Warning.PaddingLeft(2).Render(q.warnMsg))
	}

	return b.String()
}

func (q *QuizScreen) renderFeedback(width int) string {
	s := q.session
	fb := s.Feedback
	if fb == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(q.renderHUD(width))
	b.WriteString("\n\n")

	verdict := theme.Incorrect.Render("✗ Incorrect")
	if fb.Correct {
		verdict = theme.Correct.Render("✓ Correct")
	}
	if fb.TimedOut {
		verdict = theme.Incorrect.Render("✗ Out of time")
	}

	delta := fb.RatingAfter - fb.RatingBefore
	sign := "+"
	if delta < 0 {
		sign = ""
	}

	var card strings.Builder
	card.WriteString(verdict)
	card.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("   %d pts   rating %s%.0f", fb.ScoreGained, sign, delta)))
	card.WriteString("\n\n")
	card.WriteString(theme.Body.Render(fb.Explanation))

	if fb.ModelAnswer != "" {
		card.WriteString("\n\n")
		card.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Model answer"))
		card.WriteString("\n")
		card.WriteString(theme.Body.Render(fb.ModelAnswer))
	}

	if len(fb.MissedConcepts) > 0 {
		card.WriteString("\n\n")
		card.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Missed concepts"))
		card.WriteString("\n")
		for _, c := range fb.MissedConcepts {
			card.WriteString(theme.Body.Render("  • " + c))
			card.WriteString("\n")
		}
	}

	b.WriteString(theme.Card.Width(min(width-4, 96)).Render(card.String()))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.PaddingLeft(2).Render("Press Enter to continue."))

	return b.String()
}
