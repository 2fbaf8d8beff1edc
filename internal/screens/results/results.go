// Package results displays the end-of-quiz summary and study plan.
package results

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sharpen/internal/quiz"
	"github.com/abhisek/sharpen/internal/quizgen"
	"github.com/abhisek/sharpen/internal/router"
	"github.com/abhisek/sharpen/internal/screen"
	"github.com/abhisek/sharpen/internal/ui/layout"
	"github.com/abhisek/sharpen/internal/ui/theme"
)

const reportTimeout = 60 * time.Second

// reportMsg carries the generated study plan (or its failure).
type reportMsg struct {
	Text string
	Err  error
}

// ResultsScreen shows final stats, per-round history, and an LLM-written
// study plan for the finished quiz.
type ResultsScreen struct {
	session *quiz.Session
	oracle  quizgen.Oracle

	report     string
	reportErr  string
	generating bool
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.StatsProvider = (*ResultsScreen)(nil)

// New creates a results screen for a finished session.
func New(session *quiz.Session, oracle quizgen.Oracle) *ResultsScreen {
	return &ResultsScreen{session: session, oracle: oracle}
}

func (r *ResultsScreen) Init() tea.Cmd {
	if r.oracle == nil {
		return nil
	}
	r.generating = true
	return r.generateReport()
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) HeaderStats() layout.HeaderStats {
	return layout.HeaderStats{
		Topic:  r.session.Material.Key,
		Rating: r.session.Rating,
		Streak: r.session.MaxStreak,
	}
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "New Quiz"},
		{Key: "Esc", Description: "Home"},
	}
	if r.reportErr != "" {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry Report"})
	}
	return hints
}

func (r *ResultsScreen) generateReport() tea.Cmd {
	history := r.session.RoundSummaries()
	contextText := r.session.Material.Text
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		text, err := r.oracle.Report(ctx, history, contextText)
		return reportMsg{Text: text, Err: err}
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportMsg:
		r.generating = false
		if msg.Err != nil {
			r.reportErr = msg.Err.Error()
		} else {
			r.report = msg.Text
			r.reportErr = ""
		}
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if err := r.session.Restart(); err != nil {
				return r, nil
			}
			return r, func() tea.Msg { return router.PopScreenMsg{} }
		case "esc":
			if err := r.session.Restart(); err != nil {
				return r, nil
			}
			return r, func() tea.Msg { return router.PopToRootMsg{} }
		case "r":
			if r.reportErr != "" && !r.generating && r.oracle != nil {
				r.generating = true
				r.reportErr = ""
				return r, r.generateReport()
			}
		}
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	s := r.session

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Quiz complete!"))
	b.WriteString("\n\n")

	tier, _ := s.Tier()
	delta := s.Rating - s.StartRating
	sign := "+"
	if delta < 0 {
		sign = ""
	}
	ratingLine := fmt.Sprintf("%s  %.0f (%s%.0f)", theme.TierBadge(tier), s.Rating, sign, delta)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, ratingLine))
	b.WriteString("\n\n")

	accuracy := 0.0
	if len(s.History) > 0 {
		accuracy = float64(s.CorrectCount()) / float64(len(s.History)) * 100
	}
	statsLine := fmt.Sprintf("Score: %d        Correct: %d/%d (%.0f%%)        Best streak: %d",
		s.Score, s.CorrectCount(), len(s.History), accuracy, s.MaxStreak)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(statsLine)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Rounds")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for i, h := range s.History {
		mark := theme.Incorrect.Render("✗")
		if h.Correct {
			mark = theme.Correct.Render("✓")
		}
		line := fmt.Sprintf("  %s  %2d. %s    %d pts    %.0f",
			mark, i+1, truncatePrompt(h.QuestionText, min(width-40, 56)),
			h.ScoreGained, h.RatingAfter)
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Study Plan")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	switch {
	case r.generating:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).PaddingLeft(2).
			Render("Writing your study plan..."))
	case r.reportErr != "":
		b.WriteString(theme.Incorrect.PaddingLeft(2).
			Render("Study plan unavailable: " + r.reportErr))
	case r.report != "":
		b.WriteString(theme.Body.Width(min(width-4, 96)).PaddingLeft(2).
			Render(r.report))
	}
	b.WriteString("\n")

	return b.String()
}

// truncatePrompt keeps round rows on one line. Cuts on rune boundaries
// so generated prompts with non-ASCII text stay valid.
func truncatePrompt(s string, n int) string {
	if n < 4 {
		n = 4
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
