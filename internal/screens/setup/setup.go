// Package setup implements the quiz configuration screen: what to be
// quizzed on and how many questions.
package setup

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sharpen/internal/content"
	"github.com/abhisek/sharpen/internal/quiz"
	"github.com/abhisek/sharpen/internal/quizgen"
	"github.com/abhisek/sharpen/internal/router"
	"github.com/abhisek/sharpen/internal/screen"
	quizscreen "github.com/abhisek/sharpen/internal/screens/quiz"
	"github.com/abhisek/sharpen/internal/store"
	"github.com/abhisek/sharpen/internal/ui/components"
	"github.com/abhisek/sharpen/internal/ui/layout"
	"github.com/abhisek/sharpen/internal/ui/theme"
)

const defaultQuestionCount = "5"

// field indexes for focus handling.
const (
	fieldSource = iota
	fieldCount
)

// SetupScreen gathers the quiz material and question count.
type SetupScreen struct {
	oracle      quizgen.Oracle
	ratingStore *store.RatingStore
	events      store.EventRepo

	source    components.TextInput
	count     components.TextInput
	focused   int
	errMsg    string
	warnedFor string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup screen.
func New(oracle quizgen.Oracle, ratingStore *store.RatingStore, events store.EventRepo) *SetupScreen {
	source := components.NewTextInput("Topic name or path to a PDF/text file", false, 200)
	count := components.NewTextInput(defaultQuestionCount, true, 2)

	return &SetupScreen{
		oracle:      oracle,
		ratingStore: ratingStore,
		events:      events,
		source:      source,
		count:       count,
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.source.Init()
}

func (s *SetupScreen) Title() string {
	return "New Quiz"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Begin"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "shift+tab":
			return s, s.toggleFocus()
		case "enter":
			return s.begin()
		}
	}

	var cmd tea.Cmd
	if s.focused == fieldSource {
		s.source, cmd = s.source.Update(msg)
	} else {
		s.count, cmd = s.count.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) toggleFocus() tea.Cmd {
	if s.focused == fieldSource {
		s.focused = fieldCount
		s.source.Blur()
		return s.count.Focus()
	}
	s.focused = fieldSource
	s.count.Blur()
	return s.source.Focus()
}

// begin loads the material and starts the session. Validation failures
// stay on this screen with a message.
func (s *SetupScreen) begin() (screen.Screen, tea.Cmd) {
	input := strings.TrimSpace(s.source.Value())
	if input == "" {
		s.errMsg = "Enter a topic or a file path first."
		return s, nil
	}

	material, err := loadMaterial(input)
	if err != nil {
		// A partially extracted PDF is still usable. Warn once and let a
		// second Enter proceed with the readable pages.
		var partial *content.ExtractError
		if errors.As(err, &partial) && partial.Partial {
			if s.warnedFor != input {
				s.warnedFor = input
				s.errMsg = partial.Error() + " Press Enter again to continue."
				return s, nil
			}
		} else {
			s.errMsg = err.Error()
			return s, nil
		}
	}
	s.errMsg = ""

	limit := quiz.MinQuestions
	if n, err := s.count.NumericValue(); err == nil {
		limit = n
	} else if strings.TrimSpace(s.count.Value()) == "" {
		limit = 5
	}

	session := quiz.NewSession(s.ratingStore, s.events)
	if err := session.Start(material, limit); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	return s, func() tea.Msg {
		return router.PushScreenMsg{
			Screen: quizscreen.New(session, s.oracle),
		}
	}
}

// loadMaterial interprets the input as a file path when such a file
// exists, otherwise as a free-form topic. Variable so tests can stand in
// material without files on disk.
var loadMaterial = func(input string) (content.Material, error) {
	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		return content.FromFile(input)
	}
	return content.FromTopic(input), nil
}

func (s *SetupScreen) View(width, height int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	focusedLabel := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	sourceLabel, countLabel := label, label
	if s.focused == fieldSource {
		sourceLabel = focusedLabel
	} else {
		countLabel = focusedLabel
	}

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(sourceLabel.Render("  What should the quiz cover?"))
	b.WriteString("\n  ")
	b.WriteString(s.source.View())
	b.WriteString("\n\n")
	b.WriteString(countLabel.Render(fmt.Sprintf("  How many questions? (%d-%d)", quiz.MinQuestions, quiz.MaxQuestions)))
	b.WriteString("\n  ")
	b.WriteString(s.count.View())

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render("  " + s.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("  A topic rating is kept per topic or file and adapts as you play."))

	return lipgloss.NewStyle().Width(width).Render(b.String())
}
