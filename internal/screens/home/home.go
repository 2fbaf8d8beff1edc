// Package home implements the landing screen.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sharpen/internal/quizgen"
	"github.com/abhisek/sharpen/internal/router"
	"github.com/abhisek/sharpen/internal/screen"
	"github.com/abhisek/sharpen/internal/screens/ratings"
	"github.com/abhisek/sharpen/internal/screens/setup"
	"github.com/abhisek/sharpen/internal/store"
	"github.com/abhisek/sharpen/internal/ui/components"
	"github.com/abhisek/sharpen/internal/ui/theme"
)

// HomeScreen is the main landing screen.
type HomeScreen struct {
	menu       components.Menu
	oracleDown string // non-empty when no LLM provider is configured
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. oracle may be nil when no provider is
// configured; the quiz entry is then disabled with an explanation.
func New(oracle quizgen.Oracle, ratingStore *store.RatingStore, events store.EventRepo, oracleErr error) *HomeScreen {
	h := &HomeScreen{}
	if oracle == nil && oracleErr != nil {
		h.oracleDown = oracleErr.Error()
	}

	items := []components.MenuItem{
		{
			Label:    "Start Quiz",
			Disabled: oracle == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: setup.New(oracle, ratingStore, events),
					}
				}
			},
		},
		{
			Label: "Topic Ratings",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: ratings.New(ratingStore)}
				}
			},
		},
		{
			Label: "Quit",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	title := theme.Title.Width(width).Render("Sharpen")
	subtitle := theme.Subtitle.Width(width).Render("adaptive quizzes on anything you are studying")

	b.WriteString("\n\n")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(subtitle)
	b.WriteString("\n\n\n")

	menu := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(h.menu.View())
	b.WriteString(menu)

	if h.oracleDown != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("LLM provider not configured: " + h.oracleDown))
	}

	return b.String()
}

func (h *HomeScreen) Title() string {
	return "Home"
}
