// Package ratings lists the per-topic ratings on record.
package ratings

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sharpen/internal/rating"
	"github.com/abhisek/sharpen/internal/router"
	"github.com/abhisek/sharpen/internal/screen"
	"github.com/abhisek/sharpen/internal/store"
	"github.com/abhisek/sharpen/internal/ui/layout"
	"github.com/abhisek/sharpen/internal/ui/theme"
)

type topicEntry struct {
	Topic  string
	Rating float64
}

// RatingsScreen displays every topic with a stored rating and lets the
// user reset one back to the default.
type RatingsScreen struct {
	store    *store.RatingStore
	topics   []topicEntry
	selected int
	confirm  bool // pending reset confirmation for the selected topic
	errMsg   string
}

var _ screen.Screen = (*RatingsScreen)(nil)
var _ screen.KeyHintProvider = (*RatingsScreen)(nil)

// New creates a new RatingsScreen.
func New(s *store.RatingStore) *RatingsScreen {
	r := &RatingsScreen{store: s}
	r.reload()
	return r
}

func (r *RatingsScreen) reload() {
	topics := r.store.Topics()
	r.topics = r.topics[:0]
	for topic, rat := range topics {
		r.topics = append(r.topics, topicEntry{Topic: topic, Rating: rat})
	}
	sort.Slice(r.topics, func(i, j int) bool {
		return r.topics[i].Topic < r.topics[j].Topic
	})
	if r.selected >= len(r.topics) {
		r.selected = len(r.topics) - 1
	}
	if r.selected < 0 {
		r.selected = 0
	}
}

func (r *RatingsScreen) Init() tea.Cmd {
	return nil
}

func (r *RatingsScreen) Title() string {
	return "Topic Ratings"
}

func (r *RatingsScreen) KeyHints() []layout.KeyHint {
	if r.confirm {
		return []layout.KeyHint{
			{Key: "D", Description: "Confirm Reset"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "D", Description: "Reset Topic"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *RatingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch kmsg.String() {
	case "esc":
		if r.confirm {
			r.confirm = false
			return r, nil
		}
		return r, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		r.confirm = false
		if r.selected > 0 {
			r.selected--
		}
	case "down", "j":
		r.confirm = false
		if r.selected < len(r.topics)-1 {
			r.selected++
		}
	case "d":
		if len(r.topics) == 0 {
			return r, nil
		}
		if !r.confirm {
			r.confirm = true
			return r, nil
		}
		r.confirm = false
		if err := r.store.Delete(r.topics[r.selected].Topic); err != nil {
			r.errMsg = err.Error()
			return r, nil
		}
		r.errMsg = ""
		r.reload()
	}
	return r, nil
}

func (r *RatingsScreen) View(width, height int) string {
	if len(r.topics) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No topics yet. Finish a quiz to get rated.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, entry := range r.topics {
		tier, _ := rating.Classify(entry.Rating)

		prefix := "  "
		if i == r.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%-32s %s  %.0f",
			prefix, truncateTopic(entry.Topic, 32), theme.TierBadge(tier), entry.Rating)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == r.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if r.confirm {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Warning.Render(fmt.Sprintf("Reset %q to %.0f? Press D again to confirm.",
				r.topics[r.selected].Topic, rating.Default))))
		b.WriteString("\n")
	}
	if r.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render("Error: "+r.errMsg)))
		b.WriteString("\n")
	}

	return b.String()
}

func truncateTopic(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
