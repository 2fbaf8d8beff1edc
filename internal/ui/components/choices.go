package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sharpen/internal/ui/theme"
)

// Choices is an option selector for multiple choice questions. The
// component only tracks the selection; scoring belongs to the grader.
type Choices struct {
	Options  []string
	Selected int
	Locked   bool
}

// NewChoices creates a selector over the given options.
func NewChoices(options []string) Choices {
	return Choices{Options: options}
}

// Update handles keyboard navigation. Number keys jump directly to an
// option; enter is left to the owning screen.
func (c Choices) Update(msg tea.Msg) (Choices, tea.Cmd) {
	if c.Locked {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "1", "2", "3", "4":
		i := int(key[0] - '1')
		if i < len(c.Options) {
			c.Selected = i
		}
	}

	return c, nil
}

// Value returns the currently selected option text.
func (c Choices) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected]
}

// View renders the option list.
func (c Choices) View() string {
	labels := [...]string{"A", "B", "C", "D"}

	var s string
	for i, opt := range c.Options {
		label := fmt.Sprintf("%d", i+1)
		if i < len(labels) {
			label = labels[i]
		}

		prefix := "  "
		if i == c.Selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		switch {
		case c.Locked:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == c.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
