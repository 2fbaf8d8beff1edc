// Package screen defines the interface every application screen
// implements, plus optional capabilities the frame can query.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sharpen/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface screens implement to
// provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatsProvider is an optional interface screens implement to surface
// live session stats in the header bar.
type StatsProvider interface {
	HeaderStats() layout.HeaderStats
}
