package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sharpen/internal/rating"
)

// Color palette — calm study-room tones
var (
	Primary   = lipgloss.Color("#38BDF8") // Sky
	Secondary = lipgloss.Color("#A78BFA") // Lavender
	Accent    = lipgloss.Color("#FBBF24") // Amber
	Success   = lipgloss.Color("#34D399") // Emerald
	Error     = lipgloss.Color("#FB7185") // Rose
	Text      = lipgloss.Color("#F1F5F9") // Near White
	TextDim   = lipgloss.Color("#7C8CA3") // Slate
	BgDark    = lipgloss.Color("#0B1120") // Midnight
	BgCard    = lipgloss.Color("#16213A") // Dark Blue
	Border    = lipgloss.Color("#2C3A55") // Steel
)

// Tier colors, one per difficulty band.
var (
	TierEasy   = lipgloss.Color("#2196F3")
	TierMedium = lipgloss.Color("#FF9800")
	TierHard   = lipgloss.Color("#F44336")
	TierExpert = lipgloss.Color("#9C27B0")
)

// TierColor returns the display color for a difficulty tier.
func TierColor(t rating.Tier) color.Color {
	switch t {
	case rating.TierEasy:
		return TierEasy
	case rating.TierMedium:
		return TierMedium
	case rating.TierHard:
		return TierHard
	default:
		return TierExpert
	}
}

// TierBadge renders a colored badge for a tier.
func TierBadge(t rating.Tier) string {
	return lipgloss.NewStyle().
		Foreground(BgDark).
		Background(TierColor(t)).
		Bold(true).
		Padding(0, 1).
		Render(t.String())
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)
)
