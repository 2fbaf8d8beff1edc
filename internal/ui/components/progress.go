package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sharpen/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar, used for the round
// counter and the answer-window countdown.
type ProgressBar struct {
	Label   string
	Percent float64
	Width   int
	Color   color.Color
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Width:   width,
		Color:   theme.Secondary,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	barWidth := p.Width - lipgloss.Width(result)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	barColor := p.Color
	if barColor == nil {
		barColor = theme.Secondary
	}

	result += lipgloss.NewStyle().
		Background(barColor).
		Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", barWidth-filled))

	return result
}

// CountdownBar renders the advisory answer-window countdown. It turns
// amber under 30 seconds and rose under 10.
func CountdownBar(remaining, window float64, width int) string {
	if remaining < 0 {
		remaining = 0
	}
	percent := remaining / window

	c := theme.Secondary
	switch {
	case remaining <= 10:
		c = theme.Error
	case remaining <= 30:
		c = theme.Accent
	}

	bar := ProgressBar{
		Label:   fmt.Sprintf("%3.0fs", remaining),
		Percent: percent,
		Width:   width,
		Color:   c,
	}
	return bar.View()
}
