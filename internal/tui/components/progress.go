package components

import (
	"fmt"

	"github.com/theirongolddev/finquest/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForRatio maps how far a target is reached to a color: below half
// is orange, below the target yellow, and green once it is met.
func ColorForRatio(ratio float64) string {
	t := theme.Active
	switch {
	case ratio >= 1:
		return string(t.Green)
	case ratio >= 0.5:
		return string(t.Yellow)
	default:
		return string(t.Orange)
	}
}

func clampRatio(r float64) float64 {
	return min(max(r, 0), 1)
}

func bar(color string, width int) progress.Model {
	b := progress.New(
		progress.WithSolidFill(color),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	b.EmptyColor = string(theme.Active.TextDim)
	return b
}

// FlowBar renders how many of the visible questions are answered.
func FlowBar(answered, total, width int) string {
	t := theme.Active
	ratio := 0.0
	if total > 0 {
		ratio = clampRatio(float64(answered) / float64(total))
	}
	count := fmt.Sprintf(" %d/%d", min(answered, total), total)
	b := bar(string(t.Accent), width-lipgloss.Width(count))
	return b.ViewAs(ratio) + lipgloss.NewStyle().Foreground(t.TextMuted).Render(count)
}

// XPBar renders the progress from the current rank's floor toward the
// next rank. A zero span means the last rank is reached.
func XPBar(xp, floor, next, width int) string {
	t := theme.Active
	ratio := 1.0
	if span := next - floor; span > 0 {
		ratio = clampRatio(float64(xp-floor) / float64(span))
	}
	label := fmt.Sprintf(" %3.0f%%", ratio*100)
	b := bar(string(t.Magenta), width-lipgloss.Width(label))
	return b.ViewAs(ratio) + lipgloss.NewStyle().Foreground(t.Magenta).Bold(true).Render(label)
}

// TargetBar renders a labeled bar of actual against target.
func TargetBar(label string, actual, target float64, labelW, width int) string {
	t := theme.Active
	ratio := 1.0
	if target > 0 {
		ratio = actual / target
	}
	color := ColorForRatio(ratio)
	pct := fmt.Sprintf(" %3.0f%%", clampRatio(ratio)*100)
	b := bar(color, width-labelW-1-lipgloss.Width(pct))

	return lipgloss.NewStyle().Foreground(t.TextMuted).Render(fmt.Sprintf("%-*s", labelW, label)) +
		" " + b.ViewAs(clampRatio(ratio)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(pct)
}
