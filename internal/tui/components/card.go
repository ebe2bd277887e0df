// Package components provides the reusable widgets of the finquest TUI.
package components

import (
	"github.com/theirongolddev/finquest/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Stat is one labeled figure of a StatRow.
type Stat struct {
	Label string
	Value string
	Note  string
}

// LayoutRow distributes totalWidth into n widths that sum to exactly
// totalWidth. The first items absorb the remainder.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// StatCard renders a small bordered card with a label, a bold value and
// an optional note. outerWidth includes the border.
func StatCard(s Stat, outerWidth int) string {
	t := theme.Active

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)

	content := lipgloss.NewStyle().Foreground(t.TextMuted).Render(s.Label) + "\n" +
		lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render(s.Value)
	if s.Note != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Render(s.Note)
	}
	return box.Render(content)
}

// StatRow renders stats side by side filling totalWidth.
func StatRow(stats []Stat, totalWidth int) string {
	if len(stats) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(stats))
	cards := make([]string, len(stats))
	for i, s := range stats {
		cards[i] = StatCard(s, widths[i])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// Card renders a bordered panel with an optional title. A focused card
// gets the accent border.
func Card(title, body string, outerWidth int, focused bool) string {
	t := theme.Active

	border := t.Border
	if focused {
		border = t.BorderAccent
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)

	content := body
	if title != "" {
		content = lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render(title) + "\n" + body
	}
	return box.Render(content)
}

// InnerWidth is the usable text width inside a Card of outerWidth.
func InnerWidth(outerWidth int) int {
	return max(outerWidth-4, 10)
}
