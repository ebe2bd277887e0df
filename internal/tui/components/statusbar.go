package components

import (
	"strings"

	"github.com/theirongolddev/finquest/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom bar: key hints on the left and the
// latest toast on the right.
func RenderStatusBar(width int, hints, toast string) string {
	t := theme.Active

	left := " " + hints
	right := ""
	if toast != "" {
		right = lipgloss.NewStyle().Foreground(t.Magenta).Bold(true).Render(toast) + " "
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width).
		Render(left + strings.Repeat(" ", padding) + right)
}
