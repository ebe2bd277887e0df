package components

import (
	"strings"

	"github.com/theirongolddev/finquest/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab is one screen of the TUI with its shortcut key.
type Tab struct {
	Name string
	Key  rune
}

// Tabs lists the screens in display order. q is taken by quit, so Quests
// uses w for weekly.
var Tabs = []Tab{
	{Name: "Plan", Key: 'p'},
	{Name: "Snapshot", Key: 's'},
	{Name: "Quests", Key: 'w'},
	{Name: "History", Key: 'h'},
	{Name: "What-if", Key: 'i'},
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int) string {
	t := theme.Active

	active := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Padding(0, 1)
	inactive := lipgloss.NewStyle().Foreground(t.TextMuted).Padding(0, 1)
	key := lipgloss.NewStyle().Foreground(t.TextDim)

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts[i] = active.Render(tab.Name)
			continue
		}
		parts[i] = inactive.Render(tab.Name) + key.Render("["+string(tab.Key)+"]")
	}
	return strings.Join(parts, " ")
}

// TabIdxByKey returns the tab index for a key press, or -1.
func TabIdxByKey(k rune) int {
	for i, tab := range Tabs {
		if tab.Key == k {
			return i
		}
	}
	return -1
}
