package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/subtrack/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left, a
// flash message in the middle when set, and the info text on the right.
func RenderStatusBar(width int, hints, flash, info string) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	flashStyle := lipgloss.NewStyle().Foreground(t.OK).Background(t.Surface).Bold(true)

	left := base.Render(" " + hints)
	if flash != "" {
		left += base.Render("  ") + flashStyle.Render(flash)
	}
	right := ""
	if info != "" {
		right = base.Render(info + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	return left + base.Render(strings.Repeat(" ", padding)) + right
}
