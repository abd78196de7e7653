package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderBoxWithTitle draws a bordered panel whose top edge carries title,
// e.g. "╭── [1] Archives ─────╮".
func renderBoxWithTitle(title string, content string, width int, height int, panel panelStyle) string {
	body := panel.box.
		BorderTop(false).
		Width(width).
		Height(height - 1).
		Render(content)

	// total width of the rendered panel, borders included
	outer := lipgloss.Width(body)
	label := panel.title.Render(" " + title + " ")
	fill := max(outer-lipgloss.Width(label)-4, 0)

	edge := lipgloss.NewStyle().Foreground(panel.box.GetBorderTopForeground())
	top := edge.Render("╭──") + label + edge.Render(strings.Repeat("─", fill)+"╮")
	return lipgloss.JoinVertical(lipgloss.Left, top, body)
}
