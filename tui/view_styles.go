package tui

import (
	"arkiv/tui/components"

	"github.com/charmbracelet/lipgloss"
)

// panelStyle pairs a panel border with the style of its title.
type panelStyle struct {
	box   lipgloss.Style
	title lipgloss.Style
}

func newPanelStyle(color lipgloss.TerminalColor, bold bool) panelStyle {
	return panelStyle{
		box: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(color).
			Padding(0, 1),
		title: lipgloss.NewStyle().
			Foreground(color).
			Bold(bold),
	}
}

var (
	idlePanel   = newPanelStyle(components.ColorGrey, false)
	activePanel = newPanelStyle(components.ColorGreen, true)
)

func panelFor(active bool) panelStyle {
	if active {
		return activePanel
	}
	return idlePanel
}

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(components.ColorGrey).
			Foreground(components.ColorGrey)

	activeTabStyle = tabStyle.
			Foreground(components.ColorGreen).
			BorderForeground(components.ColorGreen).
			Bold(true)
)
