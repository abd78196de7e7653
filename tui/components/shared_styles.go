package components

import (
	"arkiv/database/model"

	"github.com/charmbracelet/lipgloss"
)

// ANSI palette shared by every panel
var (
	ColorBlue   = lipgloss.Color("4")
	ColorGreen  = lipgloss.Color("2")
	ColorRed    = lipgloss.Color("1")
	ColorYellow = lipgloss.Color("3")
	ColorGrey   = lipgloss.Color("8")
	ColorPurple = lipgloss.Color("5")
)

var (
	DimStyle    = lipgloss.NewStyle().Foreground(ColorGrey)
	HelpStyle   = DimStyle
	YellowStyle = lipgloss.NewStyle().Foreground(ColorYellow)
	GreenStyle  = lipgloss.NewStyle().Foreground(ColorGreen)
	RedStyle    = lipgloss.NewStyle().Foreground(ColorRed)

	selectedItemStyle = lipgloss.NewStyle().
				Background(ColorGreen).
				Foreground(lipgloss.AdaptiveColor{Light: "15", Dark: "0"})

	tableStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorGrey)

	tableTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue)
)

// StatusStyle colours an archive status the same way in every panel.
func StatusStyle(s model.ArchiveStatus) lipgloss.Style {
	switch s {
	case model.ARCHIVE_STATUS_COMPLETED:
		return GreenStyle
	case model.ARCHIVE_STATUS_FAILED, model.ARCHIVE_STATUS_ABORTED:
		return RedStyle
	case model.ARCHIVE_STATUS_RUNNING:
		return YellowStyle
	default:
		return DimStyle
	}
}
