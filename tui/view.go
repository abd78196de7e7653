package tui

import (
	"arkiv/tui/components"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m modelTui) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	sidebarWidth := 30
	// account for both panels' borders (2+2)
	contentWidth := m.width - sidebarWidth - 4
	// account for borders (2 lines) and footer (1 line)
	mainHeight := m.height - 3

	sidebarContent := components.RenderArchiveList(
		m.archives,
		m.sidebarCursor,
		m.focus == focusSidebar,
		sidebarWidth,
	)

	sidebarBox := renderBoxWithTitle("[1] Archives", sidebarContent, sidebarWidth, mainHeight, panelFor(m.focus == focusSidebar))

	var cb strings.Builder

	tabs := []struct {
		id    tabId
		key   string
		label string
	}{
		{tabStatus, "[3] ", "Status"},
		{tabFiles, "[4] ", "Entries"},
	}
	var rendered []string
	for _, tab := range tabs {
		label := tab.label
		style := tabStyle
		if m.focus == focusContent {
			label = tab.key + label
			if m.activeTab == tab.id {
				style = activeTabStyle
			}
		}
		rendered = append(rendered, style.Render(label))
	}
	cb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n")

	current := m.currentArchive()

	if m.activeTab == tabStatus {
		cb.WriteString(components.RenderStatusView(current, contentWidth))
	} else {
		filesContent := components.RenderFilesView(
			m.entries,
			m.currentDir,
			m.contentCursor,
			m.contentOffset,
			m.focus == focusContent,
			contentWidth,
			m.height,
			current,
		)
		cb.WriteString(filesContent)
	}

	cb.WriteString("\n" + components.RenderStatusBar(current, contentWidth))

	contentBox := renderBoxWithTitle("[2] Content", cb.String(), contentWidth, mainHeight, panelFor(m.focus == focusContent))

	footer := components.HelpStyle.Width(m.width).Align(lipgloss.Center).Render("1:Archives | 2:Content | Tab:Toggle | 3/s:Status | 4/f:Entries | j/k/arrow keys:Navigate | q:Quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, sidebarBox, contentBox),
		footer,
	)
}
