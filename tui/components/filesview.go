package components

import (
	"arkiv/database/model"
	"fmt"
	"strings"

	L "arkiv/logger"

	"github.com/charmbracelet/lipgloss"
)

// renders minimal entry browser based on the catalog we store for each archive
func RenderFilesView(
	entries []model.ArchiveEntryRow,
	currentDir string,
	contentCursor int,
	contentOffset int,
	focusOnContent bool,
	width int,
	height int,
	current *model.Archive,
) string {
	if current != nil && current.Status != model.ARCHIVE_STATUS_COMPLETED {
		return "\n\n  " + YellowStyle.Render("Entries are cataloged once the archive completes.")
	}

	var sb strings.Builder

	sb.WriteString(DimStyle.Render("Entries in "))

	sb.WriteString(GreenStyle.Render("./"+currentDir) + "\n")
	rows := []struct {
		name, size, mod string
	}{
		{name: "../", size: "", mod: ""},
	}

	for _, e := range entries {
		name := e.Name
		if e.EntryType != "file" {
			name = name + "/"
		}
		size := ""
		if e.EntryType == "file" {
			size = L.HumanReadableBytes(uint64(e.SizeBytes))
		}

		rows = append(rows, struct {
			name, size, mod string
		}{
			name: name,
			size: size,
			mod:  e.ModifiedAt.Format("2006-01-02 15:04"),
		})
	}

	maxVisible := max(height-18, 1)

	sizeWidth := 10
	modWidth := 16
	nameWidth := max(width-sizeWidth-modWidth-5, 8)

	nameColHeaderStyle := lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Width(nameWidth)
	sizeColHeaderStyle := lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Width(sizeWidth)
	modColHeaderStyle := lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Width(modWidth)

	nameRowStyle := lipgloss.NewStyle().Width(nameWidth)
	sizeRowStyle := lipgloss.NewStyle().Width(sizeWidth)
	modRowStyle := lipgloss.NewStyle().Width(modWidth)

	headerLine := lipgloss.JoinHorizontal(lipgloss.Top,
		nameColHeaderStyle.Render("NAME"),
		sizeColHeaderStyle.Render("SIZE"),
		modColHeaderStyle.Render("MODIFIED AT"),
	)
	sb.WriteString(headerLine + "\n")

	end := contentOffset + maxVisible
	for i := contentOffset; i < len(rows) && i < end; i++ {
		row := rows[i]

		nameStr := L.TruncateString(row.name, nameWidth-1, L.TRUNC_CENTER)

		line := lipgloss.JoinHorizontal(lipgloss.Top,
			nameRowStyle.Render(nameStr),
			sizeRowStyle.Render(row.size),
			modRowStyle.Render(row.mod),
		)

		if i == contentCursor && focusOnContent {
			sb.WriteString(selectedItemStyle.Width(width - 2).Render(line))
		} else {
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}

	if len(rows) > end {
		sb.WriteString(DimStyle.Render(fmt.Sprintf("... %d more entries", len(rows)-end)))
	}

	return sb.String()
}
