package components

import (
	"arkiv/database/model"
	"fmt"
	"strings"
	"time"

	L "arkiv/logger"

	"github.com/charmbracelet/lipgloss"
)

type Row struct {
	label string
	value string
}

// renders archive information
func RenderStatusView(
	a *model.Archive,
	width int,
) string {
	if a == nil {
		return "No archive selected"
	}

	labelWidth := 24
	valueWidth := max(width-labelWidth-6, 10)

	buildSection := func(title string, rows []Row) string {
		labelStyle := lipgloss.NewStyle().Width(labelWidth).Foreground(ColorGrey)
		valueStyle := lipgloss.NewStyle().Width(valueWidth).Foreground(ColorGreen)

		tableContent := ""
		for _, row := range rows {
			line := lipgloss.JoinHorizontal(lipgloss.Top,
				labelStyle.Render(row.label),
				valueStyle.Render(row.value),
			)
			tableContent += line + "\n"
		}

		tableContent = strings.TrimSuffix(tableContent, "\n")

		table := tableTitleStyle.Render(title) + "\n" + tableStyle.Render(tableContent)
		return table
	}

	var sb strings.Builder

	archiveRows := []Row{
		{"ID:", fmt.Sprintf("%d", a.Id)},
		{"Run:", a.RunId},
		{"Source:", a.SourcePath},
		{"Output:", a.OutputPath},
		{"Status:", string(a.Status)},
		{"Format:", a.ArchiveFormat.String()},
		{"Pipeline:", a.PipelineMode.String()},
		{"Created:", a.CreatedAt.Format(time.DateTime)},
	}
	sb.WriteString(buildSection("ARCHIVE DETAILS", archiveRows))

	contentRows := []Row{
		{"Source Size:", L.HumanReadableBytes(uint64(a.Size))},
		{"Entries:", fmt.Sprintf("%d", a.EntryCount)},
		{"Appended:", fmt.Sprintf("%d", a.AppendedCount)},
		{"Skipped:", fmt.Sprintf("%d", a.SkippedCount)},
	}
	if a.Status == model.ARCHIVE_STATUS_COMPLETED {
		contentRows = append(contentRows, Row{"Archive Size:", L.HumanReadableBytes(uint64(a.ArchiveSize))})
		if a.Size > 0 {
			contentRows = append(contentRows, Row{"Ratio:", fmt.Sprintf("%.2f", float64(a.ArchiveSize)/float64(a.Size))})
		}
	}
	sb.WriteString("\n" + buildSection("CONTENTS", contentRows))

	return sb.String()
}
