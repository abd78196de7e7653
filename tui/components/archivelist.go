package components

import (
	"arkiv/database/model"
	"fmt"
	"path/filepath"
	"strings"

	L "arkiv/logger"

	"github.com/charmbracelet/lipgloss"
)

func StatusLabel(s model.ArchiveStatus) string {
	switch s {
	case model.ARCHIVE_STATUS_QUEUED:
		return "QUEUED"
	case model.ARCHIVE_STATUS_RUNNING:
		return "ARCHIVING"
	case model.ARCHIVE_STATUS_ABORTED:
		return "ABORTED"
	case model.ARCHIVE_STATUS_FAILED:
		return "FAILED"
	case model.ARCHIVE_STATUS_COMPLETED:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

func RenderArchiveList(
	archives []model.Archive,
	sidebarCursor int,
	focusOnSidebar bool,
	width int,
) string {
	var sb strings.Builder

	// align with tabs on the content side (1 line to match tab position)
	sb.WriteString("\n")

	for i, a := range archives {
		name := L.TruncateString(filepath.Base(a.OutputPath), width-6, L.TRUNC_CENTER)
		label := StatusLabel(a.Status)
		style := lipgloss.NewStyle()

		if i == sidebarCursor {
			if focusOnSidebar {
				style = selectedItemStyle
			} else {
				style = style.Background(ColorGrey)
			}
		} else {
			label = StatusStyle(a.Status).Render(label)
		}
		msg := fmt.Sprintf("#%d %s\n• %s", a.Id, name, label)

		// width accounts for borders (2) only, padding is handled by box style
		sb.WriteString(style.Width(width-2).Render(msg) + "\n")
	}

	return sb.String()
}
