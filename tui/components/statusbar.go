package components

import (
	"arkiv/database/model"
	"fmt"
	"strings"

	L "arkiv/logger"
)

func RenderStatusBar(
	a *model.Archive,
	width int,
) string {
	if a == nil {
		return ""
	}
	var sb strings.Builder

	switch a.Status {
	case model.ARCHIVE_STATUS_QUEUED:
		sb.WriteString(DimStyle.Render("Status | IN QUEUE"))

	case model.ARCHIVE_STATUS_RUNNING:
		pct := 0.0
		if a.EntryCount > 0 {
			pct = float64(a.AppendedCount) * 100.0 / float64(a.EntryCount)
		}
		sb.WriteString(fmt.Sprintf("Status | ARCHIVING %s %3.2f%%", L.ProgressBar(pct, width-30), pct))

	case model.ARCHIVE_STATUS_ABORTED:
		sb.WriteString(RedStyle.Render("Status | ✗  ARCHIVE ABORTED"))

	case model.ARCHIVE_STATUS_FAILED:
		sb.WriteString(RedStyle.Render("Status | ✗  ARCHIVE FAILED"))

	case model.ARCHIVE_STATUS_COMPLETED:
		if a.SkippedCount > 0 {
			sb.WriteString(YellowStyle.Render(fmt.Sprintf("Status | ✓  ARCHIVE COMPLETE (%d skipped)", a.SkippedCount)))
		} else {
			sb.WriteString(GreenStyle.Render("Status | ✓  ARCHIVE COMPLETE"))
		}
	}

	return sb.String()
}
