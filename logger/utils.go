package L

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

func HumanReadableBytes(bytes uint64) string {
	return humanize.IBytes(bytes)
}

// progressPercentage should be a float64 between 0.0 and 100.0 (inclusive).
func ProgressBar(progressPercentage float64, barWidth int) string {
	if barWidth <= 0 {
		barWidth = 24
	}
	fraction := progressPercentage / 100.0
	fraction = max(fraction, 0.0)
	fraction = min(fraction, 1.0)

	filledWidth := int(float64(barWidth) * fraction)
	emptyWidth := barWidth - filledWidth

	filledSymbol := strings.Repeat("█", filledWidth)
	emptySymbol := strings.Repeat("░", emptyWidth)

	return fmt.Sprintf("%s%s", filledSymbol, emptySymbol)
}

type TruncateMode int

const (
	TRUNC_RIGHT  TruncateMode = iota // Truncate from the right: ... at the end
	TRUNC_LEFT                       // Truncate from the left; ... at the beginning
	TRUNC_CENTER                     // Truncate from the center: ... in the middle
)

func TruncateString(input string, maxLen int, mode TruncateMode) string {
	ellipsis := "..."
	inputLen := utf8.RuneCountInString(input)
	ellipsisLen := utf8.RuneCountInString(ellipsis)

	if maxLen < 0 {
		return ""
	}
	if inputLen <= maxLen {
		return input
	}

	if maxLen < ellipsisLen {
		return string([]rune(ellipsis)[:maxLen])
	}

	runes := []rune(input)

	switch mode {
	case TRUNC_RIGHT:
		return string(runes[:maxLen-ellipsisLen]) + ellipsis

	case TRUNC_LEFT:
		return ellipsis + string(runes[inputLen-(maxLen-ellipsisLen):])

	case TRUNC_CENTER:
		halfLen := (maxLen - ellipsisLen) / 2
		leftPart := string(runes[:halfLen])
		rightPart := string(runes[inputLen-(maxLen-ellipsisLen-halfLen):])
		return leftPart + ellipsis + rightPart

	default:
		return string(runes[:maxLen-ellipsisLen]) + ellipsis
	}
}

// HumanReadableTime converts a duration in milliseconds to a human-readable string.
// Examples: "1h 5m", "1h 50s", "1m 5s", "1m".
func HumanReadableTime(millis int64) string {
	if millis < 0 {
		return fmt.Sprintf("-%s", HumanReadableTime(-millis))
	}
	if millis == 0 {
		return "0s"
	}

	d := time.Duration(millis) * time.Millisecond
	// TODO: show days as well
	hours := int64(d / time.Hour)
	d %= time.Hour
	minutes := int64(d / time.Minute)
	d %= time.Minute
	seconds := int64(d / time.Second)
	d %= time.Second
	ms := int64(d / time.Millisecond)

	parts := []string{}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	if ms > 0 || (len(parts) == 0 && millis > 0) {
		parts = append(parts, fmt.Sprintf("%dms", ms))
	}

	return strings.Join(parts, " ")
}
