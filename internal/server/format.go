package server

import (
	"fmt"
	"time"
)

// datetimeLayouts cover the timestamp shapes the workflow engine writes:
// with or without a zone offset, fractional seconds, or a time component.
var datetimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDatetime renders a stored ISO-8601 timestamp as "YYYY-MM-DD HH:MM".
// A trailing Z is treated as the UTC offset. Empty input renders "N/A";
// anything unparseable passes through unchanged.
func FormatDatetime(value string) string {
	if value == "" {
		return "N/A"
	}
	for _, layout := range datetimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format("2006-01-02 15:04")
		}
	}
	return value
}

// FormatDuration renders integer milliseconds for display: "N/A" when
// absent, "{ms}ms" under a second, "{s:.2f}s" under a minute, "{m:.2f}min"
// beyond.
func FormatDuration(ms *int64) string {
	if ms == nil {
		return "N/A"
	}
	v := *ms
	if v < 1000 {
		return fmt.Sprintf("%dms", v)
	}
	if v < 60000 {
		return fmt.Sprintf("%.2fs", float64(v)/1000)
	}
	return fmt.Sprintf("%.2fmin", float64(v)/60000)
}
