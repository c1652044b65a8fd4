package requests

import (
	"fmt"
	"strings"
	"time"
)

// Display layouts for the operator-facing date columns, en-GB day-first.
const (
	TimestampLayout    = "02/01/2006 15:04:05"
	ReadyDateLayout    = "02/01/2006 15:04"
	DeletionDateLayout = "02/01/2006"
)

var readyDateLayouts = []string{
	ReadyDateLayout,
	TimestampLayout,
	DeletionDateLayout,
	time.RFC3339,
}

// FormatTimestamp renders a submission time for the timestamp column.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// FormatReadyDate renders the ready-date column value.
func FormatReadyDate(t time.Time) string {
	return t.Format(ReadyDateLayout)
}

// DeletedSentinel renders the upload-location value written after reclamation.
func DeletedSentinel(t time.Time) string {
	return fmt.Sprintf("%s - %s", DeletedSentinelPrefix, t.Format(DeletionDateLayout))
}

// ParseReadyDate interprets a ready-date column value. Values are day-first;
// a dash-delimited date is accepted because staff sometimes type them that
// way, and RFC 3339 covers values pasted from elsewhere.
func ParseReadyDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty ready date")
	}

	normalized := trimmed
	if !strings.Contains(normalized, "T") {
		normalized = strings.ReplaceAll(normalized, "-", "/")
	}

	for _, layout := range readyDateLayouts {
		candidate := normalized
		if layout == time.RFC3339 {
			candidate = trimmed
		}
		if t, err := time.Parse(layout, candidate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable ready date %q", trimmed)
}
