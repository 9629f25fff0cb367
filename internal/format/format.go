// Package format renders durations for display.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Clock formats a duration as M:SS, or H:MM:SS when it reaches an hour.
// Negative durations are clamped to zero.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	hours := total / 3600
	mins := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// Human formats a duration as space-separated unit tokens, e.g. "2h 5m"
// or "45s". Zero renders as "0s".
func Human(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	if total == 0 {
		return "0s"
	}

	hours := total / 3600
	mins := (total % 3600) / 60
	secs := total % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	if secs > 0 {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}
	return strings.Join(parts, " ")
}

// Stopwatch formats an elapsed value with tenths of a second, e.g.
// "1:05.3", matching the cadence of a live-updating readout.
func Stopwatch(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	tenths := int(d / (100 * time.Millisecond))
	secs := tenths / 10
	mins := secs / 60
	hours := mins / 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%d", hours, mins%60, secs%60, tenths%10)
	}
	return fmt.Sprintf("%d:%02d.%d", mins, secs%60, tenths%10)
}
