package shift

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as "HHh MMm SSs", truncating
// sub-second components. Zero and negative durations render as
// "00h 00m 00s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02dh %02dm %02ds", hours, minutes, seconds)
}
