package shift

import (
	"time"

	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/models"
)

// ApplyBreaks credits every break window that has fully elapsed since
// the record's login. A window is credited at most once: its flag goes
// false→true and its duration is added to BreakTime. Windows that
// ended before the employee logged in are never credited. The function
// is idempotent, so it can run on every dashboard refresh and once
// more inside logout without over-counting.
//
// Returns true when the record's break state changed.
func ApplyBreaks(p Policy, rec *models.Attendance, now time.Time) bool {
	if rec.LoginTime == nil {
		return false
	}

	login := *rec.LoginTime
	changed := false
	for _, window := range p.Breaks {
		if rec.BreakFlags[window.Flag] {
			continue
		}
		windowEnd := window.End.On(rec.Date)
		if login.After(windowEnd) {
			continue
		}
		if now.Before(windowEnd) {
			continue
		}
		if rec.BreakFlags == nil {
			rec.BreakFlags = make(map[string]bool, len(p.Breaks))
		}
		rec.BreakFlags[window.Flag] = true
		rec.BreakTime += window.Duration
		changed = true
	}
	return changed
}
