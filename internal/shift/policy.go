package shift

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time within an unspecified day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "15:04" strings.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", value)
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// On anchors the time of day onto the given date, in that date's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// BreakWindow is a fixed daily break. Its full Duration is credited
// once the wall clock passes End, provided the employee logged in no
// later than End.
type BreakWindow struct {
	End      TimeOfDay
	Duration time.Duration
	Flag     string
}

// Policy is the process-wide shift configuration. Built once at
// startup and treated as read-only afterwards.
type Policy struct {
	ShiftStart    TimeOfDay
	ShiftEnd      TimeOfDay
	GraceDeadline TimeOfDay
	Breaks        []BreakWindow
	RequiredWork  time.Duration
}

// IsOnTime reports whether a login at the given instant is within the
// grace deadline. Logging in at exactly the deadline counts as on time.
func (p Policy) IsOnTime(login time.Time) bool {
	return !login.After(p.GraceDeadline.On(login))
}

// LateBy returns how far past the grace deadline the login was, or
// zero for an on-time login.
func (p Policy) LateBy(login time.Time) time.Duration {
	deadline := p.GraceDeadline.On(login)
	if !login.After(deadline) {
		return 0
	}
	return login.Sub(deadline)
}
