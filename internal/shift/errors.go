package shift

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoActiveSession means logout or refresh was attempted with no
	// open attendance record for the day.
	ErrNoActiveSession = errors.New("no active attendance session")

	// ErrDuplicateAttendance is the create-race conflict on
	// (employee, date). The tracker always recovers it by re-fetching;
	// it never reaches callers.
	ErrDuplicateAttendance = errors.New("attendance already exists for this day")
)

// EarlyLogoutError rejects a logout attempted before the shift ends.
type EarlyLogoutError struct {
	ShiftEnd time.Time
}

func (e *EarlyLogoutError) Error() string {
	return fmt.Sprintf("logout not allowed before shift end %s", e.ShiftEnd.Format("15:04"))
}

// InsufficientWorkError rejects a logout before the minimum net
// working time has accrued. The session stays open for a later retry.
type InsufficientWorkError struct {
	Required time.Duration
	Worked   time.Duration
}

// Deficit is the net working time still owed.
func (e *InsufficientWorkError) Deficit() time.Duration {
	return e.Required - e.Worked
}

func (e *InsufficientWorkError) Error() string {
	return fmt.Sprintf("minimum work duration not met: %s remaining", FormatDuration(e.Deficit()))
}
