package shift

import (
	"time"

	"github.com/google/uuid"

	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/models"
)

// Store is the persistence boundary for attendance records. All
// methods operate on the single record keyed by (employee, date).
type Store interface {
	// GetOrCreate atomically fetches the record for the day or inserts
	// the given fresh one. The unique (employee_id, date) index decides
	// races: the loser must fall back to fetching the winner's row.
	// Returns the stored record and whether this call created it.
	GetOrCreate(employeeID uuid.UUID, day time.Time, fresh *models.Attendance) (*models.Attendance, bool, error)

	// Get returns the record for the day or ErrNoActiveSession.
	Get(employeeID uuid.UUID, day time.Time) (*models.Attendance, error)

	// SetLogin persists login_time, status and late_by. Recovery path
	// for a record that exists without a login time.
	SetLogin(rec *models.Attendance) error

	// SaveBreaks persists break_time and break_flags only.
	SaveBreaks(rec *models.Attendance) error

	// Close finalizes the record: logout_time, status and totals.
	// It must be conditional on logout_time still being unset and
	// report false when a concurrent logout won.
	Close(rec *models.Attendance) (bool, error)
}
