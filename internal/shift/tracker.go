package shift

import (
	"time"

	"github.com/google/uuid"

	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/models"
)

// Tracker runs the daily attendance lifecycle for an already
// authenticated employee: NoRecord → LoggedIn → LoggedOut, one record
// per (employee, date). It holds no per-session state of its own.
type Tracker struct {
	Policy Policy
	Store  Store
}

func NewTracker(policy Policy, store Store) *Tracker {
	return &Tracker{Policy: policy, Store: store}
}

// LiveView is the dashboard projection of an open record. Working
// seconds are the gross span since login; accrued break time is
// reported separately, not subtracted from the live counter.
type LiveView struct {
	WorkingSeconds int64  `json:"workingSeconds"`
	BreakSeconds   int64  `json:"breakSeconds"`
	Status         string `json:"status"`
	LateBy         string `json:"lateBy,omitempty"`
}

// DayOf normalizes an instant to its calendar date.
func DayOf(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Login records the employee's arrival for the day. The first call
// creates the record and fixes login time and on-time/late status;
// repeat calls are no-ops returning the existing record. A stored
// login time is never overwritten.
func (t *Tracker) Login(employeeID uuid.UUID, now time.Time) (*models.Attendance, error) {
	day := DayOf(now)
	login := now

	fresh := &models.Attendance{
		EmployeeID: employeeID,
		Date:       day,
		LoginTime:  &login,
		LateBy:     t.Policy.LateBy(now),
		BreakFlags: map[string]bool{},
	}
	fresh.Status = models.StatusPresent
	if fresh.LateBy > 0 {
		fresh.Status = models.StatusLate
	}

	rec, created, err := t.Store.GetOrCreate(employeeID, day, fresh)
	if err != nil {
		return nil, err
	}
	if created || rec.LoginTime != nil {
		return rec, nil
	}

	// Recovery: a row exists (for example an Absent placeholder) but
	// was never logged into.
	rec.LoginTime = &login
	rec.LateBy = t.Policy.LateBy(now)
	rec.Status = models.StatusPresent
	if rec.LateBy > 0 {
		rec.Status = models.StatusLate
	}
	if err := t.Store.SetLogin(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Refresh accrues any newly elapsed break windows and returns the
// dashboard view. It never creates or closes a record.
func (t *Tracker) Refresh(employeeID uuid.UUID, now time.Time) (*models.Attendance, LiveView, error) {
	rec, err := t.Store.Get(employeeID, DayOf(now))
	if err != nil {
		return nil, LiveView{}, err
	}
	if !rec.Open() {
		return nil, LiveView{}, ErrNoActiveSession
	}

	if ApplyBreaks(t.Policy, rec, now) {
		if err := t.Store.SaveBreaks(rec); err != nil {
			return nil, LiveView{}, err
		}
	}

	return rec, t.liveView(rec, now), nil
}

// Logout finalizes the day. It re-runs break accrual, caps the logout
// instant at shift end, and applies the shift gates: no logout before
// shift end, none before the required net working time has accrued.
// A denied logout leaves the session open.
func (t *Tracker) Logout(employeeID uuid.UUID, now time.Time) (*models.Attendance, error) {
	rec, err := t.Store.Get(employeeID, DayOf(now))
	if err != nil {
		return nil, err
	}
	if !rec.Open() {
		return nil, ErrNoActiveSession
	}

	shiftEnd := t.Policy.ShiftEnd.On(rec.Date)
	if now.Before(shiftEnd) {
		return nil, &EarlyLogoutError{ShiftEnd: shiftEnd}
	}

	// Capture windows crossed since the last refresh before totals are
	// computed, so no earned break is lost.
	if ApplyBreaks(t.Policy, rec, now) {
		if err := t.Store.SaveBreaks(rec); err != nil {
			return nil, err
		}
	}

	logoutAt := now
	if logoutAt.After(shiftEnd) {
		logoutAt = shiftEnd
	}

	total := logoutAt.Sub(*rec.LoginTime)
	if total < 0 {
		total = 0
	}
	net := total - rec.BreakTime
	if net < 0 {
		net = 0
	}

	if net < t.Policy.RequiredWork {
		return nil, &InsufficientWorkError{Required: t.Policy.RequiredWork, Worked: net}
	}

	rec.LogoutTime = &logoutAt
	rec.TotalHours = total
	rec.NetWorkingHours = net
	rec.Status = models.StatusPresent
	if rec.LateBy > 0 {
		rec.Status = models.StatusLate
	}

	closed, err := t.Store.Close(rec)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, ErrNoActiveSession
	}
	return rec, nil
}

func (t *Tracker) liveView(rec *models.Attendance, now time.Time) LiveView {
	view := LiveView{
		BreakSeconds: int64(rec.BreakTime / time.Second),
		Status:       rec.Status,
	}
	if elapsed := now.Sub(*rec.LoginTime); elapsed > 0 {
		view.WorkingSeconds = int64(elapsed / time.Second)
	}
	if rec.LateBy > 0 {
		view.LateBy = FormatDuration(rec.LateBy)
	}
	return view
}
