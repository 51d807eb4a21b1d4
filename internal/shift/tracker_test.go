package shift

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/models"
)

// ---------------------------------------------------------------------------
// In-memory stub store
// ---------------------------------------------------------------------------

type stubStore struct {
	records map[string]*models.Attendance

	setLoginCalls   int
	saveBreaksCalls int
	closeCalls      int
	forceCloseLost  bool // simulate losing the logout compare-and-swap
}

func newStubStore() *stubStore {
	return &stubStore{records: make(map[string]*models.Attendance)}
}

func storeKey(employeeID uuid.UUID, day time.Time) string {
	return employeeID.String() + "/" + day.Format("2006-01-02")
}

func cloneRecord(rec *models.Attendance) *models.Attendance {
	clone := *rec
	if rec.BreakFlags != nil {
		clone.BreakFlags = make(map[string]bool, len(rec.BreakFlags))
		for flag, set := range rec.BreakFlags {
			clone.BreakFlags[flag] = set
		}
	}
	return &clone
}

func (s *stubStore) GetOrCreate(employeeID uuid.UUID, day time.Time, fresh *models.Attendance) (*models.Attendance, bool, error) {
	key := storeKey(employeeID, day)
	if existing, ok := s.records[key]; ok {
		return cloneRecord(existing), false, nil
	}
	fresh.ID = uuid.New()
	s.records[key] = cloneRecord(fresh)
	return cloneRecord(fresh), true, nil
}

func (s *stubStore) Get(employeeID uuid.UUID, day time.Time) (*models.Attendance, error) {
	existing, ok := s.records[storeKey(employeeID, day)]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return cloneRecord(existing), nil
}

func (s *stubStore) SetLogin(rec *models.Attendance) error {
	s.setLoginCalls++
	stored := s.records[storeKey(rec.EmployeeID, rec.Date)]
	stored.LoginTime = rec.LoginTime
	stored.Status = rec.Status
	stored.LateBy = rec.LateBy
	return nil
}

func (s *stubStore) SaveBreaks(rec *models.Attendance) error {
	s.saveBreaksCalls++
	stored := s.records[storeKey(rec.EmployeeID, rec.Date)]
	stored.BreakTime = rec.BreakTime
	stored.BreakFlags = cloneRecord(rec).BreakFlags
	return nil
}

func (s *stubStore) Close(rec *models.Attendance) (bool, error) {
	s.closeCalls++
	if s.forceCloseLost {
		return false, nil
	}
	stored := s.records[storeKey(rec.EmployeeID, rec.Date)]
	if stored.LogoutTime != nil {
		return false, nil
	}
	stored.LogoutTime = rec.LogoutTime
	stored.Status = rec.Status
	stored.TotalHours = rec.TotalHours
	stored.NetWorkingHours = rec.NetWorkingHours
	stored.BreakTime = rec.BreakTime
	stored.BreakFlags = cloneRecord(rec).BreakFlags
	return true, nil
}

func (s *stubStore) stored(employeeID uuid.UUID, day time.Time) *models.Attendance {
	return s.records[storeKey(employeeID, day)]
}

func newTestTracker() (*Tracker, *stubStore) {
	stub := newStubStore()
	return NewTracker(testPolicy(), stub), stub
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestLoginOnTime(t *testing.T) {
	tracker, _ := newTestTracker()
	employeeID := uuid.New()

	rec, err := tracker.Login(employeeID, at(10, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Status != models.StatusPresent {
		t.Fatalf("status = %q, want Present", rec.Status)
	}
	if rec.LateBy != 0 {
		t.Fatalf("lateBy = %v, want 0", rec.LateBy)
	}
	if rec.LoginTime == nil || !rec.LoginTime.Equal(at(10, 10)) {
		t.Fatalf("loginTime = %v, want %v", rec.LoginTime, at(10, 10))
	}
}

func TestLoginLate(t *testing.T) {
	tracker, _ := newTestTracker()

	rec, err := tracker.Login(uuid.New(), at(10, 40))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Status != models.StatusLate {
		t.Fatalf("status = %q, want Late", rec.Status)
	}
	if rec.LateBy != 25*time.Minute {
		t.Fatalf("lateBy = %v, want 25m", rec.LateBy)
	}
}

func TestLoginIdempotent(t *testing.T) {
	tracker, stub := newTestTracker()
	employeeID := uuid.New()

	first, err := tracker.Login(employeeID, at(10, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := tracker.Login(employeeID, at(12, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.LoginTime.Equal(*first.LoginTime) {
		t.Fatalf("login time overwritten: %v != %v", second.LoginTime, first.LoginTime)
	}
	if second.Status != models.StatusPresent {
		t.Fatalf("status recomputed on repeat login: %q", second.Status)
	}
	if stub.setLoginCalls != 0 {
		t.Fatalf("repeat login wrote %d times", stub.setLoginCalls)
	}
}

func TestLoginBackfillsPlaceholderRecord(t *testing.T) {
	tracker, stub := newTestTracker()
	employeeID := uuid.New()
	day := DayOf(at(10, 20))

	// Absent placeholder with no login time.
	stub.records[storeKey(employeeID, day)] = &models.Attendance{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       day,
		Status:     models.StatusAbsent,
	}

	rec, err := tracker.Login(employeeID, at(10, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.LoginTime == nil || !rec.LoginTime.Equal(at(10, 20)) {
		t.Fatalf("loginTime = %v, want %v", rec.LoginTime, at(10, 20))
	}
	if rec.Status != models.StatusLate || rec.LateBy != 5*time.Minute {
		t.Fatalf("status/lateBy = %q/%v, want Late/5m", rec.Status, rec.LateBy)
	}
	if stub.setLoginCalls != 1 {
		t.Fatalf("setLogin calls = %d, want 1", stub.setLoginCalls)
	}
}

// ---------------------------------------------------------------------------
// Refresh
// ---------------------------------------------------------------------------

func TestRefreshLiveView(t *testing.T) {
	tracker, _ := newTestTracker()
	employeeID := uuid.New()

	if _, err := tracker.Login(employeeID, at(10, 40)); err != nil {
		t.Fatalf("login: %v", err)
	}

	rec, live, err := tracker.Refresh(employeeID, at(12, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Gross elapsed time; accrued breaks are not subtracted here.
	if live.WorkingSeconds != int64((80 * time.Minute).Seconds()) {
		t.Fatalf("workingSeconds = %d, want %d", live.WorkingSeconds, int64((80*time.Minute).Seconds()))
	}
	if live.BreakSeconds != int64((10 * time.Minute).Seconds()) {
		t.Fatalf("breakSeconds = %d, want 600", live.BreakSeconds)
	}
	if live.Status != models.StatusLate || live.LateBy != "00h 25m 00s" {
		t.Fatalf("live = %+v", live)
	}
	if rec.BreakTime != 10*time.Minute {
		t.Fatalf("breakTime = %v, want 10m", rec.BreakTime)
	}
}

func TestRefreshPersistsOnlyOnChange(t *testing.T) {
	tracker, stub := newTestTracker()
	employeeID := uuid.New()

	if _, err := tracker.Login(employeeID, at(10, 0)); err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, _, err := tracker.Refresh(employeeID, at(10, 30)); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if stub.saveBreaksCalls != 0 {
		t.Fatalf("no window elapsed yet, saveBreaks calls = %d", stub.saveBreaksCalls)
	}

	if _, _, err := tracker.Refresh(employeeID, at(11, 45)); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if stub.saveBreaksCalls != 1 {
		t.Fatalf("saveBreaks calls = %d, want 1", stub.saveBreaksCalls)
	}

	// Same instant again: nothing new to persist.
	if _, _, err := tracker.Refresh(employeeID, at(11, 45)); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if stub.saveBreaksCalls != 1 {
		t.Fatalf("idempotent refresh persisted again: %d", stub.saveBreaksCalls)
	}
}

func TestRefreshBreakTimeMonotonic(t *testing.T) {
	tracker, _ := newTestTracker()
	employeeID := uuid.New()

	if _, err := tracker.Login(employeeID, at(10, 0)); err != nil {
		t.Fatalf("login: %v", err)
	}

	previous := time.Duration(0)
	for _, now := range []time.Time{at(11, 0), at(11, 35), at(12, 0), at(14, 0), at(16, 30)} {
		rec, _, err := tracker.Refresh(employeeID, now)
		if err != nil {
			t.Fatalf("refresh at %v: %v", now, err)
		}
		if rec.BreakTime < previous {
			t.Fatalf("breakTime decreased: %v < %v", rec.BreakTime, previous)
		}
		previous = rec.BreakTime
	}
	if previous != time.Hour {
		t.Fatalf("final breakTime = %v, want 1h", previous)
	}
}

func TestRefreshWithoutSession(t *testing.T) {
	tracker, _ := newTestTracker()

	if _, _, err := tracker.Refresh(uuid.New(), at(12, 0)); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("err = %v, want ErrNoActiveSession", err)
	}
}

// ---------------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------------

func TestLogoutBeforeShiftEnd(t *testing.T) {
	tracker, stub := newTestTracker()
	employeeID := uuid.New()

	if _, err := tracker.Login(employeeID, at(10, 0)); err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err := tracker.Logout(employeeID, at(16, 59))
	var early *EarlyLogoutError
	if !errors.As(err, &early) {
		t.Fatalf("err = %v, want EarlyLogoutError", err)
	}
	if !early.ShiftEnd.Equal(at(17, 0)) {
		t.Fatalf("shiftEnd = %v, want 17:00", early.ShiftEnd)
	}
	if stored := stub.stored(employeeID, DayOf(at(10, 0))); stored.LogoutTime != nil {
		t.Fatal("record must stay open after a denied logout")
	}
}

// Scenario: 8h minimum, 1h of breaks, login 10:00, logout attempt at
// shift end 17:00. Net 6h < 8h, so logout is denied with a 2h deficit.
func TestLogoutInsufficientWork(t *testing.T) {
	tracker, stub := newTestTracker()
	employeeID := uuid.New()

	if _, err := tracker.Login(employeeID, at(10, 0)); err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err := tracker.Logout(employeeID, at(17, 0))
	var short *InsufficientWorkError
	if !errors.As(err, &short) {
		t.Fatalf("err = %v, want InsufficientWorkError", err)
	}
	if short.Worked != 6*time.Hour {
		t.Fatalf("worked = %v, want 6h", short.Worked)
	}
	if short.Deficit() != 2*time.Hour {
		t.Fatalf("deficit = %v, want 2h", short.Deficit())
	}

	stored := stub.stored(employeeID, DayOf(at(10, 0)))
	if stored.LogoutTime != nil || stored.TotalHours != 0 {
		t.Fatal("denied logout must not finalize the record")
	}
	// Breaks crossed before the attempt are still persisted.
	if stored.BreakTime != time.Hour {
		t.Fatalf("stored breakTime = %v, want 1h", stored.BreakTime)
	}
}

// Same scenario attempted at 18:00: the logout instant is capped to
// shift end before totals are computed, so the outcome is identical.
func TestLogoutCappedAtShiftEnd(t *testing.T) {
	tracker, _ := newTestTracker()
	employeeID := uuid.New()

	if _, err := tracker.Login(employeeID, at(10, 0)); err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err := tracker.Logout(employeeID, at(18, 0))
	var short *InsufficientWorkError
	if !errors.As(err, &short) {
		t.Fatalf("err = %v, want InsufficientWorkError", err)
	}
	if short.Worked != 6*time.Hour || short.Deficit() != 2*time.Hour {
		t.Fatalf("worked/deficit = %v/%v, want 6h/2h", short.Worked, short.Deficit())
	}
}

func TestLogoutSuccess(t *testing.T) {
	stub := newStubStore()
	policy := testPolicy()
	policy.RequiredWork = 6 * time.Hour
	tracker := NewTracker(policy, stub)
	employeeID := uuid.New()

	if _, err := tracker.Login(employeeID, at(10, 0)); err != nil {
		t.Fatalf("login: %v", err)
	}

	rec, err := tracker.Logout(employeeID, at(18, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.LogoutTime == nil || !rec.LogoutTime.Equal(at(17, 0)) {
		t.Fatalf("logoutTime = %v, want capped 17:00", rec.LogoutTime)
	}
	if rec.TotalHours != 7*time.Hour {
		t.Fatalf("totalHours = %v, want 7h", rec.TotalHours)
	}
	if rec.BreakTime != time.Hour {
		t.Fatalf("breakTime = %v, want 1h", rec.BreakTime)
	}
	if rec.NetWorkingHours != 6*time.Hour {
		t.Fatalf("netWorkingHours = %v, want 6h", rec.NetWorkingHours)
	}
	if rec.Status != models.StatusPresent {
		t.Fatalf("status = %q, want Present", rec.Status)
	}

	stored := stub.stored(employeeID, DayOf(at(10, 0)))
	if stored.LogoutTime == nil {
		t.Fatal("record not closed in store")
	}
}

func TestLogoutAccruesMissedWindows(t *testing.T) {
	stub := newStubStore()
	policy := testPolicy()
	policy.RequiredWork = 6 * time.Hour
	tracker := NewTracker(policy, stub)
	employeeID := uuid.New()

	// No refresh ever runs; logout alone must still credit all windows.
	if _, err := tracker.Login(employeeID, at(10, 0)); err != nil {
		t.Fatalf("login: %v", err)
	}

	rec, err := tracker.Logout(employeeID, at(17, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.BreakTime != time.Hour {
		t.Fatalf("breakTime = %v, want 1h from logout-side accrual", rec.BreakTime)
	}
	if rec.NetWorkingHours != 6*time.Hour {
		t.Fatalf("netWorkingHours = %v, want 6h", rec.NetWorkingHours)
	}
}

func TestLogoutLateEmployeeKeepsLateStatus(t *testing.T) {
	stub := newStubStore()
	policy := testPolicy()
	policy.RequiredWork = 5 * time.Hour
	tracker := NewTracker(policy, stub)
	employeeID := uuid.New()

	if _, err := tracker.Login(employeeID, at(10, 40)); err != nil {
		t.Fatalf("login: %v", err)
	}

	rec, err := tracker.Logout(employeeID, at(17, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Status != models.StatusLate {
		t.Fatalf("status = %q, want Late", rec.Status)
	}
	if rec.NetWorkingHours != rec.TotalHours-rec.BreakTime {
		t.Fatalf("net = %v, total = %v, break = %v", rec.NetWorkingHours, rec.TotalHours, rec.BreakTime)
	}
}

func TestLogoutTwice(t *testing.T) {
	stub := newStubStore()
	policy := testPolicy()
	policy.RequiredWork = 6 * time.Hour
	tracker := NewTracker(policy, stub)
	employeeID := uuid.New()

	if _, err := tracker.Login(employeeID, at(10, 0)); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := tracker.Logout(employeeID, at(17, 0)); err != nil {
		t.Fatalf("first logout: %v", err)
	}

	if _, err := tracker.Logout(employeeID, at(17, 30)); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("second logout err = %v, want ErrNoActiveSession", err)
	}
}

func TestLogoutLosesCompareAndSwap(t *testing.T) {
	stub := newStubStore()
	policy := testPolicy()
	policy.RequiredWork = 6 * time.Hour
	tracker := NewTracker(policy, stub)
	employeeID := uuid.New()

	if _, err := tracker.Login(employeeID, at(10, 0)); err != nil {
		t.Fatalf("login: %v", err)
	}

	stub.forceCloseLost = true
	if _, err := tracker.Logout(employeeID, at(17, 0)); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("err = %v, want ErrNoActiveSession when the swap is lost", err)
	}
}

func TestLogoutWithoutSession(t *testing.T) {
	tracker, _ := newTestTracker()

	if _, err := tracker.Logout(uuid.New(), at(17, 0)); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("err = %v, want ErrNoActiveSession", err)
	}
}
