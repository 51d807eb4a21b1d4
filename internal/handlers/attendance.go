package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/middleware"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/models"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/shift"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/store"
)

type AttendanceHandler struct {
	Tracker *shift.Tracker
	Store   *store.AttendanceStore
}

func NewAttendanceHandler(tracker *shift.Tracker, attendanceStore *store.AttendanceStore) *AttendanceHandler {
	return &AttendanceHandler{Tracker: tracker, Store: attendanceStore}
}

type attendanceRecordResponse struct {
	models.Attendance
	LateByDisplay          string `json:"lateByDisplay"`
	BreakTimeDisplay       string `json:"breakTimeDisplay"`
	TotalHoursDisplay      string `json:"totalHoursDisplay"`
	NetWorkingHoursDisplay string `json:"netWorkingHoursDisplay"`
}

func presentRecord(rec models.Attendance) attendanceRecordResponse {
	return attendanceRecordResponse{
		Attendance:             rec,
		LateByDisplay:          shift.FormatDuration(rec.LateBy),
		BreakTimeDisplay:       shift.FormatDuration(rec.BreakTime),
		TotalHoursDisplay:      shift.FormatDuration(rec.TotalHours),
		NetWorkingHoursDisplay: shift.FormatDuration(rec.NetWorkingHours),
	}
}

func contextEmployeeID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := c.Get(middleware.ContextEmployeeID)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Dashboard refreshes today's open record (accruing any elapsed break
// windows) and returns it with the live counters.
func (h *AttendanceHandler) Dashboard(c *gin.Context) {
	employeeID, ok := contextEmployeeID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	record, live, err := h.Tracker.Refresh(employeeID, time.Now())
	if err != nil {
		if errors.Is(err, shift.ErrNoActiveSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active attendance session"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attendance": presentRecord(*record),
		"live":       live,
	})
}

// Logout closes today's record, subject to the shift gates.
func (h *AttendanceHandler) Logout(c *gin.Context) {
	employeeID, ok := contextEmployeeID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	record, err := h.Tracker.Logout(employeeID, time.Now())
	if err != nil {
		var early *shift.EarlyLogoutError
		var short *shift.InsufficientWorkError
		switch {
		case errors.Is(err, shift.ErrNoActiveSession):
			c.JSON(http.StatusNotFound, gin.H{"error": "no active attendance session"})
		case errors.As(err, &early):
			c.JSON(http.StatusConflict, gin.H{
				"error":    "logout not allowed before shift end",
				"shiftEnd": early.ShiftEnd.Format("15:04"),
			})
		case errors.As(err, &short):
			c.JSON(http.StatusConflict, gin.H{
				"error":     "minimum work duration not met",
				"remaining": shift.FormatDuration(short.Deficit()),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"attendance": presentRecord(*record)})
}

// Report lists attendance records, newest first. Employees see their
// own history; admins and managers may pass ?employeeId= for anyone's.
func (h *AttendanceHandler) Report(c *gin.Context) {
	employeeID, ok := contextEmployeeID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	role, _ := c.Get(middleware.ContextRole)
	if requested := c.Query("employeeId"); requested != "" && role != models.RoleEmployee {
		parsed, err := uuid.Parse(requested)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employeeId"})
			return
		}
		employeeID = parsed
	}

	records, err := h.Store.ListByEmployee(employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load attendance"})
		return
	}

	response := make([]attendanceRecordResponse, 0, len(records))
	for _, rec := range records {
		response = append(response, presentRecord(rec))
	}
	c.JSON(http.StatusOK, response)
}
