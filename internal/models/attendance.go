package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent = "Present"
	StatusLate    = "Late"
	StatusAbsent  = "Absent"
)

// Attendance is one employee's record for one calendar day. The
// (employee_id, date) pair is unique; durations are stored as
// nanosecond counts and rendered only at the API boundary.
type Attendance struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:idx_attendance_employee_date" json:"employeeId"`
	Date       time.Time  `gorm:"type:date;not null;uniqueIndex:idx_attendance_employee_date" json:"date"`
	LoginTime  *time.Time `json:"loginTime,omitempty"`
	LogoutTime *time.Time `json:"logoutTime,omitempty"`
	Status     string     `gorm:"size:10;not null;default:Absent" json:"status"`

	LateBy          time.Duration   `json:"lateBy"`
	BreakTime       time.Duration   `json:"breakTime"`
	BreakFlags      map[string]bool `gorm:"serializer:json" json:"breakFlags"`
	TotalHours      time.Duration   `json:"totalHours"`
	NetWorkingHours time.Duration   `json:"netWorkingHours"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Open reports whether the record accepts further timekeeping events.
func (a *Attendance) Open() bool {
	return a.LoginTime != nil && a.LogoutTime == nil
}
