package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/models"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/shift"
)

// AttendanceStore is the MySQL-backed shift.Store. Uniqueness on
// (employee_id, date) is enforced by the schema; this type only maps
// the conflict back into the domain.
type AttendanceStore struct {
	DB *gorm.DB
}

func NewAttendanceStore(db *gorm.DB) *AttendanceStore {
	return &AttendanceStore{DB: db}
}

func (s *AttendanceStore) GetOrCreate(employeeID uuid.UUID, day time.Time, fresh *models.Attendance) (*models.Attendance, bool, error) {
	var existing models.Attendance
	err := s.DB.Where("employee_id = ? AND date = ?", employeeID, day).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if err := s.DB.Create(fresh).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, err
		}
		// Lost the create race: fetch the winner's row.
		if err := s.DB.Where("employee_id = ? AND date = ?", employeeID, day).First(&existing).Error; err != nil {
			return nil, false, shift.ErrDuplicateAttendance
		}
		return &existing, false, nil
	}
	return fresh, true, nil
}

func (s *AttendanceStore) Get(employeeID uuid.UUID, day time.Time) (*models.Attendance, error) {
	var rec models.Attendance
	if err := s.DB.Where("employee_id = ? AND date = ?", employeeID, day).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shift.ErrNoActiveSession
		}
		return nil, err
	}
	return &rec, nil
}

func (s *AttendanceStore) SetLogin(rec *models.Attendance) error {
	return s.DB.Model(rec).Select("login_time", "status", "late_by").Updates(rec).Error
}

func (s *AttendanceStore) SaveBreaks(rec *models.Attendance) error {
	return s.DB.Model(rec).Select("break_time", "break_flags").Updates(rec).Error
}

func (s *AttendanceStore) Close(rec *models.Attendance) (bool, error) {
	result := s.DB.Model(&models.Attendance{}).
		Where("id = ? AND logout_time IS NULL", rec.ID).
		Select("logout_time", "status", "total_hours", "net_working_hours", "break_time", "break_flags").
		Updates(rec)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByEmployee returns an employee's records newest first, for the
// attendance report.
func (s *AttendanceStore) ListByEmployee(employeeID uuid.UUID) ([]models.Attendance, error) {
	var records []models.Attendance
	if err := s.DB.Where("employee_id = ?", employeeID).Order("date desc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
