package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID   uuid.UUID `gorm:"type:char(36);index;not null" json:"employeeId"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	IsCompleted  bool      `gorm:"not null;default:false" json:"isCompleted"`
	AssignedDate time.Time `gorm:"type:date;not null" json:"assignedDate"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
