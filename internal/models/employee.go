package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

type Employee struct {
	ID           uuid.UUID   `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID   string      `gorm:"uniqueIndex;size:20;not null" json:"employeeId"`
	DepartmentID *uuid.UUID  `gorm:"type:char(36);index" json:"departmentId,omitempty"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Role         string      `gorm:"size:20;not null;default:EMPLOYEE" json:"role"`
	Phone        string      `gorm:"size:20" json:"phone"`
	PasswordHash string      `gorm:"size:255;not null" json:"-"`
	IsActive     bool        `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
