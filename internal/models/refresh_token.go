package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RefreshToken struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:char(36);index;not null"`
	Token      string    `gorm:"uniqueIndex;size:255;not null"`
	ExpiresAt  time.Time `gorm:"index"`
	RevokedAt  *time.Time
	CreatedAt  time.Time
}

func (r *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
