package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/models"
)

func Open(dsn string) (*gorm.DB, error) {
	// TranslateError maps the driver's duplicate-key error onto
	// gorm.ErrDuplicatedKey, which the attendance store relies on for
	// the (employee, date) create race.
	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(
		&models.Department{},
		&models.Employee{},
		&models.RefreshToken{},
		&models.Task{},
		&models.Attendance{},
	); err != nil {
		return nil, err
	}

	return database, nil
}
