package db

import (
	"errors"
	"strings"
	"time"

	"github.com/JorgeSaicoski/microservice-commons/utils"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres connection. TranslateError is enabled so
// unique-constraint violations surface as gorm.ErrDuplicatedKey.
func Connect() (*gorm.DB, error) {
	dsn := utils.GetEnv(
		"DATABASE_URL",
		"host=localhost user=postgres password=postgres dbname=hroffice port=5432 sslmode=disable",
	)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// Migrate creates or updates all tables.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&Employee{},
		&AttendanceRecord{},
		&LeaveRecord{},
		&LoginHistory{},
		&Project{},
		&ProjectPhase{},
		&PhaseTask{},
		&IdentifierSequence{},
	)
}

// IsDuplicateKey reports whether err is a uniqueness-constraint violation.
// The string checks cover drivers that bypass gorm's error translation.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "23505")
}

// DateOf returns the calendar day of t.
func DateOf(t time.Time) datatypes.Date {
	return datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()))
}
