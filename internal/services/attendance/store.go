package attendance

import (
	"errors"
	"fmt"

	"github.com/codeedex/hr-office/internal/apperr"
	"github.com/codeedex/hr-office/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store serializes engine mutations per employee. WithEmployeeLock resolves
// the employee by code, takes an exclusive lock on its row and runs fn in
// the same transaction; either everything in fn commits or nothing does.
type Store interface {
	WithEmployeeLock(employeeCode string, fn func(tx TxStore, emp *db.Employee) error) error
}

// TxStore is the transaction-scoped persistence surface the engine writes
// through.
type TxStore interface {
	FindOpenSession(employeeID uint) (*db.AttendanceRecord, error)
	CreateAttendance(record *db.AttendanceRecord) error
	SaveAttendance(record *db.AttendanceRecord) error

	HasLeave(employeeID uint, date datatypes.Date) (bool, error)
	CreateLeave(record *db.LeaveRecord) error

	FindLogin(employeeID uint, date datatypes.Date) (*db.LoginHistory, error)
	CreateLogin(record *db.LoginHistory) error
	SaveLogin(record *db.LoginHistory) error
}

// GormStore is the postgres-backed Store, plus the read queries the API
// layer needs.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(database *gorm.DB) *GormStore {
	return &GormStore{db: database}
}

func (s *GormStore) WithEmployeeLock(employeeCode string, fn func(tx TxStore, emp *db.Employee) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var emp db.Employee
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("employee_id = ?", employeeCode).
			First(&emp).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("employee %q not found", employeeCode)
		}
		if err != nil {
			return fmt.Errorf("lock employee: %w", err)
		}
		return fn(&gormTxStore{tx: tx}, &emp)
	})
}

type gormTxStore struct {
	tx *gorm.DB
}

func (s *gormTxStore) FindOpenSession(employeeID uint) (*db.AttendanceRecord, error) {
	var record db.AttendanceRecord
	err := s.tx.Where("employee_id = ? AND check_out IS NULL", employeeID).
		Order("check_in DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *gormTxStore) CreateAttendance(record *db.AttendanceRecord) error {
	if err := s.tx.Create(record).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return apperr.Duplicatef("attendance already recorded for this date")
		}
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

func (s *gormTxStore) SaveAttendance(record *db.AttendanceRecord) error {
	return s.tx.Save(record).Error
}

func (s *gormTxStore) HasLeave(employeeID uint, date datatypes.Date) (bool, error) {
	var count int64
	err := s.tx.Model(&db.LeaveRecord{}).
		Where("employee_id = ? AND leave_date = ?", employeeID, date).
		Count(&count).Error
	return count > 0, err
}

func (s *gormTxStore) CreateLeave(record *db.LeaveRecord) error {
	if err := s.tx.Create(record).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return apperr.Duplicatef("leave already applied for this date")
		}
		return fmt.Errorf("create leave: %w", err)
	}
	return nil
}

func (s *gormTxStore) FindLogin(employeeID uint, date datatypes.Date) (*db.LoginHistory, error) {
	var record db.LoginHistory
	err := s.tx.Where("employee_id = ? AND login_date = ?", employeeID, date).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *gormTxStore) CreateLogin(record *db.LoginHistory) error {
	if err := s.tx.Create(record).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return apperr.Duplicatef("login already recorded for this date")
		}
		return fmt.Errorf("create login history: %w", err)
	}
	return nil
}

func (s *gormTxStore) SaveLogin(record *db.LoginHistory) error {
	return s.tx.Save(record).Error
}

/* Read queries for the API layer */

// TodayStatus returns the most recent attendance record for the given day,
// nil when none was marked.
func (s *GormStore) TodayStatus(employeeCode string, date datatypes.Date) (*db.AttendanceRecord, error) {
	emp, err := s.findEmployee(employeeCode)
	if err != nil {
		return nil, err
	}

	var record db.AttendanceRecord
	err = s.db.Where("employee_id = ? AND date = ?", emp.ID, date).
		Order("check_in DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListAttendance returns attendance records newest first, optionally
// restricted to employees whose code starts with prefix (EMP or INT).
func (s *GormStore) ListAttendance(prefix string) ([]db.AttendanceRecord, error) {
	query := s.db.Preload("Employee").
		Joins("JOIN employees ON employees.id = attendance_records.employee_id").
		Order("attendance_records.date DESC")
	if prefix != "" {
		query = query.Where("employees.employee_id LIKE ?", prefix+"%")
	}

	var records []db.AttendanceRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// ListLeaves returns leave records newest first, optionally for a single
// employee.
func (s *GormStore) ListLeaves(employeeCode string) ([]db.LeaveRecord, error) {
	query := s.db.Preload("Employee").Order("leave_date DESC")
	if employeeCode != "" {
		emp, err := s.findEmployee(employeeCode)
		if err != nil {
			return nil, err
		}
		query = query.Where("employee_id = ?", emp.ID)
	}

	var records []db.LeaveRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	return records, nil
}

// ListLogins returns login history newest first.
func (s *GormStore) ListLogins() ([]db.LoginHistory, error) {
	var records []db.LoginHistory
	err := s.db.Preload("Employee").Order("login_time DESC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list login history: %w", err)
	}
	return records, nil
}

func (s *GormStore) findEmployee(employeeCode string) (*db.Employee, error) {
	var emp db.Employee
	err := s.db.Where("employee_id = ?", employeeCode).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("employee %q not found", employeeCode)
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}
