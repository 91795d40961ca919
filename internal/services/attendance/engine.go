package attendance

import (
	"fmt"
	"strconv"
	"time"

	"log/slog"

	"github.com/JorgeSaicoski/microservice-commons/utils"
	"github.com/codeedex/hr-office/internal/apperr"
	"github.com/codeedex/hr-office/internal/db"
)

var log = slog.Default().With(
	slog.String("layer", "service"),
	slog.String("service", "AttendanceEngine"),
)

// Check event statuses
const (
	StatusCheckedIn  = "CHECKED_IN"
	StatusCheckedOut = "CHECKED_OUT"
)

type Config struct {
	StandardWorkHours   float64 // daily threshold beyond which hours are overtime
	DefaultBreakMinutes int     // break deducted from every closed session
}

// LoadConfig reads the engine configuration from the environment.
func LoadConfig() Config {
	cfg := Config{StandardWorkHours: 8, DefaultBreakMinutes: 60}
	if v, err := strconv.ParseFloat(utils.GetEnv("STANDARD_WORK_HOURS", "8"), 64); err == nil && v > 0 {
		cfg.StandardWorkHours = v
	}
	if v, err := strconv.Atoi(utils.GetEnv("DEFAULT_BREAK_MINUTES", "60")); err == nil && v >= 0 {
		cfg.DefaultBreakMinutes = v
	}
	return cfg
}

// Engine owns attendance, leave and login-history writes. Every mutation
// runs inside a per-employee lock so concurrent calls for the same employee
// serialize.
type Engine struct {
	store Store
	cfg   Config
}

func NewEngine(store Store, cfg Config) *Engine {
	return &Engine{store: store, cfg: cfg}
}

// CheckEvent is the outcome of a CheckInOrOut call.
type CheckEvent struct {
	Status string
	Time   time.Time
	Record *db.AttendanceRecord
}

// CheckInOrOut toggles the employee's attendance state. The sole
// discriminator is whether an open session exists: none means this call
// checks in (a new record dated today), one means it checks out (hours are
// derived and persisted with the same write). The employee row lock makes
// two simultaneous calls resolve as a check-in followed by a check-out,
// never two open sessions.
func (e *Engine) CheckInOrOut(employeeCode string, now time.Time) (*CheckEvent, error) {
	log.Info("check-in-out:start", "employee", employeeCode)

	var event *CheckEvent
	err := e.store.WithEmployeeLock(employeeCode, func(tx TxStore, emp *db.Employee) error {
		open, err := tx.FindOpenSession(emp.ID)
		if err != nil {
			return fmt.Errorf("find open session: %w", err)
		}

		if open == nil {
			record := &db.AttendanceRecord{
				EmployeeID:   emp.ID,
				Date:         db.DateOf(now),
				CheckIn:      now,
				BreakMinutes: e.cfg.DefaultBreakMinutes,
			}
			if err := tx.CreateAttendance(record); err != nil {
				return err
			}
			event = &CheckEvent{Status: StatusCheckedIn, Time: now, Record: record}
			return nil
		}

		if now.Before(open.CheckIn) {
			// Clock skew: hours clamp to zero instead of going negative.
			log.Warn("check-out-before-check-in",
				"employee", employeeCode, "checkIn", open.CheckIn, "checkOut", now)
		}

		out := now
		open.CheckOut = &out
		open.WorkingHours, open.OvertimeHours = ComputeHours(
			open.CheckIn,
			open.CheckOut,
			time.Duration(open.BreakMinutes)*time.Minute,
			e.cfg.StandardWorkHours,
		)
		if err := tx.SaveAttendance(open); err != nil {
			return fmt.Errorf("save attendance: %w", err)
		}
		event = &CheckEvent{Status: StatusCheckedOut, Time: now, Record: open}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("check-in-out:success", "employee", employeeCode, "status", event.Status)
	return event, nil
}

// ApplyLeave records a day of leave. A second leave for the same employee
// and date is a conflict. Leave has no interaction with attendance records.
func (e *Engine) ApplyLeave(employeeCode string, leaveDate time.Time, reason string) (*db.LeaveRecord, error) {
	log.Info("apply-leave:start", "employee", employeeCode, "date", leaveDate.Format("2006-01-02"))

	var record *db.LeaveRecord
	err := e.store.WithEmployeeLock(employeeCode, func(tx TxStore, emp *db.Employee) error {
		date := db.DateOf(leaveDate)
		exists, err := tx.HasLeave(emp.ID, date)
		if err != nil {
			return fmt.Errorf("check existing leave: %w", err)
		}
		if exists {
			return apperr.Duplicatef("leave already applied for this date")
		}

		record = &db.LeaveRecord{EmployeeID: emp.ID, LeaveDate: date, Reason: reason}
		return tx.CreateLeave(record)
	})
	if err != nil {
		return nil, err
	}

	log.Info("apply-leave:success", "employee", employeeCode)
	return record, nil
}

// RecordLogin creates today's login-history row if it does not exist yet.
// Logging in again the same day returns the existing row unchanged.
func (e *Engine) RecordLogin(employeeCode string, now time.Time) (*db.LoginHistory, error) {
	var record *db.LoginHistory
	err := e.store.WithEmployeeLock(employeeCode, func(tx TxStore, emp *db.Employee) error {
		existing, err := tx.FindLogin(emp.ID, db.DateOf(now))
		if err != nil {
			return fmt.Errorf("find login history: %w", err)
		}
		if existing != nil {
			record = existing
			return nil
		}

		record = &db.LoginHistory{EmployeeID: emp.ID, LoginDate: db.DateOf(now), LoginTime: now}
		return tx.CreateLogin(record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// RecordLogout stamps the logout time on today's login-history row. It
// requires a login earlier the same day and may only happen once.
func (e *Engine) RecordLogout(employeeCode string, now time.Time) (*db.LoginHistory, error) {
	var record *db.LoginHistory
	err := e.store.WithEmployeeLock(employeeCode, func(tx TxStore, emp *db.Employee) error {
		existing, err := tx.FindLogin(emp.ID, db.DateOf(now))
		if err != nil {
			return fmt.Errorf("find login history: %w", err)
		}
		if existing == nil {
			return apperr.NotFoundf("no login found for today")
		}
		if existing.LogoutTime != nil {
			return apperr.Duplicatef("already logged out today")
		}

		out := now
		existing.LogoutTime = &out
		record = existing
		return tx.SaveLogin(existing)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
