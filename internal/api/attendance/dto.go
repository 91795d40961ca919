package attendance

import (
	"time"

	"github.com/codeedex/hr-office/internal/db"
	svc "github.com/codeedex/hr-office/internal/services/attendance"
)

const dateLayout = "2006-01-02"

// Request DTOs

type ApplyLeaveRequest struct {
	LeaveDate string `json:"leaveDate" binding:"required"` // YYYY-MM-DD
	Reason    string `json:"reason" binding:"required"`
}

// Response DTOs

type CheckEventResponse struct {
	Status string             `json:"status"` // CHECKED_IN or CHECKED_OUT
	Time   time.Time          `json:"time"`
	Record AttendanceResponse `json:"record"`
}

type AttendanceResponse struct {
	ID           uint   `json:"id"`
	EmployeeID   string `json:"employeeId,omitempty"`
	EmployeeName string `json:"employeeName,omitempty"`
	Date         string `json:"date"`

	CheckIn      time.Time  `json:"checkIn"`
	CheckOut     *time.Time `json:"checkOut"`
	BreakMinutes int        `json:"breakMinutes"`

	WorkingHours  *float64 `json:"workingHours"`
	OvertimeHours *float64 `json:"overtimeHours"`
}

type LeaveResponse struct {
	ID           uint   `json:"id"`
	EmployeeID   string `json:"employeeId,omitempty"`
	EmployeeName string `json:"employeeName,omitempty"`
	LeaveDate    string `json:"leaveDate"`
	Reason       string `json:"reason"`
}

type LoginHistoryResponse struct {
	ID           uint       `json:"id"`
	EmployeeID   string     `json:"employeeId,omitempty"`
	EmployeeName string     `json:"employeeName,omitempty"`
	LoginDate    string     `json:"loginDate"`
	LoginTime    time.Time  `json:"loginTime"`
	LogoutTime   *time.Time `json:"logoutTime"`
}

func CheckEventToResponse(event *svc.CheckEvent) CheckEventResponse {
	return CheckEventResponse{
		Status: event.Status,
		Time:   event.Time,
		Record: AttendanceToResponse(event.Record),
	}
}

func AttendanceToResponse(r *db.AttendanceRecord) AttendanceResponse {
	resp := AttendanceResponse{
		ID:            r.ID,
		Date:          time.Time(r.Date).Format(dateLayout),
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		BreakMinutes:  r.BreakMinutes,
		WorkingHours:  r.WorkingHours,
		OvertimeHours: r.OvertimeHours,
	}
	if r.Employee.ID != 0 {
		resp.EmployeeID = r.Employee.EmployeeID
		resp.EmployeeName = r.Employee.Name
	}
	return resp
}

func AttendanceListToResponse(records []db.AttendanceRecord) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for i := range records {
		out = append(out, AttendanceToResponse(&records[i]))
	}
	return out
}

func LeaveToResponse(r *db.LeaveRecord) LeaveResponse {
	resp := LeaveResponse{
		ID:        r.ID,
		LeaveDate: time.Time(r.LeaveDate).Format(dateLayout),
		Reason:    r.Reason,
	}
	if r.Employee.ID != 0 {
		resp.EmployeeID = r.Employee.EmployeeID
		resp.EmployeeName = r.Employee.Name
	}
	return resp
}

func LeavesToResponse(records []db.LeaveRecord) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(records))
	for i := range records {
		out = append(out, LeaveToResponse(&records[i]))
	}
	return out
}

func LoginToResponse(r *db.LoginHistory) LoginHistoryResponse {
	resp := LoginHistoryResponse{
		ID:         r.ID,
		LoginDate:  time.Time(r.LoginDate).Format(dateLayout),
		LoginTime:  r.LoginTime,
		LogoutTime: r.LogoutTime,
	}
	if r.Employee.ID != 0 {
		resp.EmployeeID = r.Employee.EmployeeID
		resp.EmployeeName = r.Employee.Name
	}
	return resp
}

func LoginsToResponse(records []db.LoginHistory) []LoginHistoryResponse {
	out := make([]LoginHistoryResponse, 0, len(records))
	for i := range records {
		out = append(out, LoginToResponse(&records[i]))
	}
	return out
}
