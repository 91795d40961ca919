package attendance

import (
	"time"

	"github.com/JorgeSaicoski/microservice-commons/responses"
	"github.com/codeedex/hr-office/internal/api"
	"github.com/codeedex/hr-office/internal/db"
	svc "github.com/codeedex/hr-office/internal/services/attendance"
	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct {
	engine *svc.Engine
	store  *svc.GormStore
}

func NewAttendanceHandler(engine *svc.Engine, store *svc.GormStore) *AttendanceHandler {
	return &AttendanceHandler{
		engine: engine,
		store:  store,
	}
}

/* Admin panel endpoints */

// CheckEmployee toggles attendance for any employee, used by the front desk.
func (h *AttendanceHandler) CheckEmployee(c *gin.Context) {
	event, err := h.engine.CheckInOrOut(c.Param("id"), time.Now())
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Attendance marked successfully", CheckEventToResponse(event))
}

func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	records, err := h.store.ListAttendance(c.Query("prefix"))
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Attendance retrieved successfully", AttendanceListToResponse(records))
}

func (h *AttendanceHandler) TodayStatus(c *gin.Context) {
	record, err := h.store.TodayStatus(c.Param("id"), db.DateOf(time.Now()))
	if err != nil {
		api.HandleError(c, err)
		return
	}
	if record == nil {
		responses.Success(c, "No attendance marked today", nil)
		return
	}

	responses.Success(c, "Attendance status retrieved successfully", AttendanceToResponse(record))
}

func (h *AttendanceHandler) ApplyLeaveFor(c *gin.Context) {
	h.applyLeave(c, c.Param("id"))
}

func (h *AttendanceHandler) ListLeaves(c *gin.Context) {
	records, err := h.store.ListLeaves(c.Query("employeeId"))
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Leave records retrieved successfully", LeavesToResponse(records))
}

func (h *AttendanceHandler) ListLogins(c *gin.Context) {
	records, err := h.store.ListLogins()
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Login history retrieved successfully", LoginsToResponse(records))
}

/* Mobile app endpoints: the employee acts on their own record */

func (h *AttendanceHandler) CheckSelf(c *gin.Context) {
	code, ok := api.EmployeeCode(c)
	if !ok {
		responses.Unauthorized(c, "Employee not authenticated")
		return
	}

	event, err := h.engine.CheckInOrOut(code, time.Now())
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Attendance marked successfully", CheckEventToResponse(event))
}

func (h *AttendanceHandler) TodayStatusSelf(c *gin.Context) {
	code, ok := api.EmployeeCode(c)
	if !ok {
		responses.Unauthorized(c, "Employee not authenticated")
		return
	}

	record, err := h.store.TodayStatus(code, db.DateOf(time.Now()))
	if err != nil {
		api.HandleError(c, err)
		return
	}
	if record == nil {
		responses.Success(c, "No attendance marked today", nil)
		return
	}

	responses.Success(c, "Attendance status retrieved successfully", AttendanceToResponse(record))
}

func (h *AttendanceHandler) ApplyLeaveSelf(c *gin.Context) {
	code, ok := api.EmployeeCode(c)
	if !ok {
		responses.Unauthorized(c, "Employee not authenticated")
		return
	}
	h.applyLeave(c, code)
}

func (h *AttendanceHandler) applyLeave(c *gin.Context, employeeCode string) {
	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	leaveDate, err := time.Parse(dateLayout, req.LeaveDate)
	if err != nil {
		responses.BadRequest(c, "Invalid leave date, expected YYYY-MM-DD")
		return
	}

	record, err := h.engine.ApplyLeave(employeeCode, leaveDate, req.Reason)
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Created(c, "Leave applied successfully", LeaveToResponse(record))
}
