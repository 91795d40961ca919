package auth

import (
	"time"

	"github.com/JorgeSaicoski/microservice-commons/responses"
	"github.com/codeedex/hr-office/internal/api"
	"github.com/codeedex/hr-office/internal/auth"
	"github.com/codeedex/hr-office/internal/db"
	attendanceService "github.com/codeedex/hr-office/internal/services/attendance"
	employeeService "github.com/codeedex/hr-office/internal/services/employees"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	employeeService *employeeService.EmployeeService
	engine          *attendanceService.Engine
}

func NewAuthHandler(es *employeeService.EmployeeService, engine *attendanceService.Engine) *AuthHandler {
	return &AuthHandler{
		employeeService: es,
		engine:          engine,
	}
}

// Login authenticates an employee by email and password, issues a token and
// records today's login in the history. Inactive employees cannot log in.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	emp, err := h.employeeService.GetByEmail(req.Email)
	if err != nil {
		// Same message for unknown email and wrong password.
		responses.Unauthorized(c, "Invalid credentials")
		return
	}
	if emp.Status != db.StatusActive {
		responses.Unauthorized(c, "Account is inactive")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)) != nil {
		responses.Unauthorized(c, "Invalid credentials")
		return
	}

	token, err := auth.GenerateEmployeeToken(emp.EmployeeID, emp.Email, emp.Role)
	if err != nil {
		responses.InternalError(c, err.Error())
		return
	}

	if _, err := h.engine.RecordLogin(emp.EmployeeID, time.Now()); err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Login successful", LoginResponse{
		Token:    token,
		Employee: ProfileOf(emp),
	})
}

// Logout stamps the logout time on today's login-history row.
func (h *AuthHandler) Logout(c *gin.Context) {
	code, ok := api.EmployeeCode(c)
	if !ok {
		responses.Unauthorized(c, "Employee not authenticated")
		return
	}

	if _, err := h.engine.RecordLogout(code, time.Now()); err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Logout successful", nil)
}

// Profile returns the authenticated employee's own record.
func (h *AuthHandler) Profile(c *gin.Context) {
	code, ok := api.EmployeeCode(c)
	if !ok {
		responses.Unauthorized(c, "Employee not authenticated")
		return
	}

	emp, err := h.employeeService.Get(code)
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Profile retrieved successfully", ProfileOf(emp))
}
