package employees

import (
	"github.com/JorgeSaicoski/microservice-commons/responses"
	"github.com/codeedex/hr-office/internal/api"
	svc "github.com/codeedex/hr-office/internal/services/employees"
	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	employeeService *svc.EmployeeService
}

func NewEmployeeHandler(employeeService *svc.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

func (h *EmployeeHandler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	emp, err := h.employeeService.CreateStaff(req.ToInput())
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Created(c, "Staff employee created successfully", EmployeeToResponse(emp))
}

func (h *EmployeeHandler) CreateIntern(c *gin.Context) {
	var req CreateInternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	emp, err := h.employeeService.CreateIntern(req.ToInput())
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Created(c, "Intern created successfully", EmployeeToResponse(emp))
}

func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	emp, err := h.employeeService.Get(c.Param("id"))
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Employee retrieved successfully", EmployeeToResponse(emp))
}

func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	filter := svc.ListFilter{
		Status:         c.Query("status"),
		EmploymentType: c.Query("employmentType"),
		Department:     c.Query("department"),
		Search:         c.Query("search"),
	}

	emps, err := h.employeeService.List(filter)
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Employees retrieved successfully", EmployeesToResponse(emps))
}

func (h *EmployeeHandler) ListManagers(c *gin.Context) {
	emps, err := h.employeeService.Managers()
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Managers retrieved successfully", EmployeesToResponse(emps))
}

func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	emp, err := h.employeeService.Update(c.Param("id"), req.ToInput())
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Employee updated successfully", EmployeeToResponse(emp))
}

func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	if err := h.employeeService.Delete(c.Param("id")); err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Employee deleted successfully", nil)
}
