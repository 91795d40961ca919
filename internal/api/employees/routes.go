package employees

import (
	"github.com/JorgeSaicoski/microservice-commons/middleware"
	"github.com/codeedex/hr-office/internal/api"
	svc "github.com/codeedex/hr-office/internal/services/employees"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all employee management routes
func RegisterRoutes(router *gin.RouterGroup, employeeService *svc.EmployeeService) {
	handler := NewEmployeeHandler(employeeService)

	// Employee management endpoints
	employeesGroup := router.Group("/employees")
	employeesGroup.Use(
		middleware.DefaultLoggingMiddleware(),
		api.AuthMiddleware(),
	)
	{
		// Classified creation: staff and interns have different inputs
		employeesGroup.POST("/staff", handler.CreateStaff)    // Create staff employee
		employeesGroup.POST("/interns", handler.CreateIntern) // Create intern

		// Queries
		employeesGroup.GET("", handler.ListEmployees)         // List with filters
		employeesGroup.GET("/managers", handler.ListManagers) // Valid reporting targets
		employeesGroup.GET("/:id", handler.GetEmployee)       // Get by employee code

		// Mutation
		employeesGroup.PUT("/:id", handler.UpdateEmployee)    // Partial update
		employeesGroup.DELETE("/:id", handler.DeleteEmployee) // Delete with cascade
	}
}
