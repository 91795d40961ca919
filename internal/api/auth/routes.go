package auth

import (
	"github.com/JorgeSaicoski/microservice-commons/middleware"
	"github.com/codeedex/hr-office/internal/api"
	attendanceService "github.com/codeedex/hr-office/internal/services/attendance"
	employeeService "github.com/codeedex/hr-office/internal/services/employees"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the mobile app session routes. Login is the only
// unauthenticated endpoint in the service.
func RegisterRoutes(router *gin.RouterGroup, es *employeeService.EmployeeService, engine *attendanceService.Engine) {
	handler := NewAuthHandler(es, engine)

	appGroup := router.Group("/app")
	appGroup.Use(middleware.DefaultLoggingMiddleware())
	{
		appGroup.POST("/login", handler.Login) // Email + password, returns token
	}

	sessionGroup := router.Group("/app")
	sessionGroup.Use(
		middleware.DefaultLoggingMiddleware(),
		api.EmployeeAuthMiddleware(),
	)
	{
		sessionGroup.POST("/logout", handler.Logout)  // Stamp logout time
		sessionGroup.GET("/profile", handler.Profile) // Own record
	}
}
