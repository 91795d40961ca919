package attendance

import (
	"github.com/JorgeSaicoski/microservice-commons/middleware"
	"github.com/codeedex/hr-office/internal/api"
	svc "github.com/codeedex/hr-office/internal/services/attendance"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers attendance, leave and login-history routes for
// both the admin panel and the mobile app.
func RegisterRoutes(router *gin.RouterGroup, engine *svc.Engine, store *svc.GormStore) {
	handler := NewAttendanceHandler(engine, store)

	// Admin panel endpoints
	attendanceGroup := router.Group("/attendance")
	attendanceGroup.Use(
		middleware.DefaultLoggingMiddleware(),
		api.AuthMiddleware(),
	)
	{
		attendanceGroup.POST("/check/:id", handler.CheckEmployee) // Toggle check-in/check-out
		attendanceGroup.GET("", handler.ListAttendance)           // List records, ?prefix=EMP|INT
		attendanceGroup.GET("/today/:id", handler.TodayStatus)    // Today's record for one employee

		attendanceGroup.POST("/leaves/:id", handler.ApplyLeaveFor) // Apply leave for an employee
		attendanceGroup.GET("/leaves", handler.ListLeaves)         // List leaves, ?employeeId=
		attendanceGroup.GET("/logins", handler.ListLogins)         // App login history
	}

	// Mobile app endpoints, authenticated by the employee token
	appGroup := router.Group("/app/attendance")
	appGroup.Use(
		middleware.DefaultLoggingMiddleware(),
		api.EmployeeAuthMiddleware(),
	)
	{
		appGroup.POST("/check", handler.CheckSelf)       // Toggle own attendance
		appGroup.GET("/today", handler.TodayStatusSelf)  // Own status today
		appGroup.POST("/leaves", handler.ApplyLeaveSelf) // Apply own leave
	}
}
