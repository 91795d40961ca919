package dashboard

import (
	"github.com/JorgeSaicoski/microservice-commons/middleware"
	"github.com/codeedex/hr-office/internal/api"
	svc "github.com/codeedex/hr-office/internal/services/dashboard"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the dashboard routes
func RegisterRoutes(router *gin.RouterGroup, dashboardService *svc.DashboardService) {
	handler := NewDashboardHandler(dashboardService)

	dashboardGroup := router.Group("/dashboard")
	dashboardGroup.Use(
		middleware.DefaultLoggingMiddleware(),
		api.AuthMiddleware(),
	)
	{
		dashboardGroup.GET("/summary", handler.GetSummary) // Landing page numbers
	}
}
