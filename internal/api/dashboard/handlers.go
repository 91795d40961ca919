package dashboard

import (
	"time"

	"github.com/JorgeSaicoski/microservice-commons/responses"
	"github.com/codeedex/hr-office/internal/api"
	svc "github.com/codeedex/hr-office/internal/services/dashboard"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *svc.DashboardService
}

func NewDashboardHandler(dashboardService *svc.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(time.Now())
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Dashboard summary retrieved successfully", summary)
}
