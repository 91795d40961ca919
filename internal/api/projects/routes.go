package projects

import (
	"github.com/JorgeSaicoski/microservice-commons/middleware"
	"github.com/codeedex/hr-office/internal/api"
	svc "github.com/codeedex/hr-office/internal/services/projects"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all project, phase and task routes
func RegisterRoutes(router *gin.RouterGroup, projectService *svc.ProjectService) {
	handler := NewProjectHandler(projectService)

	// Project management endpoints
	projectsGroup := router.Group("/projects")
	projectsGroup.Use(
		middleware.DefaultLoggingMiddleware(),
		api.AuthMiddleware(),
	)
	{
		// Project CRUD
		projectsGroup.POST("", handler.CreateProject)              // Create project
		projectsGroup.GET("", handler.ListProjects)                // List projects, ?status=
		projectsGroup.GET("/:id", handler.GetProject)              // Get by project code
		projectsGroup.GET("/:id/detail", handler.GetProjectDetail) // Full tree with progress
		projectsGroup.PUT("/:id", handler.UpdateProject)           // Partial update
		projectsGroup.DELETE("/:id", handler.DeleteProject)        // Delete with cascade

		// Phases
		projectsGroup.POST("/:id/phases", handler.CreatePhase) // Add one of the five phases
		projectsGroup.GET("/:id/phases", handler.ListPhases)   // Phases with tasks
	}

	// Task endpoints, addressed by phase and task codes
	tasksGroup := router.Group("")
	tasksGroup.Use(
		middleware.DefaultLoggingMiddleware(),
		api.AuthMiddleware(),
	)
	{
		tasksGroup.POST("/phases/:phaseId/tasks", handler.CreateTask) // Create task under phase
		tasksGroup.GET("/phases/:phaseId/tasks", handler.ListTasks)   // Tasks of a phase
		tasksGroup.PUT("/tasks/:taskId", handler.UpdateTask)          // Partial task update
	}
}
