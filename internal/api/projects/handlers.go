package projects

import (
	"github.com/JorgeSaicoski/microservice-commons/responses"
	"github.com/codeedex/hr-office/internal/api"
	svc "github.com/codeedex/hr-office/internal/services/projects"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *svc.ProjectService
}

func NewProjectHandler(projectService *svc.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(req.ToInput())
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Created(c, "Project created successfully", ProjectToResponse(project))
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.Get(c.Param("id"))
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Project retrieved successfully", ProjectToResponse(project))
}

func (h *ProjectHandler) GetProjectDetail(c *gin.Context) {
	detail, err := h.projectService.FullDetail(c.Param("id"))
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Project detail retrieved successfully", DetailToResponse(detail))
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.List(c.Query("status"))
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Projects retrieved successfully", ProjectsToResponse(projects))
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(c.Param("id"), req.ToInput())
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Project updated successfully", ProjectToResponse(project))
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectService.Delete(c.Param("id")); err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Project deleted successfully", nil)
}

func (h *ProjectHandler) CreatePhase(c *gin.Context) {
	var req CreatePhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	phase, err := h.projectService.CreatePhase(c.Param("id"), req.ToInput())
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Created(c, "Phase created successfully", PhaseToResponse(phase))
}

func (h *ProjectHandler) ListPhases(c *gin.Context) {
	phases, err := h.projectService.ListPhases(c.Param("id"))
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Phases retrieved successfully", PhasesToResponse(phases))
}

func (h *ProjectHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	task, err := h.projectService.CreateTask(c.Param("phaseId"), req.ToInput())
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Created(c, "Task created successfully", TaskToResponse(task))
}

func (h *ProjectHandler) ListTasks(c *gin.Context) {
	tasks, err := h.projectService.ListTasks(c.Param("phaseId"))
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Tasks retrieved successfully", TasksToResponse(tasks))
}

func (h *ProjectHandler) UpdateTask(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	task, err := h.projectService.UpdateTask(c.Param("taskId"), req.ToInput())
	if err != nil {
		api.HandleError(c, err)
		return
	}

	responses.Success(c, "Task updated successfully", TaskToResponse(task))
}
