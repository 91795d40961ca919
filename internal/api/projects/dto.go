package projects

import (
	"time"

	"github.com/codeedex/hr-office/internal/db"
	svc "github.com/codeedex/hr-office/internal/services/projects"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// Request DTOs

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`

	ClientName    string `json:"clientName"`
	ClientEmail   string `json:"clientEmail"`
	ClientContact string `json:"clientContact"`

	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	Priority    string `json:"priority"`
	ProjectType string `json:"projectType"`

	TotalBudget float64 `json:"totalBudget"`

	ProjectManagerID string   `json:"projectManagerId"`
	TeamMembers      []string `json:"teamMembers"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`

	ClientName    *string `json:"clientName"`
	ClientEmail   *string `json:"clientEmail"`
	ClientContact *string `json:"clientContact"`

	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`

	Priority    *string `json:"priority"`
	ProjectType *string `json:"projectType"`
	Status      *string `json:"status"`

	TotalBudget *float64 `json:"totalBudget"`
	SpentAmount *float64 `json:"spentAmount"`

	ProjectManagerID *string   `json:"projectManagerId"`
	TeamMembers      *[]string `json:"teamMembers"`
}

type CreatePhaseRequest struct {
	PhaseType   string `json:"phaseType" binding:"required"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	Assignees   []string `json:"assignees"`
}

type UpdateTaskRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	DueDate     *string   `json:"dueDate"`
	Assignees   *[]string `json:"assignees"`
}

func (r *CreateProjectRequest) ToInput() *svc.ProjectInput {
	in := &svc.ProjectInput{
		Name:               r.Name,
		Description:        r.Description,
		ClientName:         r.ClientName,
		ClientEmail:        r.ClientEmail,
		ClientContact:      r.ClientContact,
		Priority:           r.Priority,
		ProjectType:        r.ProjectType,
		TotalBudget:        r.TotalBudget,
		ProjectManagerCode: r.ProjectManagerID,
		TeamMemberCodes:    r.TeamMembers,
	}
	in.StartDate = parseDate(r.StartDate)
	in.EndDate = parseDate(r.EndDate)
	return in
}

func (r *UpdateProjectRequest) ToInput() *svc.ProjectUpdateInput {
	return &svc.ProjectUpdateInput{
		Name:               r.Name,
		Description:        r.Description,
		ClientName:         r.ClientName,
		ClientEmail:        r.ClientEmail,
		ClientContact:      r.ClientContact,
		StartDate:          parseDatePtr(r.StartDate),
		EndDate:            parseDatePtr(r.EndDate),
		Priority:           r.Priority,
		ProjectType:        r.ProjectType,
		Status:             r.Status,
		TotalBudget:        r.TotalBudget,
		SpentAmount:        r.SpentAmount,
		ProjectManagerCode: r.ProjectManagerID,
		TeamMemberCodes:    r.TeamMembers,
	}
}

func (r *CreatePhaseRequest) ToInput() *svc.PhaseInput {
	return &svc.PhaseInput{
		PhaseType:   r.PhaseType,
		Description: r.Description,
		StartDate:   parseDate(r.StartDate),
		EndDate:     parseDate(r.EndDate),
	}
}

func (r *CreateTaskRequest) ToInput() *svc.TaskInput {
	return &svc.TaskInput{
		Title:         r.Title,
		Description:   r.Description,
		DueDate:       parseDate(r.DueDate),
		AssigneeCodes: r.Assignees,
	}
}

func (r *UpdateTaskRequest) ToInput() *svc.TaskUpdateInput {
	return &svc.TaskUpdateInput{
		Title:         r.Title,
		Description:   r.Description,
		Status:        r.Status,
		DueDate:       parseDatePtr(r.DueDate),
		AssigneeCodes: r.Assignees,
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func parseDatePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	return parseDate(*s)
}

// Response DTOs

type ProjectResponse struct {
	ID        uint   `json:"id"`
	ProjectID string `json:"projectId"`

	Name        string `json:"name"`
	Description string `json:"description"`

	ClientName    string `json:"clientName"`
	ClientEmail   string `json:"clientEmail"`
	ClientContact string `json:"clientContact"`

	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`

	Priority    string `json:"priority"`
	ProjectType string `json:"projectType"`
	Status      string `json:"status"`

	TotalBudget     float64 `json:"totalBudget"`
	SpentAmount     float64 `json:"spentAmount"`
	RemainingAmount float64 `json:"remainingAmount"`

	ProjectManagerID   *string  `json:"projectManagerId,omitempty"`
	ProjectManagerName *string  `json:"projectManagerName,omitempty"`
	TeamMembers        []string `json:"teamMembers"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PhaseResponse struct {
	ID        uint   `json:"id"`
	PhaseID   string `json:"phaseId"`
	PhaseType string `json:"phaseType"`

	Description string  `json:"description"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`

	Tasks []TaskResponse `json:"tasks,omitempty"`
}

type TaskResponse struct {
	ID     uint   `json:"id"`
	TaskID string `json:"taskId"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`

	DueDate   *string  `json:"dueDate,omitempty"`
	Assignees []string `json:"assignees"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProjectDetailResponse struct {
	Project         ProjectResponse `json:"project"`
	Phases          []PhaseResponse `json:"phases"`
	TotalTasks      int             `json:"totalTasks"`
	CompletedTasks  int             `json:"completedTasks"`
	ProgressPercent float64         `json:"progressPercent"`
}

func ProjectToResponse(p *db.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:              p.ID,
		ProjectID:       p.ProjectID,
		Name:            p.Name,
		Description:     p.Description,
		ClientName:      p.ClientName,
		ClientEmail:     p.ClientEmail,
		ClientContact:   p.ClientContact,
		Priority:        p.Priority,
		ProjectType:     p.ProjectType,
		Status:          p.Status,
		TotalBudget:     p.TotalBudget,
		SpentAmount:     p.SpentAmount,
		RemainingAmount: p.RemainingAmount,
		TeamMembers:     make([]string, 0, len(p.TeamMembers)),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	resp.StartDate = formatDate(p.StartDate)
	resp.EndDate = formatDate(p.EndDate)
	if p.ProjectManager != nil {
		resp.ProjectManagerID = &p.ProjectManager.EmployeeID
		resp.ProjectManagerName = &p.ProjectManager.Name
	}
	for _, member := range p.TeamMembers {
		resp.TeamMembers = append(resp.TeamMembers, member.EmployeeID)
	}
	return resp
}

func ProjectsToResponse(projects []db.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, ProjectToResponse(&projects[i]))
	}
	return out
}

func PhaseToResponse(p *db.ProjectPhase) PhaseResponse {
	resp := PhaseResponse{
		ID:          p.ID,
		PhaseID:     p.PhaseID,
		PhaseType:   p.PhaseType,
		Description: p.Description,
		StartDate:   formatDate(p.StartDate),
		EndDate:     formatDate(p.EndDate),
	}
	for i := range p.Tasks {
		resp.Tasks = append(resp.Tasks, TaskToResponse(&p.Tasks[i]))
	}
	return resp
}

func PhasesToResponse(phases []db.ProjectPhase) []PhaseResponse {
	out := make([]PhaseResponse, 0, len(phases))
	for i := range phases {
		out = append(out, PhaseToResponse(&phases[i]))
	}
	return out
}

func TaskToResponse(t *db.PhaseTask) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		TaskID:      t.TaskID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     formatDate(t.DueDate),
		Assignees:   make([]string, 0, len(t.Assignees)),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	for _, assignee := range t.Assignees {
		resp.Assignees = append(resp.Assignees, assignee.EmployeeID)
	}
	return resp
}

func TasksToResponse(tasks []db.PhaseTask) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, TaskToResponse(&tasks[i]))
	}
	return out
}

func DetailToResponse(d *svc.Detail) ProjectDetailResponse {
	return ProjectDetailResponse{
		Project:         ProjectToResponse(d.Project),
		Phases:          PhasesToResponse(d.Phases),
		TotalTasks:      d.TotalTasks,
		CompletedTasks:  d.CompletedTasks,
		ProgressPercent: d.ProgressPercent,
	}
}

func formatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(dateLayout)
	return &s
}
