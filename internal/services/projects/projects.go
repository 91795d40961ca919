package projects

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/codeedex/hr-office/internal/apperr"
	"github.com/codeedex/hr-office/internal/db"
	"github.com/codeedex/hr-office/internal/ident"
	"github.com/codeedex/hr-office/internal/rules"
	"gorm.io/gorm"
)

var log = slog.Default().With(
	slog.String("layer", "service"),
	slog.String("service", "ProjectService"),
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(database *gorm.DB) *ProjectService {
	return &ProjectService{db: database}
}

/* ------------------------------------------------------------------ */
/*  Inputs                                                            */
/* ------------------------------------------------------------------ */

type ProjectInput struct {
	Name        string
	Description string

	ClientName    string
	ClientEmail   string
	ClientContact string

	StartDate *time.Time
	EndDate   *time.Time

	Priority    string
	ProjectType string

	TotalBudget float64

	ProjectManagerCode string   // employee code, optional
	TeamMemberCodes    []string // employee codes
}

// ProjectUpdateInput applies partial updates; nil fields are untouched.
type ProjectUpdateInput struct {
	Name        *string
	Description *string

	ClientName    *string
	ClientEmail   *string
	ClientContact *string

	StartDate *time.Time
	EndDate   *time.Time

	Priority    *string
	ProjectType *string
	Status      *string

	TotalBudget *float64
	SpentAmount *float64

	ProjectManagerCode *string   // empty string clears the manager
	TeamMemberCodes    *[]string // replaces the whole team
}

type PhaseInput struct {
	PhaseType   string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

type TaskInput struct {
	Title         string
	Description   string
	DueDate       *time.Time
	AssigneeCodes []string // must be project team members
}

type TaskUpdateInput struct {
	Title         *string
	Description   *string
	Status        *string
	DueDate       *time.Time
	AssigneeCodes *[]string
}

/* ------------------------------------------------------------------ */
/*  Projects                                                          */
/* ------------------------------------------------------------------ */

// Create creates a project. SpentAmount always starts at zero regardless of
// input, so RemainingAmount starts equal to TotalBudget. The project
// identifier is allocated inside the insert transaction.
func (s *ProjectService) Create(in *ProjectInput) (*db.Project, error) {
	log.Info("create-project:start", "name", in.Name)

	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validationf("project name is required")
	}
	if in.TotalBudget < 0 {
		return nil, apperr.Validationf("total budget cannot be negative")
	}

	project := &db.Project{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		ClientName:    in.ClientName,
		ClientEmail:   in.ClientEmail,
		ClientContact: in.ClientContact,
		Priority:      in.Priority,
		ProjectType:   in.ProjectType,
		Status:        "ongoing",
		TotalBudget:   in.TotalBudget,
		SpentAmount:   0,
	}
	project.RemainingAmount = project.TotalBudget
	if in.StartDate != nil {
		d := db.DateOf(*in.StartDate)
		project.StartDate = &d
	}
	if in.EndDate != nil {
		d := db.DateOf(*in.EndDate)
		project.EndDate = &d
	}

	if in.ProjectManagerCode != "" {
		manager, err := s.findEmployee(in.ProjectManagerCode)
		if err != nil {
			return nil, err
		}
		project.ProjectManagerID = &manager.ID
	}

	team, err := s.findEmployees(in.TeamMemberCodes)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		code, err := ident.NextProjectID(ident.NewTxStore(tx), time.Now())
		if err != nil {
			return fmt.Errorf("allocate project identifier: %w", err)
		}
		project.ProjectID = code

		if err := tx.Create(project).Error; err != nil {
			if db.IsDuplicateKey(err) {
				return apperr.Duplicatef("project identifier %q already exists", code)
			}
			return fmt.Errorf("create project: %w", err)
		}
		if len(team) > 0 {
			if err := tx.Model(project).Association("TeamMembers").Append(team); err != nil {
				return fmt.Errorf("assign team members: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("create-project:failed", "err", err)
		return nil, err
	}

	log.Info("create-project:success", "projectID", project.ProjectID)
	return s.Get(project.ProjectID)
}

// Update applies a partial update. The budget invariant (spent never above
// total) is checked against the merged values and RemainingAmount is
// recomputed on every write.
func (s *ProjectService) Update(projectCode string, in *ProjectUpdateInput) (*db.Project, error) {
	log.Info("update-project:start", "projectID", projectCode)

	project, err := s.Get(projectCode)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, apperr.Validationf("project name is required")
		}
		project.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.ClientName != nil {
		project.ClientName = *in.ClientName
	}
	if in.ClientEmail != nil {
		project.ClientEmail = *in.ClientEmail
	}
	if in.ClientContact != nil {
		project.ClientContact = *in.ClientContact
	}
	if in.StartDate != nil {
		d := db.DateOf(*in.StartDate)
		project.StartDate = &d
	}
	if in.EndDate != nil {
		d := db.DateOf(*in.EndDate)
		project.EndDate = &d
	}
	if in.Priority != nil {
		project.Priority = *in.Priority
	}
	if in.ProjectType != nil {
		project.ProjectType = *in.ProjectType
	}
	if in.Status != nil {
		project.Status = *in.Status
	}
	if in.TotalBudget != nil {
		if *in.TotalBudget < 0 {
			return nil, apperr.Validationf("total budget cannot be negative")
		}
		project.TotalBudget = *in.TotalBudget
	}
	if in.SpentAmount != nil {
		if *in.SpentAmount < 0 {
			return nil, apperr.Validationf("spent amount cannot be negative")
		}
		project.SpentAmount = *in.SpentAmount
	}
	if err := rules.BudgetInvariant(project.TotalBudget, project.SpentAmount); err != nil {
		return nil, err
	}
	project.RemainingAmount = project.TotalBudget - project.SpentAmount

	if in.ProjectManagerCode != nil {
		if *in.ProjectManagerCode == "" {
			project.ProjectManagerID = nil
		} else {
			manager, err := s.findEmployee(*in.ProjectManagerCode)
			if err != nil {
				return nil, err
			}
			project.ProjectManagerID = &manager.ID
		}
	}

	var team []db.Employee
	if in.TeamMemberCodes != nil {
		team, err = s.findEmployees(*in.TeamMemberCodes)
		if err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("TeamMembers", "Phases", "ProjectManager").Save(project).Error; err != nil {
			return fmt.Errorf("update project: %w", err)
		}
		if in.TeamMemberCodes != nil {
			if err := tx.Model(project).Association("TeamMembers").Replace(team); err != nil {
				return fmt.Errorf("replace team members: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("update-project:failed", "err", err)
		return nil, err
	}

	log.Info("update-project:success", "projectID", projectCode)
	return s.Get(projectCode)
}

// Delete removes the project; phases and tasks cascade with it.
func (s *ProjectService) Delete(projectCode string) error {
	log.Info("delete-project:start", "projectID", projectCode)

	project, err := s.Get(projectCode)
	if err != nil {
		return err
	}
	if err := s.db.Select("TeamMembers", "Phases").Delete(project).Error; err != nil {
		log.Error("delete-project:failed", "err", err)
		return fmt.Errorf("delete project: %w", err)
	}

	log.Info("delete-project:success", "projectID", projectCode)
	return nil
}

func (s *ProjectService) Get(projectCode string) (*db.Project, error) {
	var project db.Project
	err := s.db.Preload("ProjectManager").
		Preload("TeamMembers").
		Where("project_id = ?", projectCode).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("project %q not found", projectCode)
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &project, nil
}

func (s *ProjectService) List(status string) ([]db.Project, error) {
	query := s.db.Preload("ProjectManager").Preload("TeamMembers").
		Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var projects []db.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

/* ------------------------------------------------------------------ */
/*  Phases                                                            */
/* ------------------------------------------------------------------ */

// CreatePhase adds one of the five fixed phases to a project. The phase
// identifier is derived from the project identifier, so a second phase of
// the same type is rejected before it ever reaches the unique index.
func (s *ProjectService) CreatePhase(projectCode string, in *PhaseInput) (*db.ProjectPhase, error) {
	log.Info("create-phase:start", "projectID", projectCode, "phaseType", in.PhaseType)

	if !ident.ValidPhaseType(in.PhaseType) {
		return nil, apperr.Validationf("unknown phase type %q", in.PhaseType)
	}

	project, err := s.Get(projectCode)
	if err != nil {
		return nil, err
	}

	phaseID, err := ident.PhaseIdentifier(project.ProjectID, in.PhaseType)
	if err != nil {
		return nil, apperr.Validationf("%s", err.Error())
	}

	phase := &db.ProjectPhase{
		ProjectID:   project.ID,
		PhaseID:     phaseID,
		PhaseType:   in.PhaseType,
		Description: in.Description,
	}
	if in.StartDate != nil {
		d := db.DateOf(*in.StartDate)
		phase.StartDate = &d
	}
	if in.EndDate != nil {
		d := db.DateOf(*in.EndDate)
		phase.EndDate = &d
	}

	if err := s.db.Create(phase).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return nil, apperr.Duplicatef("project already has a %s phase", in.PhaseType)
		}
		log.Error("create-phase:failed", "err", err)
		return nil, fmt.Errorf("create phase: %w", err)
	}

	log.Info("create-phase:success", "phaseID", phase.PhaseID)
	return phase, nil
}

func (s *ProjectService) ListPhases(projectCode string) ([]db.ProjectPhase, error) {
	project, err := s.Get(projectCode)
	if err != nil {
		return nil, err
	}

	var phases []db.ProjectPhase
	err = s.db.Preload("Tasks").Preload("Tasks.Assignees").
		Where("project_id = ?", project.ID).
		Order("created_at").
		Find(&phases).Error
	if err != nil {
		return nil, fmt.Errorf("list phases: %w", err)
	}
	return phases, nil
}

/* ------------------------------------------------------------------ */
/*  Tasks                                                             */
/* ------------------------------------------------------------------ */

// CreateTask adds a task under a phase. Assignees must already be members
// of the owning project's team. The task identifier is allocated inside
// the insert transaction.
func (s *ProjectService) CreateTask(phaseCode string, in *TaskInput) (*db.PhaseTask, error) {
	log.Info("create-task:start", "phaseID", phaseCode, "title", in.Title)

	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validationf("task title is required")
	}

	phase, err := s.getPhase(phaseCode)
	if err != nil {
		return nil, err
	}

	assignees, err := s.findEmployees(in.AssigneeCodes)
	if err != nil {
		return nil, err
	}
	if err := s.requireTeamMembership(phase.ProjectID, assignees); err != nil {
		return nil, err
	}

	task := &db.PhaseTask{
		PhaseID:     phase.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      db.TaskPending,
	}
	if in.DueDate != nil {
		d := db.DateOf(*in.DueDate)
		task.DueDate = &d
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		code, err := ident.NextTaskID(ident.NewTxStore(tx), time.Now())
		if err != nil {
			return fmt.Errorf("allocate task identifier: %w", err)
		}
		task.TaskID = code

		if err := tx.Create(task).Error; err != nil {
			if db.IsDuplicateKey(err) {
				return apperr.Duplicatef("task identifier %q already exists", code)
			}
			return fmt.Errorf("create task: %w", err)
		}
		if len(assignees) > 0 {
			if err := tx.Model(task).Association("Assignees").Append(assignees); err != nil {
				return fmt.Errorf("assign task members: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("create-task:failed", "err", err)
		return nil, err
	}

	log.Info("create-task:success", "taskID", task.TaskID)
	return task, nil
}

// UpdateTask applies a partial update; replacing assignees re-checks team
// membership.
func (s *ProjectService) UpdateTask(taskCode string, in *TaskUpdateInput) (*db.PhaseTask, error) {
	log.Info("update-task:start", "taskID", taskCode)

	task, err := s.getTask(taskCode)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperr.Validationf("task title is required")
		}
		task.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		if !rules.ValidTaskStatus(*in.Status) {
			return nil, apperr.Validationf("unknown task status %q", *in.Status)
		}
		task.Status = *in.Status
	}
	if in.DueDate != nil {
		d := db.DateOf(*in.DueDate)
		task.DueDate = &d
	}

	var assignees []db.Employee
	if in.AssigneeCodes != nil {
		assignees, err = s.findEmployees(*in.AssigneeCodes)
		if err != nil {
			return nil, err
		}
		if err := s.requireTeamMembership(task.Phase.ProjectID, assignees); err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Assignees", "Phase").Save(task).Error; err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		if in.AssigneeCodes != nil {
			if err := tx.Model(task).Association("Assignees").Replace(assignees); err != nil {
				return fmt.Errorf("replace task assignees: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("update-task:failed", "err", err)
		return nil, err
	}

	log.Info("update-task:success", "taskID", taskCode)
	return s.getTask(taskCode)
}

func (s *ProjectService) ListTasks(phaseCode string) ([]db.PhaseTask, error) {
	phase, err := s.getPhase(phaseCode)
	if err != nil {
		return nil, err
	}

	var tasks []db.PhaseTask
	err = s.db.Preload("Assignees").
		Where("phase_id = ?", phase.ID).
		Order("created_at").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

/* ------------------------------------------------------------------ */
/*  Aggregate detail                                                  */
/* ------------------------------------------------------------------ */

// Detail is a project with its phases, tasks and derived task progress.
type Detail struct {
	Project         *db.Project
	Phases          []db.ProjectPhase
	TotalTasks      int
	CompletedTasks  int
	ProgressPercent float64 // 0 when the project has no tasks
}

// FullDetail loads a project with its complete phase and task tree and
// computes the completion percentage across all tasks.
func (s *ProjectService) FullDetail(projectCode string) (*Detail, error) {
	project, err := s.Get(projectCode)
	if err != nil {
		return nil, err
	}
	phases, err := s.ListPhases(projectCode)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Project: project, Phases: phases}
	for _, phase := range phases {
		for _, task := range phase.Tasks {
			detail.TotalTasks++
			if task.Status == db.TaskCompleted {
				detail.CompletedTasks++
			}
		}
	}
	if detail.TotalTasks > 0 {
		detail.ProgressPercent = float64(detail.CompletedTasks) / float64(detail.TotalTasks) * 100
	}
	return detail, nil
}

/* ------------------------------------------------------------------ */
/*  Helpers                                                           */
/* ------------------------------------------------------------------ */

func (s *ProjectService) getPhase(phaseCode string) (*db.ProjectPhase, error) {
	var phase db.ProjectPhase
	err := s.db.Where("phase_id = ?", phaseCode).First(&phase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("phase %q not found", phaseCode)
	}
	if err != nil {
		return nil, fmt.Errorf("find phase: %w", err)
	}
	return &phase, nil
}

func (s *ProjectService) getTask(taskCode string) (*db.PhaseTask, error) {
	var task db.PhaseTask
	err := s.db.Preload("Phase").Preload("Assignees").
		Where("task_id = ?", taskCode).
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("task %q not found", taskCode)
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

func (s *ProjectService) findEmployee(employeeCode string) (*db.Employee, error) {
	var emp db.Employee
	err := s.db.Where("employee_id = ?", employeeCode).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("employee %q not found", employeeCode)
	}
	if err != nil {
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return &emp, nil
}

func (s *ProjectService) findEmployees(codes []string) ([]db.Employee, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var emps []db.Employee
	if err := s.db.Where("employee_id IN ?", codes).Find(&emps).Error; err != nil {
		return nil, fmt.Errorf("find employees: %w", err)
	}
	if len(emps) != len(codes) {
		found := make(map[string]bool, len(emps))
		for _, e := range emps {
			found[e.EmployeeID] = true
		}
		for _, code := range codes {
			if !found[code] {
				return nil, apperr.NotFoundf("employee %q not found", code)
			}
		}
	}
	return emps, nil
}

// requireTeamMembership rejects assignees that are not on the owning
// project's team.
func (s *ProjectService) requireTeamMembership(projectID uint, assignees []db.Employee) error {
	if len(assignees) == 0 {
		return nil
	}

	var project db.Project
	if err := s.db.Preload("TeamMembers").First(&project, projectID).Error; err != nil {
		return fmt.Errorf("load project team: %w", err)
	}

	team := make(map[uint]bool, len(project.TeamMembers))
	for _, member := range project.TeamMembers {
		team[member.ID] = true
	}
	for _, assignee := range assignees {
		if !team[assignee.ID] {
			return apperr.Validationf("employee %q is not a member of the project team", assignee.EmployeeID)
		}
	}
	return nil
}
