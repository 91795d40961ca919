package projects

import (
	"fmt"
	"strings"
	"testing"

	"github.com/codeedex/hr-office/internal/apperr"
	"github.com/codeedex/hr-office/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func f64Ptr(f float64) *float64 { return &f }

// openTestDB opens a per-test in-memory database and migrates the schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}

// seedProject inserts a project with a spent budget directly, bypassing the
// create path so the update invariants are tested in isolation.
func seedProject(t *testing.T, database *gorm.DB) *db.Project {
	t.Helper()

	project := &db.Project{
		ProjectID:       "PRJ-2026-0001",
		Name:            "Portal Rebuild",
		Status:          "ongoing",
		TotalBudget:     1000,
		SpentAmount:     200,
		RemainingAmount: 800,
	}
	if err := database.Create(project).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return project
}

func seedEmployee(t *testing.T, database *gorm.DB, code string) *db.Employee {
	t.Helper()

	emp := &db.Employee{
		EmployeeID:     code,
		Name:           "Employee " + code,
		Email:          strings.ToLower(code) + "@gmail.com",
		EmploymentType: db.EmploymentStaff,
		IsManager:      true,
		Status:         db.StatusActive,
	}
	if err := database.Create(emp).Error; err != nil {
		t.Fatalf("seed employee %s: %v", code, err)
	}
	return emp
}

func TestUpdateRecomputesRemaining(t *testing.T) {
	t.Parallel()

	database := openTestDB(t)
	service := NewProjectService(database)
	seedProject(t, database)

	updated, err := service.Update("PRJ-2026-0001", &ProjectUpdateInput{
		SpentAmount: f64Ptr(400),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.RemainingAmount != 600 {
		t.Fatalf("remaining = %v, want 600", updated.RemainingAmount)
	}

	reloaded, err := service.Get("PRJ-2026-0001")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.SpentAmount != 400 || reloaded.RemainingAmount != 600 {
		t.Fatalf("persisted spent/remaining = %v/%v, want 400/600",
			reloaded.SpentAmount, reloaded.RemainingAmount)
	}
}

func TestUpdateOverspendRejectedAndNothingWritten(t *testing.T) {
	t.Parallel()

	database := openTestDB(t)
	service := NewProjectService(database)
	seedProject(t, database)

	_, err := service.Update("PRJ-2026-0001", &ProjectUpdateInput{
		SpentAmount: f64Ptr(1500),
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}

	// The rejected update must leave every budget figure untouched.
	reloaded, err := service.Get("PRJ-2026-0001")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.SpentAmount != 200 || reloaded.RemainingAmount != 800 || reloaded.TotalBudget != 1000 {
		t.Fatalf("budget mutated by rejected update: total/spent/remaining = %v/%v/%v",
			reloaded.TotalBudget, reloaded.SpentAmount, reloaded.RemainingAmount)
	}
}

func TestUpdateShrinkingTotalBelowSpentRejected(t *testing.T) {
	t.Parallel()

	database := openTestDB(t)
	service := NewProjectService(database)
	seedProject(t, database)

	_, err := service.Update("PRJ-2026-0001", &ProjectUpdateInput{
		TotalBudget: f64Ptr(100), // below the 200 already spent
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestUpdateReplacesTeam(t *testing.T) {
	t.Parallel()

	database := openTestDB(t)
	service := NewProjectService(database)
	seedProject(t, database)
	seedEmployee(t, database, "EMP001")
	seedEmployee(t, database, "EMP002")

	team := []string{"EMP001"}
	if _, err := service.Update("PRJ-2026-0001", &ProjectUpdateInput{
		TeamMemberCodes: &team,
	}); err != nil {
		t.Fatalf("assign team: %v", err)
	}

	replacement := []string{"EMP002"}
	if _, err := service.Update("PRJ-2026-0001", &ProjectUpdateInput{
		TeamMemberCodes: &replacement,
	}); err != nil {
		t.Fatalf("replace team: %v", err)
	}

	reloaded, err := service.Get("PRJ-2026-0001")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.TeamMembers) != 1 || reloaded.TeamMembers[0].EmployeeID != "EMP002" {
		t.Fatalf("team after replace = %v, want just EMP002", reloaded.TeamMembers)
	}
}

func TestCreatePhaseDerivedIDAndUniqueness(t *testing.T) {
	t.Parallel()

	database := openTestDB(t)
	service := NewProjectService(database)
	seedProject(t, database)

	phase, err := service.CreatePhase("PRJ-2026-0001", &PhaseInput{PhaseType: db.PhaseDesign})
	if err != nil {
		t.Fatalf("create phase: %v", err)
	}
	if phase.PhaseID != "PRJ-2026-0001-DSN" {
		t.Fatalf("phase identifier = %q, want PRJ-2026-0001-DSN", phase.PhaseID)
	}

	// A second phase of the same type on the same project is a conflict.
	_, err = service.CreatePhase("PRJ-2026-0001", &PhaseInput{PhaseType: db.PhaseDesign})
	if !apperr.IsDuplicate(err) {
		t.Fatalf("want duplicate error, got %v", err)
	}

	// A different type is fine.
	if _, err := service.CreatePhase("PRJ-2026-0001", &PhaseInput{PhaseType: db.PhaseTesting}); err != nil {
		t.Fatalf("create second phase type: %v", err)
	}
}

func TestCreatePhaseUnknownTypeRejected(t *testing.T) {
	t.Parallel()

	database := openTestDB(t)
	service := NewProjectService(database)
	seedProject(t, database)

	_, err := service.CreatePhase("PRJ-2026-0001", &PhaseInput{PhaseType: "review"})
	if !apperr.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestCreateTaskRejectsNonTeamAssignee(t *testing.T) {
	t.Parallel()

	database := openTestDB(t)
	service := NewProjectService(database)
	seedProject(t, database)
	seedEmployee(t, database, "EMP001")
	seedEmployee(t, database, "EMP002")

	team := []string{"EMP001"}
	if _, err := service.Update("PRJ-2026-0001", &ProjectUpdateInput{
		TeamMemberCodes: &team,
	}); err != nil {
		t.Fatalf("assign team: %v", err)
	}
	if _, err := service.CreatePhase("PRJ-2026-0001", &PhaseInput{PhaseType: db.PhaseDevelopment}); err != nil {
		t.Fatalf("create phase: %v", err)
	}

	// EMP002 exists but is not on the project team.
	_, err := service.CreateTask("PRJ-2026-0001-DEV", &TaskInput{
		Title:         "Implement API",
		AssigneeCodes: []string{"EMP002"},
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestFullDetailProgress(t *testing.T) {
	t.Parallel()

	database := openTestDB(t)
	service := NewProjectService(database)
	project := seedProject(t, database)

	phase, err := service.CreatePhase("PRJ-2026-0001", &PhaseInput{PhaseType: db.PhasePlanning})
	if err != nil {
		t.Fatalf("create phase: %v", err)
	}

	// Seed tasks directly; creation through the service is covered by the
	// allocator tests.
	for i, status := range []string{db.TaskCompleted, db.TaskCompleted, db.TaskPending, db.TaskInProgress} {
		task := &db.PhaseTask{
			PhaseID: phase.ID,
			TaskID:  fmt.Sprintf("TASK-2026-%04d", i+1),
			Title:   fmt.Sprintf("Task %d", i+1),
			Status:  status,
		}
		if err := database.Create(task).Error; err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	detail, err := service.FullDetail(project.ProjectID)
	if err != nil {
		t.Fatalf("full detail: %v", err)
	}
	if detail.TotalTasks != 4 || detail.CompletedTasks != 2 {
		t.Fatalf("tasks = %d/%d, want 2 of 4 completed", detail.CompletedTasks, detail.TotalTasks)
	}
	if detail.ProgressPercent != 50 {
		t.Fatalf("progress = %v, want 50", detail.ProgressPercent)
	}
}

func TestFullDetailNoTasks(t *testing.T) {
	t.Parallel()

	database := openTestDB(t)
	service := NewProjectService(database)
	project := seedProject(t, database)

	detail, err := service.FullDetail(project.ProjectID)
	if err != nil {
		t.Fatalf("full detail: %v", err)
	}
	if detail.ProgressPercent != 0 {
		t.Fatalf("progress with no tasks = %v, want 0", detail.ProgressPercent)
	}
}
