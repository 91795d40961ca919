package db

import (
	"time"

	"gorm.io/datatypes"
)

// Employee is the root aggregate for HR data. Attendance, leave and login
// records are owned by it and removed with it.
type Employee struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	EmployeeID string `json:"employeeId" gorm:"uniqueIndex;not null"` // EMP001 / INT002, generated when absent

	Name  string `json:"name" gorm:"not null"`
	Email string `json:"email" gorm:"uniqueIndex;not null"` // gmail-only by company policy
	Phone string `json:"phone"`

	Department     string `json:"department"`
	EmploymentType string `json:"employmentType" gorm:"default:'staff'"` // staff, intern
	Role           string `json:"role"`
	IsManager      bool   `json:"isManager" gorm:"default:false"`

	// Staff-only fields. Interns never carry these.
	Position      *string  `json:"position"`
	Salary        *float64 `json:"salary"`
	SalaryType    *string  `json:"salaryType"`    // monthly, hourly, contract
	PaymentMethod *string  `json:"paymentMethod"` // bank, upi, cash, cheque
	OfferLetter   *string  `json:"offerLetter"`

	ReportingManagerID *uint `json:"reportingManagerId"`

	PasswordHash string          `json:"-"`
	JoiningDate  *datatypes.Date `json:"joiningDate"`
	Address      string          `json:"address"`
	Status       string          `json:"status" gorm:"default:'active'"` // active, inactive

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	ReportingManager  *Employee          `json:"reportingManager" gorm:"foreignKey:ReportingManagerID"`
	AttendanceRecords []AttendanceRecord `json:"attendanceRecords" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	LeaveRecords      []LeaveRecord      `json:"leaveRecords" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	LoginHistory      []LoginHistory     `json:"loginHistory" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// AttendanceRecord is one day of attendance for one employee. A record with
// a nil CheckOut is an open session; WorkingHours and OvertimeHours stay nil
// until check-out and are always derived, never set directly.
type AttendanceRecord struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	EmployeeID uint           `json:"employeeId" gorm:"not null;uniqueIndex:idx_attendance_employee_date"`
	Date       datatypes.Date `json:"date" gorm:"not null;uniqueIndex:idx_attendance_employee_date"`

	CheckIn      time.Time  `json:"checkIn" gorm:"not null"`
	CheckOut     *time.Time `json:"checkOut"` // nil while the session is open
	BreakMinutes int        `json:"breakMinutes" gorm:"default:60"`

	WorkingHours  *float64 `json:"workingHours"`  // derived on check-out
	OvertimeHours *float64 `json:"overtimeHours"` // derived on check-out

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Employee Employee `json:"employee" gorm:"foreignKey:EmployeeID"`
}

// LeaveRecord marks a single day of leave, unique per employee and date.
type LeaveRecord struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	EmployeeID uint           `json:"employeeId" gorm:"not null;uniqueIndex:idx_leave_employee_date"`
	LeaveDate  datatypes.Date `json:"leaveDate" gorm:"not null;uniqueIndex:idx_leave_employee_date"`
	Reason     string         `json:"reason" gorm:"not null"`

	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Employee Employee `json:"employee" gorm:"foreignKey:EmployeeID"`
}

// LoginHistory keeps one row per employee per calendar day. LoginTime is set
// when the row is created; LogoutTime at most once, later the same day.
type LoginHistory struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	EmployeeID uint           `json:"employeeId" gorm:"not null;uniqueIndex:idx_login_employee_date"`
	LoginDate  datatypes.Date `json:"loginDate" gorm:"not null;uniqueIndex:idx_login_employee_date"`
	LoginTime  time.Time      `json:"loginTime" gorm:"not null"`
	LogoutTime *time.Time     `json:"logoutTime"`

	// Relations
	Employee Employee `json:"employee" gorm:"foreignKey:EmployeeID"`
}

// Project is the root aggregate for phase/task data. RemainingAmount is
// always TotalBudget - SpentAmount, recomputed on every successful write.
type Project struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProjectID string `json:"projectId" gorm:"uniqueIndex;not null"` // PRJ-2026-0001, generated

	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`

	ClientName    string `json:"clientName"`
	ClientEmail   string `json:"clientEmail"`
	ClientContact string `json:"clientContact"`

	StartDate *datatypes.Date `json:"startDate"`
	EndDate   *datatypes.Date `json:"endDate"`

	Priority    string `json:"priority"`
	ProjectType string `json:"projectType"` // web, app, webapp
	Status      string `json:"status" gorm:"default:'ongoing'"`

	TotalBudget     float64 `json:"totalBudget" gorm:"default:0"`
	SpentAmount     float64 `json:"spentAmount" gorm:"default:0"`
	RemainingAmount float64 `json:"remainingAmount" gorm:"default:0"` // derived

	ProjectManagerID *uint `json:"projectManagerId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	ProjectManager *Employee      `json:"projectManager" gorm:"foreignKey:ProjectManagerID"`
	TeamMembers    []Employee     `json:"teamMembers" gorm:"many2many:project_team_members"`
	Phases         []ProjectPhase `json:"phases" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// ProjectPhase is one of the five fixed phase types of a project. PhaseID is
// not a counter: it is derived from the project identifier plus the phase
// code and can always be recomputed.
type ProjectPhase struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProjectID uint   `json:"projectId" gorm:"not null;uniqueIndex:idx_phase_project_type"`
	PhaseID   string `json:"phaseId" gorm:"uniqueIndex;not null"` // e.g. PRJ-2026-0001-DSN

	PhaseType   string `json:"phaseType" gorm:"not null;uniqueIndex:idx_phase_project_type"` // planning, design, development, testing, deployment
	Description string `json:"description"`

	StartDate *datatypes.Date `json:"startDate"`
	EndDate   *datatypes.Date `json:"endDate"`

	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Project Project     `json:"project" gorm:"foreignKey:ProjectID"`
	Tasks   []PhaseTask `json:"tasks" gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE"`
}

// PhaseTask belongs to a phase; assignees must be members of the owning
// project's team.
type PhaseTask struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	PhaseID uint   `json:"phaseId" gorm:"not null"`
	TaskID  string `json:"taskId" gorm:"uniqueIndex;not null"` // TASK-2026-0004, generated

	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	Status      string `json:"status" gorm:"default:'pending'"` // pending, in_progress, completed

	DueDate *datatypes.Date `json:"dueDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Phase     ProjectPhase `json:"phase" gorm:"foreignKey:PhaseID"`
	Assignees []Employee   `json:"assignees" gorm:"many2many:phase_task_assignees"`
}

// IdentifierSequence backs the prefix and prefix+year identifier scopes.
// One row per scope, bumped under a row lock so concurrent allocations in
// the same scope serialize.
type IdentifierSequence struct {
	Scope      string    `json:"scope" gorm:"primaryKey"` // EMP, INT, PRJ-2026, TASK-2026
	LastNumber int64     `json:"lastNumber" gorm:"not null"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// EmploymentType values
const (
	EmploymentStaff  = "staff"
	EmploymentIntern = "intern"
)

// Employee status values
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// PhaseType values
const (
	PhasePlanning    = "planning"
	PhaseDesign      = "design"
	PhaseDevelopment = "development"
	PhaseTesting     = "testing"
	PhaseDeployment  = "deployment"
)

// Task status values
const (
	TaskPending    = "pending"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
)
