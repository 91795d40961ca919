package employees

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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var log = slog.Default().With(
	slog.String("layer", "service"),
	slog.String("service", "EmployeeService"),
)

type EmployeeService struct {
	db *gorm.DB
}

func NewEmployeeService(database *gorm.DB) *EmployeeService {
	return &EmployeeService{db: database}
}

/* ------------------------------------------------------------------ */
/*  Inputs                                                            */
/* ------------------------------------------------------------------ */

// StaffInput and InternInput keep the two classifications apart at
// construction: each carries only the fields valid for its variant, so an
// intern can never arrive with a salary and a staff member can never skip
// one.

type StaffInput struct {
	EmployeeID string // optional; generated when empty
	Name       string
	Email      string
	Phone      string
	Department string
	Role       string
	Address    string

	Position      string
	Salary        float64
	SalaryType    string
	PaymentMethod string
	OfferLetter   string

	IsManager            bool
	ReportingManagerCode string // employee code; required unless IsManager

	Password    string
	JoiningDate *time.Time
}

type InternInput struct {
	EmployeeID string // optional; generated when empty
	Name       string
	Email      string
	Phone      string
	Department string
	Role       string
	Address    string

	Password    string
	JoiningDate *time.Time
}

// UpdateInput applies partial updates. Nil fields are left untouched; the
// classification invariants are re-checked against the merged result.
type UpdateInput struct {
	Name       *string
	Email      *string
	Phone      *string
	Department *string
	Role       *string
	Address    *string
	Status     *string

	EmploymentType *string
	Position       *string
	Salary         *float64
	SalaryType     *string
	PaymentMethod  *string
	OfferLetter    *string

	IsManager            *bool
	ReportingManagerCode *string // empty string clears the manager

	Password *string
}

type ListFilter struct {
	Status         string
	EmploymentType string
	Department     string
	Search         string // matches name, email or employee code
}

/* ------------------------------------------------------------------ */
/*  Creation                                                          */
/* ------------------------------------------------------------------ */

// CreateStaff creates a staff employee. The identifier is allocated inside
// the insert transaction when none was supplied.
func (s *EmployeeService) CreateStaff(in *StaffInput) (*db.Employee, error) {
	log.Info("create-staff:start", "email", in.Email)

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !rules.ValidEmail(email) {
		return nil, apperr.Validationf("only gmail.com email is allowed")
	}

	emp := &db.Employee{
		EmployeeID:     strings.TrimSpace(in.EmployeeID),
		Name:           strings.TrimSpace(in.Name),
		Email:          email,
		Phone:          in.Phone,
		Department:     in.Department,
		Role:           in.Role,
		Address:        in.Address,
		EmploymentType: db.EmploymentStaff,
		IsManager:      in.IsManager,
		Position:       nonEmpty(in.Position),
		Salary:         &in.Salary,
		SalaryType:     nonEmpty(in.SalaryType),
		PaymentMethod:  nonEmpty(in.PaymentMethod),
		OfferLetter:    nonEmpty(in.OfferLetter),
		Status:         db.StatusActive,
	}
	if in.JoiningDate != nil {
		d := db.DateOf(*in.JoiningDate)
		emp.JoiningDate = &d
	}

	var manager *db.Employee
	if in.ReportingManagerCode != "" {
		var err error
		manager, err = s.Get(in.ReportingManagerCode)
		if err != nil {
			return nil, err
		}
		emp.ReportingManagerID = &manager.ID
	}

	if err := rules.ValidateStaff(emp, manager); err != nil {
		return nil, err
	}

	if err := s.setPassword(emp, in.Password); err != nil {
		return nil, err
	}

	if err := s.insert(emp, ident.PrefixStaff); err != nil {
		log.Error("create-staff:insert-failed", "err", err)
		return nil, err
	}

	log.Info("create-staff:success", "employeeID", emp.EmployeeID)
	return emp, nil
}

// CreateIntern creates an intern. Interns never carry salary, position or a
// reporting manager; the input cannot even express them.
func (s *EmployeeService) CreateIntern(in *InternInput) (*db.Employee, error) {
	log.Info("create-intern:start", "email", in.Email)

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !rules.ValidEmail(email) {
		return nil, apperr.Validationf("only gmail.com email is allowed")
	}

	emp := &db.Employee{
		EmployeeID:     strings.TrimSpace(in.EmployeeID),
		Name:           strings.TrimSpace(in.Name),
		Email:          email,
		Phone:          in.Phone,
		Department:     in.Department,
		Role:           in.Role,
		Address:        in.Address,
		EmploymentType: db.EmploymentIntern,
		Status:         db.StatusActive,
	}
	if in.JoiningDate != nil {
		d := db.DateOf(*in.JoiningDate)
		emp.JoiningDate = &d
	}
	rules.ApplyInternConstraints(emp)

	if err := s.setPassword(emp, in.Password); err != nil {
		return nil, err
	}

	if err := s.insert(emp, ident.PrefixIntern); err != nil {
		log.Error("create-intern:insert-failed", "err", err)
		return nil, err
	}

	log.Info("create-intern:success", "employeeID", emp.EmployeeID)
	return emp, nil
}

func (s *EmployeeService) insert(emp *db.Employee, prefix string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if emp.EmployeeID == "" {
			code, err := ident.NextEmployeeID(ident.NewTxStore(tx), prefix)
			if err != nil {
				return fmt.Errorf("allocate employee identifier: %w", err)
			}
			emp.EmployeeID = code
		}
		if err := tx.Create(emp).Error; err != nil {
			if db.IsDuplicateKey(err) {
				return apperr.Duplicatef("employee with this email or identifier already exists")
			}
			return fmt.Errorf("create employee: %w", err)
		}
		return nil
	})
}

/* ------------------------------------------------------------------ */
/*  Mutation                                                          */
/* ------------------------------------------------------------------ */

// Update applies a partial update and re-checks the classification
// invariants against the merged record. Invariants are standing
// constraints, not one-time creation gates.
func (s *EmployeeService) Update(employeeCode string, in *UpdateInput) (*db.Employee, error) {
	log.Info("update-employee:start", "employeeID", employeeCode)

	emp, err := s.Get(employeeCode)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		emp.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if !rules.ValidEmail(email) {
			return nil, apperr.Validationf("only gmail.com email is allowed")
		}
		emp.Email = email
	}
	if in.Phone != nil {
		emp.Phone = *in.Phone
	}
	if in.Department != nil {
		emp.Department = *in.Department
	}
	if in.Role != nil {
		emp.Role = *in.Role
	}
	if in.Address != nil {
		emp.Address = *in.Address
	}
	if in.Status != nil {
		if *in.Status != db.StatusActive && *in.Status != db.StatusInactive {
			return nil, apperr.Validationf("unknown status %q", *in.Status)
		}
		emp.Status = *in.Status
	}
	if in.EmploymentType != nil {
		if !rules.ValidEmploymentType(*in.EmploymentType) {
			return nil, apperr.Validationf("unknown employment type %q", *in.EmploymentType)
		}
		emp.EmploymentType = *in.EmploymentType
	}
	if in.Position != nil {
		emp.Position = nonEmpty(*in.Position)
	}
	if in.Salary != nil {
		emp.Salary = in.Salary
	}
	if in.SalaryType != nil {
		emp.SalaryType = nonEmpty(*in.SalaryType)
	}
	if in.PaymentMethod != nil {
		emp.PaymentMethod = nonEmpty(*in.PaymentMethod)
	}
	if in.OfferLetter != nil {
		emp.OfferLetter = nonEmpty(*in.OfferLetter)
	}
	if in.IsManager != nil {
		emp.IsManager = *in.IsManager
	}

	var manager *db.Employee
	if in.ReportingManagerCode != nil {
		if *in.ReportingManagerCode == "" {
			emp.ReportingManagerID = nil
			emp.ReportingManager = nil
		} else {
			manager, err = s.Get(*in.ReportingManagerCode)
			if err != nil {
				return nil, err
			}
			emp.ReportingManagerID = &manager.ID
			emp.ReportingManager = manager
		}
	} else if emp.ReportingManagerID != nil {
		manager, err = s.getByID(*emp.ReportingManagerID)
		if err != nil {
			return nil, err
		}
	}

	switch emp.EmploymentType {
	case db.EmploymentIntern:
		rules.ApplyInternConstraints(emp)
	case db.EmploymentStaff:
		if err := rules.ValidateStaff(emp, manager); err != nil {
			return nil, err
		}
		if manager != nil && rules.ManagerChainHasCycle(emp.ID, manager.ID, s.managerOf) {
			return nil, apperr.Validationf("reporting manager assignment would create a cycle")
		}
	}

	if in.Password != nil {
		if err := s.setPassword(emp, *in.Password); err != nil {
			return nil, err
		}
	}

	emp.UpdatedAt = time.Now()
	// Save only the employee's own columns. Saving associations would let
	// the preloaded ReportingManager write reporting_manager_id back after
	// it was cleared above.
	if err := s.db.Omit(clause.Associations).Save(emp).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return nil, apperr.Duplicatef("employee with this email or identifier already exists")
		}
		log.Error("update-employee:save-failed", "err", err)
		return nil, fmt.Errorf("update employee: %w", err)
	}

	log.Info("update-employee:success", "employeeID", emp.EmployeeID)
	return emp, nil
}

// Delete removes the employee; attendance, leave and login history cascade.
func (s *EmployeeService) Delete(employeeCode string) error {
	log.Info("delete-employee:start", "employeeID", employeeCode)

	emp, err := s.Get(employeeCode)
	if err != nil {
		return err
	}
	if err := s.db.Delete(emp).Error; err != nil {
		log.Error("delete-employee:failed", "err", err)
		return fmt.Errorf("delete employee: %w", err)
	}

	log.Info("delete-employee:success", "employeeID", employeeCode)
	return nil
}

/* ------------------------------------------------------------------ */
/*  Queries                                                           */
/* ------------------------------------------------------------------ */

func (s *EmployeeService) Get(employeeCode string) (*db.Employee, error) {
	var emp db.Employee
	err := s.db.Preload("ReportingManager").
		Where("employee_id = ?", employeeCode).
		First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("employee %q not found", employeeCode)
	}
	if err != nil {
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return &emp, nil
}

// GetByEmail is used by the login flow; the match is case-insensitive.
func (s *EmployeeService) GetByEmail(email string) (*db.Employee, error) {
	var emp db.Employee
	err := s.db.Where("LOWER(email) = ?", strings.ToLower(email)).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("employee not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find employee by email: %w", err)
	}
	return &emp, nil
}

func (s *EmployeeService) List(filter ListFilter) ([]db.Employee, error) {
	query := s.db.Preload("ReportingManager").Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.EmploymentType != "" {
		query = query.Where("employment_type = ?", filter.EmploymentType)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"name ILIKE ? OR email ILIKE ? OR employee_id ILIKE ?", like, like, like)
	}

	var emps []db.Employee
	if err := query.Find(&emps).Error; err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return emps, nil
}

// Managers lists active staff managers, the only valid reporting targets.
func (s *EmployeeService) Managers() ([]db.Employee, error) {
	var emps []db.Employee
	err := s.db.Where(
		"employment_type = ? AND is_manager = ? AND status = ?",
		db.EmploymentStaff, true, db.StatusActive,
	).Order("name").Find(&emps).Error
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	return emps, nil
}

/* ------------------------------------------------------------------ */
/*  Helpers                                                           */
/* ------------------------------------------------------------------ */

func (s *EmployeeService) getByID(id uint) (*db.Employee, error) {
	var emp db.Employee
	err := s.db.First(&emp, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("employee #%d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return &emp, nil
}

// managerOf feeds the cycle check with the stored reporting chain.
func (s *EmployeeService) managerOf(id uint) (uint, bool) {
	var emp db.Employee
	if err := s.db.Select("reporting_manager_id").First(&emp, id).Error; err != nil {
		return 0, false
	}
	if emp.ReportingManagerID == nil {
		return 0, false
	}
	return *emp.ReportingManagerID, true
}

func (s *EmployeeService) setPassword(emp *db.Employee, password string) error {
	if password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	emp.PasswordHash = string(hash)
	return nil
}

func nonEmpty(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}
