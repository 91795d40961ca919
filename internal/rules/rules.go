package rules

import (
	"regexp"

	"github.com/codeedex/hr-office/internal/apperr"
	"github.com/codeedex/hr-office/internal/db"
)

// Company policy: employees sign up with gmail addresses only.
var gmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@gmail\.com$`)

// ValidEmail reports whether email satisfies the gmail-only policy.
func ValidEmail(email string) bool {
	return gmailPattern.MatchString(email)
}

// ValidateStaff checks the standing invariants of a staff employee. manager
// is the resolved reporting manager, nil when none is assigned. The rules
// are re-applied on every mutation, not only at creation.
func ValidateStaff(e *db.Employee, manager *db.Employee) error {
	if e.Position == nil || *e.Position == "" {
		return apperr.Validationf("staff must have a position")
	}
	if e.Salary == nil {
		return apperr.Validationf("staff must have a salary amount")
	}
	if e.SalaryType == nil || *e.SalaryType == "" {
		return apperr.Validationf("staff must have a salary type")
	}
	if e.PaymentMethod == nil || *e.PaymentMethod == "" {
		return apperr.Validationf("staff must have a payment method")
	}
	if e.OfferLetter == nil || *e.OfferLetter == "" {
		return apperr.Validationf("staff must have an offer letter")
	}

	// Managers report to nobody; everyone else reports to a staff manager.
	if e.IsManager {
		return nil
	}
	if manager == nil {
		return apperr.Validationf("reporting manager is required for staff employees")
	}
	if manager.EmploymentType != db.EmploymentStaff {
		return apperr.Validationf("reporting manager must be a staff employee")
	}
	if !manager.IsManager {
		return apperr.Validationf("reporting manager must be a manager")
	}
	if manager.Status != db.StatusActive {
		return apperr.Validationf("reporting manager must be active")
	}
	return nil
}

// ApplyInternConstraints forces the staff-only fields empty on an intern,
// regardless of what the caller supplied.
func ApplyInternConstraints(e *db.Employee) {
	e.Position = nil
	e.Salary = nil
	e.SalaryType = nil
	e.PaymentMethod = nil
	e.OfferLetter = nil
	e.ReportingManagerID = nil
	e.ReportingManager = nil
	e.IsManager = false
}

// ManagerChainHasCycle walks the reporting chain starting at managerID and
// reports whether it reaches employeeID. managerOf returns the manager of
// the given employee, false when there is none. The visited set guards
// against pre-existing cycles in stored data.
func ManagerChainHasCycle(employeeID, managerID uint, managerOf func(uint) (uint, bool)) bool {
	visited := make(map[uint]bool)
	current := managerID
	for {
		if current == employeeID {
			return true
		}
		if visited[current] {
			return false
		}
		visited[current] = true

		next, ok := managerOf(current)
		if !ok {
			return false
		}
		current = next
	}
}

// BudgetInvariant rejects a spent amount exceeding the total budget.
func BudgetInvariant(total, spent float64) error {
	if spent > total {
		return apperr.Validationf("spent amount cannot exceed total budget")
	}
	return nil
}

// ValidTaskStatus reports whether status is a known task status.
func ValidTaskStatus(status string) bool {
	switch status {
	case db.TaskPending, db.TaskInProgress, db.TaskCompleted:
		return true
	default:
		return false
	}
}

// ValidEmploymentType reports whether t is a known classification.
func ValidEmploymentType(t string) bool {
	return t == db.EmploymentStaff || t == db.EmploymentIntern
}
