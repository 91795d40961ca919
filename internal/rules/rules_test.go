package rules

import (
	"testing"

	"github.com/codeedex/hr-office/internal/apperr"
	"github.com/codeedex/hr-office/internal/db"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func uintPtr(u uint) *uint      { return &u }

func validManager() *db.Employee {
	return &db.Employee{
		ID:             1,
		EmployeeID:     "EMP001",
		EmploymentType: db.EmploymentStaff,
		IsManager:      true,
		Status:         db.StatusActive,
	}
}

func validStaff() *db.Employee {
	return &db.Employee{
		ID:                 2,
		EmployeeID:         "EMP002",
		EmploymentType:     db.EmploymentStaff,
		Position:           strPtr("Developer"),
		Salary:             f64Ptr(50000),
		SalaryType:         strPtr("monthly"),
		PaymentMethod:      strPtr("bank"),
		OfferLetter:        strPtr("letters/emp002.pdf"),
		ReportingManagerID: uintPtr(1),
	}
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"jane@gmail.com", "j.doe+hr@gmail.com", "a_b%c@gmail.com"}
	for _, email := range valid {
		if !ValidEmail(email) {
			t.Errorf("%q must be valid", email)
		}
	}

	invalid := []string{"jane@yahoo.com", "jane@gmail.co", "jane@gmailxcom", "@gmail.com", "jane@gmail.com "}
	for _, email := range invalid {
		if ValidEmail(email) {
			t.Errorf("%q must be invalid", email)
		}
	}
}

func TestValidateStaff(t *testing.T) {
	t.Parallel()

	if err := ValidateStaff(validStaff(), validManager()); err != nil {
		t.Fatalf("valid staff rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(e *db.Employee)
	}{
		{"missing position", func(e *db.Employee) { e.Position = nil }},
		{"empty position", func(e *db.Employee) { e.Position = strPtr("") }},
		{"missing salary", func(e *db.Employee) { e.Salary = nil }},
		{"missing salary type", func(e *db.Employee) { e.SalaryType = nil }},
		{"missing payment method", func(e *db.Employee) { e.PaymentMethod = nil }},
		{"missing offer letter", func(e *db.Employee) { e.OfferLetter = nil }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			staff := validStaff()
			tc.mutate(staff)
			err := ValidateStaff(staff, validManager())
			if !apperr.IsValidation(err) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestValidateStaffManagerRules(t *testing.T) {
	t.Parallel()

	t.Run("non-manager requires manager", func(t *testing.T) {
		t.Parallel()
		if err := ValidateStaff(validStaff(), nil); !apperr.IsValidation(err) {
			t.Fatalf("want validation error, got %v", err)
		}
	})

	t.Run("manager needs no manager", func(t *testing.T) {
		t.Parallel()
		staff := validStaff()
		staff.IsManager = true
		staff.ReportingManagerID = nil
		if err := ValidateStaff(staff, nil); err != nil {
			t.Fatalf("manager without manager rejected: %v", err)
		}
	})

	t.Run("manager must be staff", func(t *testing.T) {
		t.Parallel()
		manager := validManager()
		manager.EmploymentType = db.EmploymentIntern
		if err := ValidateStaff(validStaff(), manager); !apperr.IsValidation(err) {
			t.Fatalf("want validation error, got %v", err)
		}
	})

	t.Run("manager must have the flag", func(t *testing.T) {
		t.Parallel()
		manager := validManager()
		manager.IsManager = false
		if err := ValidateStaff(validStaff(), manager); !apperr.IsValidation(err) {
			t.Fatalf("want validation error, got %v", err)
		}
	})

	t.Run("manager must be active", func(t *testing.T) {
		t.Parallel()
		manager := validManager()
		manager.Status = db.StatusInactive
		if err := ValidateStaff(validStaff(), manager); !apperr.IsValidation(err) {
			t.Fatalf("want validation error, got %v", err)
		}
	})
}

func TestApplyInternConstraints(t *testing.T) {
	t.Parallel()

	intern := validStaff() // starts with staff fields filled in
	intern.EmploymentType = db.EmploymentIntern
	intern.IsManager = true

	ApplyInternConstraints(intern)

	if intern.Position != nil || intern.Salary != nil || intern.SalaryType != nil ||
		intern.PaymentMethod != nil || intern.OfferLetter != nil {
		t.Fatal("intern must not carry staff-only fields")
	}
	if intern.ReportingManagerID != nil || intern.ReportingManager != nil {
		t.Fatal("intern must not have a reporting manager")
	}
	if intern.IsManager {
		t.Fatal("intern can never be a manager")
	}
}

func TestManagerChainHasCycle(t *testing.T) {
	t.Parallel()

	// 3 reports to 2, 2 reports to 1, 1 reports to nobody.
	chain := map[uint]uint{3: 2, 2: 1}
	managerOf := func(id uint) (uint, bool) {
		m, ok := chain[id]
		return m, ok
	}

	if ManagerChainHasCycle(5, 3, managerOf) {
		t.Fatal("assigning an outside manager must not be a cycle")
	}
	// Assigning employee 1's manager to be 3 closes the loop 1 -> 3 -> 2 -> 1.
	if !ManagerChainHasCycle(1, 3, managerOf) {
		t.Fatal("cycle not detected")
	}
	// Self-management is the smallest cycle.
	if !ManagerChainHasCycle(4, 4, managerOf) {
		t.Fatal("self-cycle not detected")
	}
}

func TestManagerChainHasCycleTerminatesOnCorruptData(t *testing.T) {
	t.Parallel()

	// Pre-existing loop in stored data that does not involve the employee.
	chain := map[uint]uint{2: 3, 3: 2}
	managerOf := func(id uint) (uint, bool) {
		m, ok := chain[id]
		return m, ok
	}

	if ManagerChainHasCycle(1, 2, managerOf) {
		t.Fatal("foreign loop must not be reported as the employee's cycle")
	}
}

func TestBudgetInvariant(t *testing.T) {
	t.Parallel()

	if err := BudgetInvariant(1000, 999.99); err != nil {
		t.Fatalf("spent below total rejected: %v", err)
	}
	if err := BudgetInvariant(1000, 1000); err != nil {
		t.Fatalf("spent equal to total rejected: %v", err)
	}
	if err := BudgetInvariant(1000, 1000.01); !apperr.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestValidTaskStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []string{db.TaskPending, db.TaskInProgress, db.TaskCompleted} {
		if !ValidTaskStatus(status) {
			t.Errorf("%q must be valid", status)
		}
	}
	if ValidTaskStatus("done") {
		t.Error("unknown status accepted")
	}
}
