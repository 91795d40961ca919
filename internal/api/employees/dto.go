package employees

import (
	"time"

	"github.com/codeedex/hr-office/internal/db"
	svc "github.com/codeedex/hr-office/internal/services/employees"
)

const dateLayout = "2006-01-02"

// Request DTOs

// matches the JSON sent by the admin panel
type CreateStaffRequest struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Role       string `json:"role"`
	Address    string `json:"address"`

	Position      string  `json:"position" binding:"required"`
	Salary        float64 `json:"salary" binding:"required"`
	SalaryType    string  `json:"salaryType" binding:"required"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	OfferLetter   string  `json:"offerLetter" binding:"required"`

	IsManager            bool   `json:"isManager"`
	ReportingManagerCode string `json:"reportingManagerId"`

	Password    string `json:"password"`
	JoiningDate string `json:"joiningDate"`
}

type CreateInternRequest struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Role       string `json:"role"`
	Address    string `json:"address"`

	Password    string `json:"password"`
	JoiningDate string `json:"joiningDate"`
}

type UpdateEmployeeRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Role       *string `json:"role"`
	Address    *string `json:"address"`
	Status     *string `json:"status"`

	EmploymentType *string  `json:"employmentType"`
	Position       *string  `json:"position"`
	Salary         *float64 `json:"salary"`
	SalaryType     *string  `json:"salaryType"`
	PaymentMethod  *string  `json:"paymentMethod"`
	OfferLetter    *string  `json:"offerLetter"`

	IsManager            *bool   `json:"isManager"`
	ReportingManagerCode *string `json:"reportingManagerId"`

	Password *string `json:"password"`
}

func (r *CreateStaffRequest) ToInput() *svc.StaffInput {
	in := &svc.StaffInput{
		EmployeeID:           r.EmployeeID,
		Name:                 r.Name,
		Email:                r.Email,
		Phone:                r.Phone,
		Department:           r.Department,
		Role:                 r.Role,
		Address:              r.Address,
		Position:             r.Position,
		Salary:               r.Salary,
		SalaryType:           r.SalaryType,
		PaymentMethod:        r.PaymentMethod,
		OfferLetter:          r.OfferLetter,
		IsManager:            r.IsManager,
		ReportingManagerCode: r.ReportingManagerCode,
		Password:             r.Password,
	}
	if t, err := time.Parse(dateLayout, r.JoiningDate); err == nil {
		in.JoiningDate = &t
	}
	return in
}

func (r *CreateInternRequest) ToInput() *svc.InternInput {
	in := &svc.InternInput{
		EmployeeID: r.EmployeeID,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Department: r.Department,
		Role:       r.Role,
		Address:    r.Address,
		Password:   r.Password,
	}
	if t, err := time.Parse(dateLayout, r.JoiningDate); err == nil {
		in.JoiningDate = &t
	}
	return in
}

func (r *UpdateEmployeeRequest) ToInput() *svc.UpdateInput {
	return &svc.UpdateInput{
		Name:                 r.Name,
		Email:                r.Email,
		Phone:                r.Phone,
		Department:           r.Department,
		Role:                 r.Role,
		Address:              r.Address,
		Status:               r.Status,
		EmploymentType:       r.EmploymentType,
		Position:             r.Position,
		Salary:               r.Salary,
		SalaryType:           r.SalaryType,
		PaymentMethod:        r.PaymentMethod,
		OfferLetter:          r.OfferLetter,
		IsManager:            r.IsManager,
		ReportingManagerCode: r.ReportingManagerCode,
		Password:             r.Password,
	}
}

// Response DTOs

type EmployeeResponse struct {
	ID         uint   `json:"id"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`

	Department     string `json:"department"`
	EmploymentType string `json:"employmentType"`
	Role           string `json:"role"`
	IsManager      bool   `json:"isManager"`

	Position      *string  `json:"position,omitempty"`
	Salary        *float64 `json:"salary,omitempty"`
	SalaryType    *string  `json:"salaryType,omitempty"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	OfferLetter   *string  `json:"offerLetter,omitempty"`

	ReportingManagerID   *string `json:"reportingManagerId,omitempty"`
	ReportingManagerName *string `json:"reportingManagerName,omitempty"`

	JoiningDate *string `json:"joiningDate,omitempty"`
	Address     string  `json:"address"`
	Status      string  `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func EmployeeToResponse(e *db.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             e.ID,
		EmployeeID:     e.EmployeeID,
		Name:           e.Name,
		Email:          e.Email,
		Phone:          e.Phone,
		Department:     e.Department,
		EmploymentType: e.EmploymentType,
		Role:           e.Role,
		IsManager:      e.IsManager,
		Position:       e.Position,
		Salary:         e.Salary,
		SalaryType:     e.SalaryType,
		PaymentMethod:  e.PaymentMethod,
		OfferLetter:    e.OfferLetter,
		Address:        e.Address,
		Status:         e.Status,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
	if e.ReportingManager != nil {
		resp.ReportingManagerID = &e.ReportingManager.EmployeeID
		resp.ReportingManagerName = &e.ReportingManager.Name
	}
	if e.JoiningDate != nil {
		d := time.Time(*e.JoiningDate).Format(dateLayout)
		resp.JoiningDate = &d
	}
	return resp
}

func EmployeesToResponse(emps []db.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(emps))
	for i := range emps {
		out = append(out, EmployeeToResponse(&emps[i]))
	}
	return out
}
