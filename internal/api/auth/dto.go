package auth

import (
	"github.com/codeedex/hr-office/internal/db"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Response DTOs

type LoginResponse struct {
	Token    string       `json:"token"`
	Employee LoginProfile `json:"employee"`
}

type LoginProfile struct {
	EmployeeID     string `json:"employeeId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	EmploymentType string `json:"employmentType"`
	Department     string `json:"department"`
}

func ProfileOf(e *db.Employee) LoginProfile {
	return LoginProfile{
		EmployeeID:     e.EmployeeID,
		Name:           e.Name,
		Email:          e.Email,
		Role:           e.Role,
		EmploymentType: e.EmploymentType,
		Department:     e.Department,
	}
}
