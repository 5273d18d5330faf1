package dto

import (
	"time"

	"github.com/blurrhq/hr-portal-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID             uint64     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	EmailVerified  *time.Time `json:"email_verified"`
	OrganizationID *uint64    `json:"organization_id"`
}

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// EmployeeDTO represents an employee in API responses
type EmployeeDTO struct {
	ID             uint64    `json:"id"`
	Code           string    `json:"employee_id"`
	Name           string    `json:"name"`
	JoiningDate    time.Time `json:"joining_date"`
	BasicSalary    float64   `json:"basic_salary"`
	OrganizationID uint64    `json:"organization_id"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		EmailVerified:  user.EmailVerified,
		OrganizationID: user.OrganizationID,
	}
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:   org.ID,
		Name: org.Name,
	}
}

// ToEmployeeDTO converts an Employee model to EmployeeDTO
func ToEmployeeDTO(employee models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:             employee.ID,
		Code:           employee.Code,
		Name:           employee.Name,
		JoiningDate:    employee.JoiningDate,
		BasicSalary:    employee.BasicSalary,
		OrganizationID: employee.OrganizationID,
	}
}

// ToEmployeeDTOs converts a slice of employees
func ToEmployeeDTOs(employees []models.Employee) []EmployeeDTO {
	dtos := make([]EmployeeDTO, len(employees))
	for i, employee := range employees {
		dtos[i] = ToEmployeeDTO(employee)
	}
	return dtos
}
