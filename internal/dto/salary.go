package dto

import (
	"time"

	"github.com/blurrhq/hr-portal-api/internal/models"
	"github.com/blurrhq/hr-portal-api/internal/services"
)

// SalaryDTO represents a monthly salary record in API responses
type SalaryDTO struct {
	ID          uint64       `json:"id"`
	EmployeeID  uint64       `json:"employee_id"`
	Month       time.Time    `json:"month"`
	BasicSalary float64      `json:"basic_salary"`
	Bonus       float64      `json:"bonus"`
	Deduction   float64      `json:"deduction"`
	TotalAmount float64      `json:"total_amount"`
	Employee    *EmployeeDTO `json:"employee,omitempty"`
}

// ReconcileResultDTO is one entry in a batch reconciliation response
type ReconcileResultDTO struct {
	EmployeeID uint64     `json:"employee_id"`
	Success    bool       `json:"success"`
	Salary     *SalaryDTO `json:"salary,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// ToSalaryDTO converts a Salary model to SalaryDTO
func ToSalaryDTO(salary models.Salary) SalaryDTO {
	dto := SalaryDTO{
		ID:          salary.ID,
		EmployeeID:  salary.EmployeeID,
		Month:       salary.Month,
		BasicSalary: salary.BasicSalary,
		Bonus:       salary.Bonus,
		Deduction:   salary.Deduction,
		TotalAmount: salary.TotalAmount,
	}

	if salary.Employee.ID != 0 {
		employee := ToEmployeeDTO(salary.Employee)
		dto.Employee = &employee
	}

	return dto
}

// ToSalaryDTOs converts a slice of salary records
func ToSalaryDTOs(salaries []models.Salary) []SalaryDTO {
	dtos := make([]SalaryDTO, len(salaries))
	for i, salary := range salaries {
		dtos[i] = ToSalaryDTO(salary)
	}
	return dtos
}

// ToReconcileResultDTOs converts batch reconciliation outcomes
func ToReconcileResultDTOs(results []services.ReconcileResult) []ReconcileResultDTO {
	dtos := make([]ReconcileResultDTO, len(results))
	for i, result := range results {
		dtos[i] = ReconcileResultDTO{
			EmployeeID: result.EmployeeID,
			Success:    result.Err == nil,
		}
		if result.Salary != nil {
			salary := ToSalaryDTO(*result.Salary)
			dtos[i].Salary = &salary
		}
		if result.Err != nil {
			dtos[i].Error = result.Err.Error()
		}
	}
	return dtos
}
