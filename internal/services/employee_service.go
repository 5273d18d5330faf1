package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/blurrhq/hr-portal-api/internal/models"
	"github.com/blurrhq/hr-portal-api/internal/repository"
)

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmployeeCodeRequired   = errors.New("employee ID is required")
	ErrEmployeeNameRequired   = errors.New("employee name is required")
	ErrEmployeeCodeTaken      = errors.New("an employee with this ID already exists")
	ErrEmployeeOrgNotFound    = errors.New("organization not found")
	ErrEmployeeNegativeSalary = errors.New("basic salary must be positive")
)

// EmployeeService provides business logic for employee records.
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	orgRepo      repository.OrganizationRepository
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo repository.EmployeeRepository, orgRepo repository.OrganizationRepository) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		orgRepo:      orgRepo,
	}
}

// EmployeeInput represents parameters to create or update an employee.
type EmployeeInput struct {
	Code           string
	Name           string
	JoiningDate    time.Time
	BasicSalary    float64
	OrganizationID uint64
}

// CreateEmployee creates a new employee after checking the human-readable
// code is free within the organization. The unique index backs the check up.
func (s *EmployeeService) CreateEmployee(input EmployeeInput) (*models.Employee, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	if _, err := s.orgRepo.FindByID(input.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeOrgNotFound
		}
		return nil, fmt.Errorf("failed to verify organization: %w", err)
	}

	if _, err := s.employeeRepo.FindByCode(input.OrganizationID, input.Code); err == nil {
		return nil, ErrEmployeeCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check employee code: %w", err)
	}

	employee := &models.Employee{
		Code:           input.Code,
		Name:           input.Name,
		JoiningDate:    input.JoiningDate,
		BasicSalary:    input.BasicSalary,
		OrganizationID: input.OrganizationID,
	}

	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee, nil
}

// UpdateEmployee overwrites an employee's fields.
func (s *EmployeeService) UpdateEmployee(id uint64, input EmployeeInput) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	if input.Code != employee.Code {
		if other, err := s.employeeRepo.FindByCode(employee.OrganizationID, input.Code); err == nil && other.ID != id {
			return nil, ErrEmployeeCodeTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check employee code: %w", err)
		}
	}

	employee.Code = input.Code
	employee.Name = input.Name
	employee.JoiningDate = input.JoiningDate
	employee.BasicSalary = input.BasicSalary

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	return employee, nil
}

// DeleteEmployee removes an employee. Task assignments are detached in the
// same transaction; salary history stays.
func (s *EmployeeService) DeleteEmployee(id uint64) error {
	if _, err := s.employeeRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to find employee: %w", err)
	}

	if err := s.employeeRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

// GetEmployee returns an employee by ID.
func (s *EmployeeService) GetEmployee(id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}

// ListEmployees returns all employees of an organization, newest first.
func (s *EmployeeService) ListEmployees(organizationID uint64) ([]models.Employee, error) {
	employees, err := s.employeeRepo.List(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (s *EmployeeService) validateInput(input *EmployeeInput) error {
	input.Code = strings.TrimSpace(input.Code)
	input.Name = strings.TrimSpace(input.Name)

	if input.Code == "" {
		return ErrEmployeeCodeRequired
	}
	if input.Name == "" {
		return ErrEmployeeNameRequired
	}
	if input.BasicSalary < 0 {
		return ErrEmployeeNegativeSalary
	}

	return nil
}
