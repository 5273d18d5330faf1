package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/blurrhq/hr-portal-api/internal/models"
	"github.com/blurrhq/hr-portal-api/internal/repository"
)

var (
	ErrSalaryEmployeeNotFound = errors.New("employee not found")
	ErrNegativeBasicSalary    = errors.New("basic salary must be positive")
	ErrNegativeBonus          = errors.New("bonus must be positive")
	ErrNegativeDeduction      = errors.New("deduction must be positive")
	ErrSalaryNotFound         = errors.New("salary record not found")
)

// SalaryService maintains the monthly salary ledger: one authoritative
// record per employee and calendar month, with the total always derived
// from the components.
type SalaryService struct {
	salaryRepo   repository.SalaryRepository
	employeeRepo repository.EmployeeRepository
}

// NewSalaryService creates a new SalaryService
func NewSalaryService(salaryRepo repository.SalaryRepository, employeeRepo repository.EmployeeRepository) *SalaryService {
	return &SalaryService{
		salaryRepo:   salaryRepo,
		employeeRepo: employeeRepo,
	}
}

// ReconcileInput represents one employee's pay components for a month.
// Month may be any point in time; only its calendar month is used.
type ReconcileInput struct {
	EmployeeID  uint64
	Month       time.Time
	BasicSalary float64
	Bonus       float64
	Deduction   float64
}

// ReconcileResult is the outcome of one entry in a batch reconciliation.
type ReconcileResult struct {
	EmployeeID uint64
	Salary     *models.Salary
	Err        error
}

// Reconcile ensures exactly one persisted salary record for the employee's
// calendar month. The write is an atomic insert-or-overwrite keyed on
// (employee_id, month), so a concurrent reconciliation for the same month
// can never produce a second row. The total is recomputed here on every
// call and never trusted from the caller.
func (s *SalaryService) Reconcile(input ReconcileInput) (*models.Salary, error) {
	if input.BasicSalary < 0 {
		return nil, ErrNegativeBasicSalary
	}
	if input.Bonus < 0 {
		return nil, ErrNegativeBonus
	}
	if input.Deduction < 0 {
		return nil, ErrNegativeDeduction
	}

	if _, err := s.employeeRepo.FindByID(input.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSalaryEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	monthStart := models.MonthStart(input.Month)

	salary := &models.Salary{
		EmployeeID:  input.EmployeeID,
		Month:       monthStart,
		BasicSalary: input.BasicSalary,
		Bonus:       input.Bonus,
		Deduction:   input.Deduction,
		// No floor at zero: a deduction larger than pay must round-trip
		// exactly as entered.
		TotalAmount: input.BasicSalary + input.Bonus - input.Deduction,
	}

	if err := s.salaryRepo.Upsert(salary); err != nil {
		return nil, fmt.Errorf("failed to reconcile salary: %w", err)
	}

	// Re-read by month range so the caller always sees the persisted row,
	// including the original id when an existing record was overwritten.
	persisted, err := s.salaryRepo.FindByEmployeeAndMonth(input.EmployeeID, monthStart, models.MonthEnd(input.Month))
	if err != nil {
		return nil, fmt.Errorf("failed to load reconciled salary: %w", err)
	}

	return persisted, nil
}

// ReconcileBatch reconciles each entry sequentially. A failure on one
// employee does not roll back or stop the others; every entry gets its
// own result.
func (s *SalaryService) ReconcileBatch(inputs []ReconcileInput) []ReconcileResult {
	results := make([]ReconcileResult, 0, len(inputs))

	for _, input := range inputs {
		salary, err := s.Reconcile(input)
		results = append(results, ReconcileResult{
			EmployeeID: input.EmployeeID,
			Salary:     salary,
			Err:        err,
		})
	}

	return results
}

// ListMonth returns an organization's salary records for the given calendar
// month, ordered by employee name.
func (s *SalaryService) ListMonth(organizationID uint64, month time.Time) ([]models.Salary, error) {
	salaries, err := s.salaryRepo.ListByMonth(organizationID, models.MonthStart(month), models.MonthEnd(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	return salaries, nil
}

// Get returns a single salary record with its employee.
func (s *SalaryService) Get(id uint64) (*models.Salary, error) {
	salary, err := s.salaryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSalaryNotFound
		}
		return nil, fmt.Errorf("failed to find salary: %w", err)
	}
	return salary, nil
}
