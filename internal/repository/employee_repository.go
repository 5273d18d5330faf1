package repository

import (
	"gorm.io/gorm"

	"github.com/blurrhq/hr-portal-api/internal/models"
)

// GormEmployeeRepository is a GORM implementation of EmployeeRepository
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Create creates a new employee
func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(id uint64) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByCode finds an employee by its code within an organization
func (r *GormEmployeeRepository) FindByCode(organizationID uint64, code string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("organization_id = ? AND code = ?", organizationID, code).
		First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// List lists all employees of an organization
func (r *GormEmployeeRepository) List(organizationID uint64) ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Update updates an employee
func (r *GormEmployeeRepository) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}

// Delete removes an employee and detaches its task assignments. Salary rows
// stay untouched: pay history outlives the employee record.
func (r *GormEmployeeRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Employee{}, id).Error
	})
}

// CountByIDs counts how many of the given employee IDs exist in the organization
func (r *GormEmployeeRepository) CountByIDs(employeeIDs []uint64, organizationID uint64) (int64, error) {
	var count int64

	err := r.db.Model(&models.Employee{}).
		Where("organization_id = ? AND id IN ?", organizationID, employeeIDs).
		Count(&count).Error

	return count, err
}
