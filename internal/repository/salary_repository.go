package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/blurrhq/hr-portal-api/internal/models"
)

// GormSalaryRepository is a GORM implementation of SalaryRepository
type GormSalaryRepository struct {
	db *gorm.DB
}

// NewSalaryRepository creates a new SalaryRepository
func NewSalaryRepository(db *gorm.DB) SalaryRepository {
	return &GormSalaryRepository{db: db}
}

// FindByEmployeeAndMonth finds the salary record in the inclusive month range
func (r *GormSalaryRepository) FindByEmployeeAndMonth(employeeID uint64, from, to time.Time) (*models.Salary, error) {
	var salary models.Salary
	if err := r.db.Where("employee_id = ? AND month >= ? AND month <= ?", employeeID, from, to).
		First(&salary).Error; err != nil {
		return nil, err
	}
	return &salary, nil
}

// Upsert inserts the record or overwrites the existing row for the same
// employee and month. The conflict target is the composite unique index, so
// two concurrent writes for the same month cannot both insert; the loser of
// the race turns into an update of the winner's row.
func (r *GormSalaryRepository) Upsert(salary *models.Salary) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"basic_salary", "bonus", "deduction", "total_amount", "updated_at",
			}),
		}).
		Create(salary).Error
}

// ListByMonth lists an organization's salary records for the month range
func (r *GormSalaryRepository) ListByMonth(organizationID uint64, from, to time.Time) ([]models.Salary, error) {
	var salaries []models.Salary
	if err := r.db.
		Joins("JOIN employees ON employees.id = salaries.employee_id").
		Where("employees.organization_id = ?", organizationID).
		Where("salaries.month >= ? AND salaries.month <= ?", from, to).
		Order("employees.name ASC").
		Preload("Employee").
		Find(&salaries).Error; err != nil {
		return nil, err
	}
	return salaries, nil
}

// FindByID finds a salary record by ID
func (r *GormSalaryRepository) FindByID(id uint64) (*models.Salary, error) {
	var salary models.Salary
	if err := r.db.Preload("Employee").First(&salary, id).Error; err != nil {
		return nil, err
	}
	return &salary, nil
}
