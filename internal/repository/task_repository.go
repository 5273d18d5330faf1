package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/blurrhq/hr-portal-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a task together with its assignment rows. Both writes run
// in one transaction so a failed assignment insert leaves no task behind.
func (r *GormTaskRepository) Create(task *models.Task, employeeIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}

		return replaceAssignees(tx, task.ID, employeeIDs)
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.
		Preload("Assignments").
		Preload("Assignments.Employee").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListRecent returns the most recently created tasks with their projects
func (r *GormTaskRepository) ListRecent(limit int) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Preload("Project").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update overwrites a task and replaces its assignee set in one
// transaction; if either write fails the task keeps its prior state.
func (r *GormTaskRepository) Update(task *models.Task, employeeIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}

		return replaceAssignees(tx, task.ID, employeeIDs)
	})
}

// UpdateStatus mutates only the status column
func (r *GormTaskRepository) UpdateStatus(id uint64, status models.TaskStatus) error {
	result := r.db.Model(&models.Task{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft deletes a task and its assignment rows
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// replaceAssignees makes the task's assignee set exactly employeeIDs. All
// existing rows are soft deleted first, then the new set is written back;
// rows that survive the replacement are resurrected through the conflict
// clause so the composite primary key never collides. Runs on the caller's
// transaction.
func replaceAssignees(tx *gorm.DB, taskID uint64, employeeIDs []uint64) error {
	if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskAssignment{}).Error; err != nil {
		return err
	}

	if len(employeeIDs) == 0 {
		return nil
	}

	assignments := make([]models.TaskAssignment, len(employeeIDs))
	for i, employeeID := range employeeIDs {
		assignments[i] = models.TaskAssignment{
			TaskID:     taskID,
			EmployeeID: employeeID,
		}
	}

	return tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "employee_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"deleted_at": gorm.Expr("NULL")}),
		}).
		Create(&assignments).Error
}
