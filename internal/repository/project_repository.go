package repository

import (
	"gorm.io/gorm"

	"github.com/blurrhq/hr-portal-api/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// List lists all projects of an organization
func (r *GormProjectRepository) List(organizationID uint64) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Preload("Tasks").
		Preload("Tasks.Assignments").
		Preload("Tasks.Assignments.Employee").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListRecent returns the most recently created projects with their tasks
func (r *GormProjectRepository) ListRecent(limit int) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Preload("Tasks").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// CountTasks counts the live tasks belonging to a project
func (r *GormProjectRepository) CountTasks(projectID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

// Delete removes a project and all related data in a transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Detach assignments of the project's tasks first
		var taskIDs []uint64
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", id).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskAssignment{}).Error; err != nil {
				return err
			}

			if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}
