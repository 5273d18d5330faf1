package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/blurrhq/hr-portal-api/internal/config"
	"github.com/blurrhq/hr-portal-api/internal/models"
	"github.com/blurrhq/hr-portal-api/internal/repository"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectNameRequired = errors.New("project name is required")
	ErrProjectOrgNotFound  = errors.New("organization not found")
	ErrProjectHasTasks     = errors.New("project still has tasks")
)

// projectPreloads loads a project's tasks with their resolved assignees.
var projectPreloads = []string{"Tasks", "Tasks.Assignments", "Tasks.Assignments.Employee"}

// ProjectService provides business logic for project operations. The delete
// policy decides whether removing a project cascades to its tasks or is
// refused while tasks remain.
type ProjectService struct {
	projectRepo  repository.ProjectRepository
	orgRepo      repository.OrganizationRepository
	deletePolicy config.ProjectDeletePolicy
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, orgRepo repository.OrganizationRepository, deletePolicy config.ProjectDeletePolicy) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		orgRepo:      orgRepo,
		deletePolicy: deletePolicy,
	}
}

// ProjectInput represents parameters to create or update a project.
type ProjectInput struct {
	Name           string
	Description    string
	OrganizationID uint64
}

// CreateProject creates a new project.
func (s *ProjectService) CreateProject(input ProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrProjectNameRequired
	}

	if _, err := s.orgRepo.FindByID(input.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectOrgNotFound
		}
		return nil, fmt.Errorf("failed to verify organization: %w", err)
	}

	project := &models.Project{
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		OrganizationID: input.OrganizationID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// UpdateProject updates a project's name and description.
func (s *ProjectService) UpdateProject(id uint64, input ProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrProjectNameRequired
	}

	project.Name = strings.TrimSpace(input.Name)
	project.Description = input.Description

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes a project according to the configured policy.
func (s *ProjectService) DeleteProject(id uint64) error {
	if _, err := s.projectRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if s.deletePolicy == config.ProjectDeleteRestrict {
		count, err := s.projectRepo.CountTasks(id)
		if err != nil {
			return fmt.Errorf("failed to count project tasks: %w", err)
		}
		if count > 0 {
			return ErrProjectHasTasks
		}
	}

	if err := s.projectRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// GetProject returns a project with its tasks and assignees.
func (s *ProjectService) GetProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, projectPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ListProjects returns all projects of an organization, newest first.
func (s *ProjectService) ListProjects(organizationID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.List(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}
