package dto

import (
	"time"

	"github.com/blurrhq/hr-portal-api/internal/models"
)

// ProjectRefDTO is the minimal project reference embedded in task responses
type ProjectRefDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// TaskDTO represents a task in API responses with its resolved assignees
type TaskDTO struct {
	ID                uint64              `json:"id"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Priority          models.TaskPriority `json:"priority"`
	Status            models.TaskStatus   `json:"status"`
	ProjectID         uint64              `json:"project_id"`
	StartDate         *time.Time          `json:"start_date"`
	DueDate           *time.Time          `json:"due_date"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	Project           *ProjectRefDTO      `json:"project,omitempty"`
	AssignedEmployees []EmployeeDTO       `json:"assigned_employees"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO `json:"tasks"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
}

// ProjectDTO represents a project with its tasks in API responses
type ProjectDTO struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	OrganizationID uint64    `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
	Tasks          []TaskDTO `json:"tasks,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO, flattening assignment rows
// into the assignee employee objects.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                task.ID,
		Title:             task.Title,
		Description:       task.Description,
		Priority:          task.Priority,
		Status:            task.Status,
		ProjectID:         task.ProjectID,
		StartDate:         task.StartDate,
		DueDate:           task.DueDate,
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
		AssignedEmployees: make([]EmployeeDTO, 0, len(task.Assignments)),
	}

	if task.Project.ID != 0 {
		dto.Project = &ProjectRefDTO{
			ID:   task.Project.ID,
			Name: task.Project.Name,
		}
	}

	for _, assignment := range task.Assignments {
		if assignment.Employee.ID != 0 {
			dto.AssignedEmployees = append(dto.AssignedEmployees, ToEmployeeDTO(assignment.Employee))
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:             project.ID,
		Name:           project.Name,
		Description:    project.Description,
		OrganizationID: project.OrganizationID,
		CreatedAt:      project.CreatedAt,
		Tasks:          ToTaskDTOs(project.Tasks),
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}
