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
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskTitleRequired   = errors.New("task title is required")
	ErrTaskProjectNotFound = errors.New("project not found")
	ErrDueBeforeStart      = errors.New("due date cannot be before start date")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
	ErrUnknownAssignee     = errors.New("one or more assigned employees do not belong to the project's organization")
)

// taskPreloads loads everything a task response needs.
var taskPreloads = []string{"Project", "Assignments", "Assignments.Employee"}

// TaskService handles task business logic, including the full-replace
// assignment semantics: every write carries the complete desired assignee
// set, never a delta.
type TaskService struct {
	taskRepo     repository.TaskRepository
	projectRepo  repository.ProjectRepository
	employeeRepo repository.EmployeeRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, employeeRepo repository.EmployeeRepository) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		projectRepo:  projectRepo,
		employeeRepo: employeeRepo,
	}
}

// TaskInput represents the full field set for creating or updating a task.
// Updates submit the same shape as creates and are validated identically.
type TaskInput struct {
	Title               string
	Description         string
	Priority            models.TaskPriority
	Status              models.TaskStatus
	ProjectID           uint64
	AssignedEmployeeIDs []uint64
	StartDate           *time.Time
	DueDate             *time.Time
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	ProjectID *uint64
	Status    *models.TaskStatus
	Page      int
	PageSize  int
}

// ListTasks returns tasks matching the provided filters
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		ProjectID: input.ProjectID,
		Status:    input.Status,
		Page:      input.Page,
		PageSize:  input.PageSize,
	}

	if input.Status != nil && !models.ValidTaskStatus(*input.Status) {
		return nil, 0, ErrInvalidTaskStatus
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with its project and resolved assignees
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask creates a task with its assignee set equal to exactly the
// deduplicated input list.
func (s *TaskService) CreateTask(input TaskInput) (*models.Task, error) {
	normalized, project, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       normalized.Title,
		Description: normalized.Description,
		Priority:    normalized.Priority,
		Status:      normalized.Status,
		ProjectID:   project.ID,
		StartDate:   normalized.StartDate,
		DueDate:     normalized.DueDate,
	}

	if err := s.taskRepo.Create(task, normalized.AssignedEmployeeIDs); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// UpdateTask re-validates the full input and overwrites the task, replacing
// the whole assignee set: employees missing from the new list are dropped,
// new ones are added, and an empty list clears the set.
func (s *TaskService) UpdateTask(taskID uint64, input TaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	normalized, project, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	task.Title = normalized.Title
	task.Description = normalized.Description
	task.Priority = normalized.Priority
	task.Status = normalized.Status
	task.ProjectID = project.ID
	task.StartDate = normalized.StartDate
	task.DueDate = normalized.DueDate

	if err := s.taskRepo.Update(task, normalized.AssignedEmployeeIDs); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// UpdateTaskStatus mutates only the status, as the kanban drag operation
// does. Any status may be set from any other one; the board is not a
// workflow engine.
func (s *TaskService) UpdateTaskStatus(taskID uint64, status models.TaskStatus) (*models.Task, error) {
	if !models.ValidTaskStatus(status) {
		return nil, ErrInvalidTaskStatus
	}

	if err := s.taskRepo.UpdateStatus(taskID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return s.taskRepo.FindByID(taskID, taskPreloads...)
}

// DeleteTask removes a task together with its assignment rows
func (s *TaskService) DeleteTask(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// validateInput normalizes and validates the full task field set shared by
// create and update. Assignee ids are deduplicated and must all reference
// employees of the project's organization.
func (s *TaskService) validateInput(input TaskInput) (TaskInput, *models.Project, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return input, nil, ErrTaskTitleRequired
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !models.ValidTaskPriority(input.Priority) {
		return input, nil, ErrInvalidTaskPriority
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !models.ValidTaskStatus(input.Status) {
		return input, nil, ErrInvalidTaskStatus
	}

	if input.StartDate != nil && input.DueDate != nil && input.DueDate.Before(*input.StartDate) {
		return input, nil, ErrDueBeforeStart
	}

	project, err := s.projectRepo.FindByID(input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return input, nil, ErrTaskProjectNotFound
		}
		return input, nil, fmt.Errorf("failed to find project: %w", err)
	}

	input.AssignedEmployeeIDs = uniqueUint64(input.AssignedEmployeeIDs)

	if len(input.AssignedEmployeeIDs) > 0 {
		count, err := s.employeeRepo.CountByIDs(input.AssignedEmployeeIDs, project.OrganizationID)
		if err != nil {
			return input, nil, fmt.Errorf("failed to verify assignees: %w", err)
		}
		if int(count) != len(input.AssignedEmployeeIDs) {
			return input, nil, ErrUnknownAssignee
		}
	}

	return input, project, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
