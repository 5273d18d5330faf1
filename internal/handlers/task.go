package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blurrhq/hr-portal-api/internal/dto"
	apierrors "github.com/blurrhq/hr-portal-api/internal/errors"
	"github.com/blurrhq/hr-portal-api/internal/middleware"
	"github.com/blurrhq/hr-portal-api/internal/models"
	"github.com/blurrhq/hr-portal-api/internal/services"
	"github.com/blurrhq/hr-portal-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// TaskRequest is the full task payload submitted on create and update.
// Assigned employees always carry the complete desired set, not a delta.
type TaskRequest struct {
	Title               string     `json:"title" binding:"required"`
	Description         string     `json:"description"`
	Priority            string     `json:"priority"`
	Status              string     `json:"status"`
	ProjectID           uint64     `json:"project_id" binding:"required"`
	AssignedEmployeeIDs []uint64   `json:"assigned_employee_ids"`
	StartDate           *time.Time `json:"start_date"`
	DueDate             *time.Time `json:"due_date"`
}

func (r TaskRequest) toInput() services.TaskInput {
	return services.TaskInput{
		Title:               r.Title,
		Description:         r.Description,
		Priority:            models.TaskPriority(r.Priority),
		Status:              models.TaskStatus(r.Status),
		ProjectID:           r.ProjectID,
		AssignedEmployeeIDs: r.AssignedEmployeeIDs,
		StartDate:           r.StartDate,
		DueDate:             r.DueDate,
	}
}

// ListTasks returns tasks, optionally filtered by project and status
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if projectIDStr := c.Query("project_id"); projectIDStr != "" {
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id")
			return
		}
		input.ProjectID = &projectID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		input.Status = &status
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks:      dto.ToTaskDTOs(tasks),
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: total,
	})
}

// GetTask returns the task loaded by the LoadTask middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask creates a new task with its full assignee set
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(req.toInput())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask overwrites a task. The task id travels in the body, and the
// assignee list replaces the previous set entirely.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		ID uint64 `json:"id" binding:"required"`
		TaskRequest
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(req.ID, req.toInput())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTaskStatus mutates only the status (kanban drag)
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	loaded, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTaskStatus(loaded.ID, models.TaskStatus(req.Status))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task and its assignment rows
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTaskProjectNotFound):
		apierrors.BadRequest(c, "Project not found")
	case errors.Is(err, services.ErrTaskTitleRequired):
		apierrors.BadRequest(c, "Task title is required")
	case errors.Is(err, services.ErrDueBeforeStart):
		apierrors.BadRequest(c, "Due date cannot be before start date")
	case errors.Is(err, services.ErrInvalidTaskStatus):
		apierrors.BadRequest(c, "Invalid task status")
	case errors.Is(err, services.ErrInvalidTaskPriority):
		apierrors.BadRequest(c, "Invalid task priority")
	case errors.Is(err, services.ErrUnknownAssignee):
		apierrors.BadRequest(c, "One or more assigned employees do not exist")
	default:
		apierrors.InternalError(c, "")
	}
}
