package services

import (
	"fmt"
	"strings"

	"github.com/blurrhq/hr-portal-api/internal/constants"
	"github.com/blurrhq/hr-portal-api/internal/models"
	"github.com/blurrhq/hr-portal-api/internal/repository"
)

// ChatService answers canned questions about tasks and projects through
// keyword matching over the most recent records. It holds no conversation
// state.
type ChatService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewChatService creates a new ChatService.
func NewChatService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *ChatService {
	return &ChatService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

const chatHelpText = `I can help you with the following:
1. Task Information:
   - "Show my tasks"
   - "What are my pending tasks?"
   - "Show tasks in progress"
   - "What tasks are done?"

2. Project Information:
   - "Show my projects"
   - "What are my active projects?"
   - "List all projects"

Just ask me about your tasks or projects in natural language!`

const chatFallbackText = "I can help you with information about your tasks and projects. " +
	"Try asking about your recent tasks or projects, or type 'help' to see what I can do!"

// Respond produces a reply to a chat message.
func (s *ChatService) Respond(message string) (string, error) {
	lower := strings.ToLower(message)

	if strings.Contains(lower, "task") {
		return s.respondTasks(lower)
	}

	if strings.Contains(lower, "project") {
		return s.respondProjects(lower)
	}

	if strings.Contains(lower, "help") || strings.Contains(lower, "what can you do") {
		return chatHelpText, nil
	}

	return chatFallbackText, nil
}

func (s *ChatService) respondTasks(lower string) (string, error) {
	tasks, err := s.taskRepo.ListRecent(constants.ChatRecentLimit)
	if err != nil {
		return "", fmt.Errorf("failed to load recent tasks: %w", err)
	}

	if len(tasks) == 0 {
		return "You don't have any tasks yet. Would you like to create one?", nil
	}

	if strings.Contains(lower, "todo") || strings.Contains(lower, "pending") {
		return statusReply(tasks, models.TaskStatusTodo,
			"Here are your pending tasks:", "You don't have any pending tasks!"), nil
	}

	if strings.Contains(lower, "progress") || strings.Contains(lower, "working") {
		return statusReply(tasks, models.TaskStatusInProgress,
			"Here are your in-progress tasks:", "You don't have any tasks in progress!"), nil
	}

	if strings.Contains(lower, "done") || strings.Contains(lower, "completed") {
		return statusReply(tasks, models.TaskStatusDone,
			"Here are your completed tasks:", "You haven't completed any tasks yet!"), nil
	}

	lines := make([]string, 0, len(tasks)+1)
	lines = append(lines, "Here are your recent tasks:")
	for _, task := range tasks {
		lines = append(lines, fmt.Sprintf("- %s (%s) - Project: %s", task.Title, task.Status, task.Project.Name))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *ChatService) respondProjects(lower string) (string, error) {
	projects, err := s.projectRepo.ListRecent(constants.ChatRecentLimit)
	if err != nil {
		return "", fmt.Errorf("failed to load recent projects: %w", err)
	}

	if len(projects) == 0 {
		return "You don't have any projects yet. Would you like to create one?", nil
	}

	if strings.Contains(lower, "active") || strings.Contains(lower, "ongoing") {
		active := make([]models.Project, 0, len(projects))
		for _, project := range projects {
			for _, task := range project.Tasks {
				if task.Status != models.TaskStatusDone {
					active = append(active, project)
					break
				}
			}
		}

		if len(active) == 0 {
			return "You don't have any active projects!", nil
		}

		lines := make([]string, 0, len(active)+1)
		lines = append(lines, "Here are your active projects:")
		for _, project := range active {
			lines = append(lines, fmt.Sprintf("- %s (%d tasks)", project.Name, len(project.Tasks)))
		}
		return strings.Join(lines, "\n"), nil
	}

	lines := make([]string, 0, len(projects)+1)
	lines = append(lines, "Here are your recent projects:")
	for _, project := range projects {
		lines = append(lines, fmt.Sprintf("- %s (%d tasks)", project.Name, len(project.Tasks)))
	}
	return strings.Join(lines, "\n"), nil
}

func statusReply(tasks []models.Task, status models.TaskStatus, header, empty string) string {
	matched := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status == status {
			matched = append(matched, task)
		}
	}

	if len(matched) == 0 {
		return empty
	}

	lines := make([]string, 0, len(matched)+1)
	lines = append(lines, header)
	for _, task := range matched {
		lines = append(lines, fmt.Sprintf("- %s (Project: %s)", task.Title, task.Project.Name))
	}
	return strings.Join(lines, "\n")
}
