package repository

import (
	"time"

	"github.com/blurrhq/hr-portal-api/internal/models"
)

// SalaryRepository defines the interface for salary data access
type SalaryRepository interface {
	// FindByEmployeeAndMonth finds the salary record whose month falls in
	// the inclusive [from, to] range for an employee
	FindByEmployeeAndMonth(employeeID uint64, from, to time.Time) (*models.Salary, error)

	// Upsert atomically inserts the record or, when a row for the same
	// employee and month already exists, overwrites it in place
	Upsert(salary *models.Salary) error

	// ListByMonth lists salary records of an organization's employees for
	// the inclusive [from, to] month range, ordered by employee name
	ListByMonth(organizationID uint64, from, to time.Time) ([]models.Salary, error)

	// FindByID finds a salary record by ID
	FindByID(id uint64) (*models.Salary, error)
}

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	// Create creates a new employee
	Create(employee *models.Employee) error

	// FindByID finds an employee by ID
	FindByID(id uint64) (*models.Employee, error)

	// FindByCode finds an employee by its human-readable code within an organization
	FindByCode(organizationID uint64, code string) (*models.Employee, error)

	// List lists all employees of an organization, newest first
	List(organizationID uint64) ([]models.Employee, error)

	// Update updates an employee
	Update(employee *models.Employee) error

	// Delete removes an employee and detaches its task assignments;
	// salary history is kept
	Delete(id uint64) error

	// CountByIDs counts how many of the given employee IDs exist in the organization
	CountByIDs(employeeIDs []uint64, organizationID uint64) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID *uint64
	Status    *models.TaskStatus
	Page      int
	PageSize  int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a task with its assignee set equal to exactly
	// employeeIDs, in one transaction
	Create(task *models.Task, employeeIDs []uint64) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListRecent returns the most recently created tasks across all projects
	ListRecent(limit int) ([]models.Task, error)

	// Update overwrites a task and replaces its assignee set with exactly
	// employeeIDs, dropping rows not in the list and adding missing ones,
	// in one transaction
	Update(task *models.Task, employeeIDs []uint64) error

	// UpdateStatus mutates only a task's status column
	UpdateStatus(id uint64, status models.TaskStatus) error

	// Delete soft deletes a task and its assignment rows
	Delete(id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List lists all projects of an organization, newest first
	List(organizationID uint64) ([]models.Project, error)

	// ListRecent returns the most recently created projects with their tasks
	ListRecent(limit int) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// CountTasks counts the live tasks belonging to a project
	CountTasks(projectID uint64) (int64, error)

	// Delete removes a project, its tasks, and their assignment rows
	// in a single transaction
	Delete(id uint64) error
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// Create creates a new organization
	Create(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// FindByName finds an organization by its unique name
	FindByName(name string) (*models.Organization, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByVerificationToken finds a user holding the given verification token
	FindByVerificationToken(token string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error
}
