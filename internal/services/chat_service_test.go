package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/blurrhq/hr-portal-api/internal/models"
	"github.com/blurrhq/hr-portal-api/internal/repository"
)

func newChatFixture(t *testing.T) (*gorm.DB, *ChatService, *models.Project) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Employee{},
		&models.Project{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.Salary{},
	))

	org := &models.Organization{Name: "Blurr"}
	require.NoError(t, db.Create(org).Error)

	project := &models.Project{Name: "Website Redesign", OrganizationID: org.ID}
	require.NoError(t, db.Create(project).Error)

	service := NewChatService(
		repository.NewTaskRepository(db),
		repository.NewProjectRepository(db),
	)
	return db, service, project
}

func seedChatTask(t *testing.T, db *gorm.DB, projectID uint64, title string, status models.TaskStatus) {
	t.Helper()
	require.NoError(t, db.Create(&models.Task{
		Title:     title,
		Status:    status,
		Priority:  models.TaskPriorityMedium,
		ProjectID: projectID,
	}).Error)
}

func TestChatRespond_Help(t *testing.T) {
	_, service, _ := newChatFixture(t)

	reply, err := service.Respond("What can you do? HELP me")
	require.NoError(t, err)
	require.Contains(t, reply, "I can help you with the following")
	require.Contains(t, reply, "Task Information")
	require.Contains(t, reply, "Project Information")
}

func TestChatRespond_Fallback(t *testing.T) {
	_, service, _ := newChatFixture(t)

	reply, err := service.Respond("what is the weather like")
	require.NoError(t, err)
	require.Contains(t, reply, "Try asking about your recent tasks or projects")
}

func TestChatRespond_TasksEmpty(t *testing.T) {
	_, service, _ := newChatFixture(t)

	reply, err := service.Respond("show my tasks")
	require.NoError(t, err)
	require.Equal(t, "You don't have any tasks yet. Would you like to create one?", reply)
}

func TestChatRespond_TasksByStatus(t *testing.T) {
	db, service, project := newChatFixture(t)

	seedChatTask(t, db, project.ID, "Write copy", models.TaskStatusTodo)
	seedChatTask(t, db, project.ID, "Build header", models.TaskStatusInProgress)
	seedChatTask(t, db, project.ID, "Pick palette", models.TaskStatusDone)

	reply, err := service.Respond("what are my pending tasks?")
	require.NoError(t, err)
	require.Contains(t, reply, "Here are your pending tasks:")
	require.Contains(t, reply, "- Write copy (Project: Website Redesign)")
	require.NotContains(t, reply, "Build header")

	reply, err = service.Respond("what tasks am I working on")
	require.NoError(t, err)
	require.Contains(t, reply, "Here are your in-progress tasks:")
	require.Contains(t, reply, "Build header")

	reply, err = service.Respond("show completed tasks")
	require.NoError(t, err)
	require.Contains(t, reply, "Here are your completed tasks:")
	require.Contains(t, reply, "Pick palette")
}

func TestChatRespond_TasksRecentLimit(t *testing.T) {
	db, service, project := newChatFixture(t)

	// Seven tasks, only the five newest make the reply.
	for i, title := range []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7"} {
		task := &models.Task{
			Title:     title,
			Status:    models.TaskStatusTodo,
			Priority:  models.TaskPriorityMedium,
			ProjectID: project.ID,
		}
		require.NoError(t, db.Create(task).Error)
		// sqlite timestamps need distinct values for a stable order
		require.NoError(t, db.Model(task).
			Update("created_at", time.Now().Add(time.Duration(i)*time.Second)).Error)
	}

	reply, err := service.Respond("show my tasks")
	require.NoError(t, err)
	require.Contains(t, reply, "Here are your recent tasks:")
	require.Contains(t, reply, "t7")
	require.Contains(t, reply, "t3")
	require.NotContains(t, reply, "t1")
	require.NotContains(t, reply, "t2")
}

func TestChatRespond_Projects(t *testing.T) {
	db, service, project := newChatFixture(t)

	reply, err := service.Respond("list all projects")
	require.NoError(t, err)
	require.Contains(t, reply, "Here are your recent projects:")
	require.Contains(t, reply, "- Website Redesign (0 tasks)")

	seedChatTask(t, db, project.ID, "Only card", models.TaskStatusDone)

	// Every task is done so nothing counts as active.
	reply, err = service.Respond("what are my active projects?")
	require.NoError(t, err)
	require.Equal(t, "You don't have any active projects!", reply)

	seedChatTask(t, db, project.ID, "New card", models.TaskStatusTodo)

	reply, err = service.Respond("show ongoing projects")
	require.NoError(t, err)
	require.Contains(t, reply, "Here are your active projects:")
	require.Contains(t, reply, "- Website Redesign (2 tasks)")
}

func TestChatRespond_ProjectsEmpty(t *testing.T) {
	db, service, project := newChatFixture(t)
	require.NoError(t, db.Unscoped().Delete(project).Error)

	reply, err := service.Respond("show my projects")
	require.NoError(t, err)
	require.Equal(t, "You don't have any projects yet. Would you like to create one?", reply)
}
