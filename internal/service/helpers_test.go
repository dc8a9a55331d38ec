package service

import (
	"path/filepath"
	"testing"

	"choreboard/internal/database"
	"choreboard/internal/models"
	"choreboard/internal/repository"
)

// testEnv wires the services against a throwaway SQLite database with the
// real migrations applied
type testEnv struct {
	db       *database.DB
	users    *repository.UserRepository
	notifs   *repository.NotificationRepository
	settings *repository.SettingsRepository
	tasks    *TaskService
	shopping *ShoppingService
	family   *FamilyService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "service_test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	users := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	shoppingRepo := repository.NewShoppingRepository(db)
	notifs := repository.NewNotificationRepository(db)
	settings := repository.NewSettingsRepository(db)

	return &testEnv{
		db:       db,
		users:    users,
		notifs:   notifs,
		settings: settings,
		tasks:    NewTaskService(taskRepo, users, notifs, settings),
		shopping: NewShoppingService(shoppingRepo, users, notifs),
		family:   NewFamilyService(users, settings, nil),
	}
}

func (e *testEnv) addUser(t *testing.T, name string, role models.UserRole) *models.User {
	t.Helper()
	user, err := e.users.CreateUser(name, name+"@example.com", role, "")
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", name, err)
	}
	return user
}

func (e *testEnv) saveSettings(t *testing.T, s models.Settings) {
	t.Helper()
	if err := e.settings.SaveSettings(s); err != nil {
		t.Fatalf("Failed to save settings: %v", err)
	}
}

// createTask creates a single dated task and returns the stored instance
func (e *testEnv) createTask(t *testing.T, creatorID, assigneeID, title, dueDate, dueTime string) models.Task {
	t.Helper()
	instances, err := e.tasks.Create(creatorID, CreateTaskParams{
		Title:      title,
		AssigneeID: assigneeID,
		Visibility: models.VisibilityPublic,
		DueDate:    dueDate,
		DueTime:    dueTime,
	})
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	if len(instances) != 1 {
		t.Fatalf("Expected 1 instance for a dated task, got %d", len(instances))
	}
	return instances[0]
}

func (e *testEnv) mustGetTask(t *testing.T, id string) *models.Task {
	t.Helper()
	task, err := e.tasks.GetTask(id)
	if err != nil {
		t.Fatalf("Failed to get task %s: %v", id, err)
	}
	return task
}

func (e *testEnv) notificationCount(t *testing.T) int {
	t.Helper()
	notifications, err := e.notifs.ListNotifications()
	if err != nil {
		t.Fatalf("Failed to list notifications: %v", err)
	}
	return len(notifications)
}

func (e *testEnv) userStars(t *testing.T, id string) int {
	t.Helper()
	user, err := e.users.GetUserByID(id)
	if err != nil {
		t.Fatalf("Failed to get user %s: %v", id, err)
	}
	if user == nil {
		t.Fatalf("User %s not found", id)
	}
	return user.Stars
}
