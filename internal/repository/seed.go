package repository

import (
	"fmt"
	"log/slog"
	"time"

	"choreboard/internal/database"
	"choreboard/internal/models"
)

// SeedDemoData populates an empty database with the demo family the app
// ships with: two managers, two members, a handful of tasks due today and a
// starter shopping list. Does nothing when users already exist.
func SeedDemoData(db *database.DB) error {
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	shopping := NewShoppingRepository(db)
	notifications := NewNotificationRepository(db)
	settings := NewSettingsRepository(db)

	existing, err := users.ListUsers()
	if err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	type seedUser struct {
		name  string
		email string
		role  models.UserRole
		stars int
	}
	seedUsers := []seedUser{
		{"Carlos", "carlos@familia.com", models.RoleManager, 0},
		{"Ana", "ana@familia.com", models.RoleManager, 0},
		{"Lucas", "lucas@familia.com", models.RoleMember, 12},
		{"Julia", "julia@familia.com", models.RoleMember, 8},
	}

	created := make(map[string]*models.User, len(seedUsers))
	for _, su := range seedUsers {
		u, err := users.CreateUser(su.name, su.email, su.role, AvatarURL(su.name))
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", su.name, err)
		}
		if su.stars > 0 {
			if _, err := db.Exec("UPDATE users SET stars = ? WHERE id = ?", su.stars, u.ID); err != nil {
				return fmt.Errorf("failed to seed stars: %w", err)
			}
		}
		created[su.name] = u
	}

	if err := settings.SetFamilyName("Família Silva"); err != nil {
		return fmt.Errorf("failed to seed family name: %w", err)
	}
	if err := settings.SaveSettings(models.DefaultSettings()); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	now := time.Now()
	today := now.Format(models.DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(models.DateLayout)
	completed := now.Add(-30 * time.Minute)

	seedTasks := []models.Task{
		{
			ID: "seed-task-dishes", Title: "Lavar a louça do almoço",
			AssigneeID: created["Lucas"].ID, CreatorID: created["Carlos"].ID,
			Visibility: models.VisibilityPublic, Status: models.TaskWaitingApproval,
			DueDate: today, CompletedAt: &completed, CreatedAt: now,
		},
		{
			ID: "seed-task-math", Title: "Estudar Matemática (Cap. 4)",
			AssigneeID: created["Lucas"].ID, CreatorID: created["Carlos"].ID,
			Visibility: models.VisibilityPersonal, Status: models.TaskTodo,
			DueDate: today, CreatedAt: now,
		},
		{
			ID: "seed-task-room", Title: "Arrumar o quarto",
			AssigneeID: created["Julia"].ID, CreatorID: created["Ana"].ID,
			Visibility: models.VisibilityPersonal, Status: models.TaskTodo,
			DueDate: today, CreatedAt: now,
		},
		{
			ID: "seed-task-dog", Title: "Passear com o cachorro",
			AssigneeID: created["Carlos"].ID, CreatorID: created["Carlos"].ID,
			Visibility: models.VisibilityPublic, Status: models.TaskDone,
			DueDate: today, CompletedAt: &completed, CreatedAt: now,
		},
		{
			ID: "seed-task-yard", Title: "Limpar o quintal",
			AssigneeID: created["Lucas"].ID, CreatorID: created["Carlos"].ID,
			Visibility: models.VisibilityPublic, Status: models.TaskTodo,
			DueDate: tomorrow, CreatedAt: now,
		},
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tasks.InsertBatch(tx, seedTasks); err != nil {
		return err
	}

	if _, err := shopping.CreateItem(tx, "Leite", created["Ana"].ID, models.ShoppingApproved); err != nil {
		return err
	}
	chocolate, err := shopping.CreateItem(tx, "Chocolate", created["Julia"].ID, models.ShoppingPending)
	if err != nil {
		return err
	}
	if _, err := shopping.CreateItem(tx, "Detergente", created["Carlos"].ID, models.ShoppingApproved); err != nil {
		return err
	}

	if _, err := notifications.CreateNotification(tx,
		fmt.Sprintf("%s completou: %s", created["Lucas"].Name, "Lavar a louça do almoço"),
		models.NotifTaskApproval, "seed-task-dishes"); err != nil {
		return err
	}
	if _, err := notifications.CreateNotification(tx,
		fmt.Sprintf("%s sugeriu comprar: %s", created["Julia"].Name, chocolate.Name),
		models.NotifShoppingSuggestion, chocolate.ID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	slog.Info("seeded demo family data", "users", len(seedUsers), "tasks", len(seedTasks))
	return nil
}

// AvatarURL builds the default generated avatar for a user name
func AvatarURL(name string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + name
}
