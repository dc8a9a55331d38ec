package service

import (
	"context"
	"errors"
	"testing"

	"choreboard/internal/models"
)

func TestAddUserRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.family.AddUser(ctx, "Carlos", "carlos@example.com", models.RoleManager); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}

	_, err := env.family.AddUser(ctx, "Outro Carlos", "CARLOS@example.com", models.RoleMember)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("AddUser() with duplicate email: error = %v, want ErrEmailTaken", err)
	}
}

func TestAddUserValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		userName  string
		email     string
		role      models.UserRole
	}{
		{name: "empty name", userName: "", email: "a@example.com", role: models.RoleMember},
		{name: "bad email", userName: "Ana", email: "not-an-email", role: models.RoleMember},
		{name: "bad role", userName: "Ana", email: "ana@example.com", role: "ADMIN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.family.AddUser(ctx, tt.userName, tt.email, tt.role); err == nil {
				t.Error("AddUser() should fail validation")
			}
		})
	}
}

func TestAddUserStartsWithZeroStars(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.family.AddUser(context.Background(), "Lucas", "lucas@example.com", models.RoleMember)
	if err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}
	if user.Stars != 0 {
		t.Errorf("Stars = %d, want 0", user.Stars)
	}
	if user.Avatar == "" {
		t.Error("New user must get a generated avatar")
	}
}

func TestRemoveUserCascadesTasksOnly(t *testing.T) {
	env := newTestEnv(t)
	manager := env.addUser(t, "carlos", models.RoleManager)
	member := env.addUser(t, "lucas", models.RoleMember)

	env.createTask(t, manager.ID, member.ID, "Arrumar o quarto", "2026-03-05", "")
	env.createTask(t, manager.ID, manager.ID, "Fazer compras", "2026-03-06", "")

	item, err := env.shopping.Add(member.ID, "Chocolate")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := env.family.RemoveUser(member.ID); err != nil {
		t.Fatalf("RemoveUser() error = %v", err)
	}

	tasks, err := env.tasks.ListTasks()
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("Expected only the manager's task to survive, got %d tasks", len(tasks))
	}
	if tasks[0].AssigneeID != manager.ID {
		t.Error("Surviving task must belong to the remaining user")
	}

	// The removed member's shopping suggestion stays, reference dangling
	got, err := env.shopping.shoppingRepo.GetItemByID(item.ID)
	if err != nil {
		t.Fatalf("GetItemByID() error = %v", err)
	}
	if got == nil {
		t.Error("Shopping items must survive the suggester's removal")
	}

	if err := env.family.RemoveUser(member.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Repeated RemoveUser() error = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateUserRoleChange(t *testing.T) {
	env := newTestEnv(t)
	member := env.addUser(t, "julia", models.RoleMember)

	if err := env.family.UpdateUser(member.ID, "Júlia", models.RoleManager); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}

	got, err := env.family.GetUser(member.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.Name != "Júlia" || got.Role != models.RoleManager {
		t.Errorf("Got %s/%s, want Júlia/MANAGER", got.Name, got.Role)
	}
}

func TestUpdateSettingsPartialPatch(t *testing.T) {
	env := newTestEnv(t)

	off := false
	updated, err := env.family.UpdateSettings(models.SettingsPatch{RequireApproval: &off})
	if err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}

	if updated.RequireApproval {
		t.Error("RequireApproval should be off after the patch")
	}
	if !updated.EnableGamification || !updated.EnableNotifications {
		t.Error("Unpatched switches must keep their defaults")
	}

	// The patch persists across a fresh read
	got, err := env.family.Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if got != updated {
		t.Errorf("Settings() = %+v, want %+v", got, updated)
	}
}

func TestFamilyNameRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	if err := env.family.SetFamilyName("Família Silva"); err != nil {
		t.Fatalf("SetFamilyName() error = %v", err)
	}

	name, err := env.family.FamilyName()
	if err != nil {
		t.Fatalf("FamilyName() error = %v", err)
	}
	if name != "Família Silva" {
		t.Errorf("FamilyName() = %q, want %q", name, "Família Silva")
	}
}
