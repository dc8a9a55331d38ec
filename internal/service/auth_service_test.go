package service

import (
	"errors"
	"testing"
	"time"

	"choreboard/internal/models"
	"choreboard/internal/security"
)

func newAuthService(env *testEnv) *AuthService {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(env.users, tokens)
}

func TestLoginIssuesValidSession(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	user := env.addUser(t, "carlos", models.RoleManager)

	// Email matching is case-insensitive
	loggedIn, token, err := auth.Login("CARLOS@example.com")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("Login() returned user %s, want %s", loggedIn.ID, user.ID)
	}

	resolved, err := auth.ValidateSession(token)
	if err != nil {
		t.Fatalf("ValidateSession() error = %v", err)
	}
	if resolved.ID != user.ID {
		t.Errorf("ValidateSession() returned user %s, want %s", resolved.ID, user.ID)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	env.addUser(t, "carlos", models.RoleManager)

	_, _, err := auth.Login("stranger@example.com")
	if !errors.Is(err, ErrUnknownEmail) {
		t.Errorf("Login() error = %v, want ErrUnknownEmail", err)
	}
}

func TestValidateSessionAfterUserRemoval(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	user := env.addUser(t, "lucas", models.RoleMember)

	_, token, err := auth.Login(user.Email)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := env.family.RemoveUser(user.ID); err != nil {
		t.Fatalf("RemoveUser() error = %v", err)
	}

	_, err = auth.ValidateSession(token)
	if !errors.Is(err, security.ErrInvalidToken) {
		t.Errorf("ValidateSession() after removal: error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateSessionReflectsRoleChange(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	user := env.addUser(t, "julia", models.RoleMember)

	_, token, err := auth.Login(user.Email)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := env.family.UpdateUser(user.ID, user.Name, models.RoleManager); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}

	// The token carries only the ID, so the promotion is visible immediately
	resolved, err := auth.ValidateSession(token)
	if err != nil {
		t.Fatalf("ValidateSession() error = %v", err)
	}
	if resolved.Role != models.RoleManager {
		t.Errorf("Role = %v, want MANAGER after promotion", resolved.Role)
	}
}
