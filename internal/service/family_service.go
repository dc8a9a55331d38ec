package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"choreboard/internal/models"
	"choreboard/internal/repository"
	"choreboard/internal/validation"
)

var ErrEmailTaken = errors.New("email already registered")

// Inviter sends an invitation to a newly added family member. Satisfied by
// EmailService; a nil Inviter disables invitations entirely.
type Inviter interface {
	SendInvitation(ctx context.Context, toEmail, toName, familyName string) error
}

// FamilyService manages membership, the household name and the settings
type FamilyService struct {
	userRepo     *repository.UserRepository
	settingsRepo *repository.SettingsRepository
	inviter      Inviter
}

// NewFamilyService creates a new family service
func NewFamilyService(userRepo *repository.UserRepository, settingsRepo *repository.SettingsRepository, inviter Inviter) *FamilyService {
	return &FamilyService{
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		inviter:      inviter,
	}
}

// ListUsers returns every family member in join order
func (s *FamilyService) ListUsers() ([]models.User, error) {
	return s.userRepo.ListUsers()
}

// GetUser returns one family member
func (s *FamilyService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// AddUser creates a family member with a generated avatar and zero stars,
// then sends an invitation email when the mailer is configured. A failed
// invitation never fails the membership change.
func (s *FamilyService) AddUser(ctx context.Context, name, email string, role models.UserRole) (*models.User, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, validation.ValidationError{Field: "role", Message: "role must be MANAGER or MEMBER"}
	}

	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user, err := s.userRepo.CreateUser(name, email, role, repository.AvatarURL(name))
	if err != nil {
		return nil, err
	}

	if s.inviter != nil {
		familyName, err := s.settingsRepo.GetFamilyName()
		if err != nil {
			familyName = ""
		}
		if err := s.inviter.SendInvitation(ctx, user.Email, user.Name, familyName); err != nil {
			slog.Warn("failed to send invitation email", "email", user.Email, "error", err)
		}
	}

	slog.Info("family member added", "user", user.ID, "role", role)
	return user, nil
}

// UpdateUser edits a member's display name and role
func (s *FamilyService) UpdateUser(id, name string, role models.UserRole) error {
	if err := validation.ValidateName(name); err != nil {
		return err
	}
	if !role.IsValid() {
		return validation.ValidationError{Field: "role", Message: "role must be MANAGER or MEMBER"}
	}

	err := s.userRepo.UpdateUser(id, name, role)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// UpdateAvatar replaces a member's avatar reference
func (s *FamilyService) UpdateAvatar(id, avatarURL string) error {
	if avatarURL == "" {
		return validation.ValidationError{Field: "avatar", Message: "avatar is required"}
	}
	err := s.userRepo.UpdateAvatar(id, avatarURL)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// RemoveUser removes a member and cascade-deletes the tasks assigned to
// them. Shopping items they suggested and notifications that mention them
// stay in the store; views tolerate the dangling reference.
func (s *FamilyService) RemoveUser(id string) error {
	err := s.userRepo.DeleteUser(id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	slog.Info("family member removed", "user", id)
	return nil
}

// FamilyName returns the household display name
func (s *FamilyService) FamilyName() (string, error) {
	return s.settingsRepo.GetFamilyName()
}

// SetFamilyName updates the household display name
func (s *FamilyService) SetFamilyName(name string) error {
	if err := validation.ValidateName(name); err != nil {
		return err
	}
	return s.settingsRepo.SetFamilyName(name)
}

// Settings returns the current behavior switches
func (s *FamilyService) Settings() (models.Settings, error) {
	return s.settingsRepo.GetSettings()
}

// UpdateSettings applies a partial settings update and returns the result
func (s *FamilyService) UpdateSettings(patch models.SettingsPatch) (models.Settings, error) {
	current, err := s.settingsRepo.GetSettings()
	if err != nil {
		return current, fmt.Errorf("failed to load settings: %w", err)
	}

	updated := patch.Apply(current)
	if err := s.settingsRepo.SaveSettings(updated); err != nil {
		return current, fmt.Errorf("failed to save settings: %w", err)
	}

	slog.Info("settings updated",
		"require_approval", updated.RequireApproval,
		"enable_gamification", updated.EnableGamification,
		"enable_notifications", updated.EnableNotifications,
	)
	return updated, nil
}
