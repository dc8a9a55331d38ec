package service

import (
	"errors"
	"time"

	"choreboard/internal/models"
	"choreboard/internal/repository"
	"choreboard/internal/security"
)

var ErrUnknownEmail = errors.New("no family member with that email")

// AuthService resolves the acting user. Login is a membership check by
// email only: the family roster is the whole credential database, so there
// are no passwords to verify. A signed token carries the user ID between
// requests; the user record itself is always re-read from the store.
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *security.TokenManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, tokens *security.TokenManager) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Login matches the email case-insensitively against the roster and issues
// a session token for the matching user
func (s *AuthService) Login(email string) (*models.User, string, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrUnknownEmail
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ValidateSession resolves a session token back to the current user record.
// A token whose user has since been removed from the family is invalid.
func (s *AuthService) ValidateSession(token string) (*models.User, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, security.ErrInvalidToken
	}
	return user, nil
}

// SessionTTL returns the configured session lifetime for cookie expiry
func (s *AuthService) SessionTTL() time.Duration {
	return s.tokens.TTL()
}
