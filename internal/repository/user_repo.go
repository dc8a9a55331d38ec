package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"choreboard/internal/database"
	"choreboard/internal/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user and returns it with a generated ID
func (r *UserRepository) CreateUser(name, email string, role models.UserRole, avatar string) (*models.User, error) {
	now := time.Now()
	user := &models.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Role:      role,
		Avatar:    avatar,
		Stars:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `INSERT INTO users (id, name, email, role, avatar, stars, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, user.ID, user.Name, user.Email, string(user.Role), user.Avatar, user.Stars, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID, returning nil if not found
func (r *UserRepository) GetUserByID(id string) (*models.User, error) {
	query := `SELECT id, name, email, role, avatar, stars, created_at, updated_at FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRow(query, id))
}

// GetUserByEmail retrieves a user by email (case-insensitive), returning nil if not found
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := `SELECT id, name, email, role, avatar, stars, created_at, updated_at FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRow(query, strings.ToLower(strings.TrimSpace(email))))
}

// ListUsers retrieves all users in creation order
func (r *UserRepository) ListUsers() ([]models.User, error) {
	query := `SELECT id, name, email, role, avatar, stars, created_at, updated_at FROM users ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &role, &u.Avatar, &u.Stars, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.Role = models.UserRole(role)
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser updates a user's name and role
func (r *UserRepository) UpdateUser(id, name string, role models.UserRole) error {
	query := `UPDATE users SET name = ?, role = ?, updated_at = ? WHERE id = ?`
	return r.execOne(query, name, string(role), time.Now(), id)
}

// UpdateAvatar updates a user's avatar reference
func (r *UserRepository) UpdateAvatar(id, avatar string) error {
	query := `UPDATE users SET avatar = ?, updated_at = ? WHERE id = ?`
	return r.execOne(query, avatar, time.Now(), id)
}

// IncrementStars adds one star to a user inside the given transaction
func (r *UserRepository) IncrementStars(tx *database.Tx, id string) error {
	query := `UPDATE users SET stars = stars + 1, updated_at = ? WHERE id = ?`
	result, err := tx.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to increment stars: %w", err)
	}
	return requireRowAffected(result)
}

// DeleteUser removes a user and cascade-deletes the tasks assigned to them.
// Shopping items and notifications referencing the user are left in place.
func (r *UserRepository) DeleteUser(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks WHERE assignee_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete user tasks: %w", err)
	}

	result, err := tx.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if err := requireRowAffected(result); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &u.Avatar, &u.Stars, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.Role = models.UserRole(role)
	return &u, nil
}

func (r *UserRepository) execOne(query string, args ...interface{}) error {
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRowAffected(result)
}

// requireRowAffected turns a zero-row update into ErrNotFound
func requireRowAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
