package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"choreboard/internal/database"
)

// BackupData is the complete database snapshot written to and read from a
// backup file
type BackupData struct {
	Version       string               `json:"version"`
	ExportedAt    time.Time            `json:"exported_at"`
	Users         []UserBackup         `json:"users"`
	Tasks         []TaskBackup         `json:"tasks"`
	ShoppingItems []ShoppingItemBackup `json:"shopping_items"`
	Notifications []NotificationBackup `json:"notifications"`
	Settings      map[string]string    `json:"settings"`
}

// UserBackup represents a family member record for backup
type UserBackup struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar"`
	Stars     int       `json:"stars"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskBackup represents a task instance for backup
type TaskBackup struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeID  string     `json:"assignee_id"`
	CreatorID   string     `json:"creator_id"`
	Visibility  string     `json:"visibility"`
	Status      string     `json:"status"`
	DueDate     string     `json:"due_date"`
	DueTime     string     `json:"due_time"`
	CompletedAt *time.Time `json:"completed_at"`
	RuleID      string     `json:"rule_id"`
	Recurrence  string     `json:"recurrence"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ShoppingItemBackup represents a shopping item for backup
type ShoppingItemBackup struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	SuggestedBy string     `json:"suggested_by"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	PurchasedAt *time.Time `json:"purchased_at"`
}

// NotificationBackup represents a notification for backup
type NotificationBackup struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	RelatedID string    `json:"related_id"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// BackupService handles database export and restore
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete snapshot of the database to a JSON file
func (s *BackupService) Export(outputPath string) error {
	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Settings:   make(map[string]string),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportTasks(backup); err != nil {
		return fmt.Errorf("failed to export tasks: %w", err)
	}
	if err := s.exportShoppingItems(backup); err != nil {
		return fmt.Errorf("failed to export shopping items: %w", err)
	}
	if err := s.exportNotifications(backup); err != nil {
		return fmt.Errorf("failed to export notifications: %w", err)
	}
	if err := s.exportSettings(backup); err != nil {
		return fmt.Errorf("failed to export settings: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	slog.Info("database exported",
		"path", outputPath,
		"users", len(backup.Users),
		"tasks", len(backup.Tasks),
		"shopping_items", len(backup.ShoppingItems),
		"notifications", len(backup.Notifications),
		"settings", len(backup.Settings),
	)
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	rows, err := s.db.Query(`SELECT id, name, email, role, avatar, stars, created_at, updated_at FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Avatar, &u.Stars, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportTasks(backup *BackupData) error {
	rows, err := s.db.Query(`SELECT id, title, description, assignee_id, creator_id, visibility, status, due_date, due_time, completed_at, rule_id, recurrence, created_at FROM tasks ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t TaskBackup
		var completedAt sql.NullTime
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.AssigneeID, &t.CreatorID,
			&t.Visibility, &t.Status, &t.DueDate, &t.DueTime, &completedAt, &t.RuleID, &t.Recurrence, &t.CreatedAt); err != nil {
			return err
		}
		if completedAt.Valid {
			ts := completedAt.Time
			t.CompletedAt = &ts
		}
		backup.Tasks = append(backup.Tasks, t)
	}
	return rows.Err()
}

func (s *BackupService) exportShoppingItems(backup *BackupData) error {
	rows, err := s.db.Query(`SELECT id, name, suggested_by, status, created_at, purchased_at FROM shopping_items ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item ShoppingItemBackup
		var purchasedAt sql.NullTime
		if err := rows.Scan(&item.ID, &item.Name, &item.SuggestedBy, &item.Status, &item.CreatedAt, &purchasedAt); err != nil {
			return err
		}
		if purchasedAt.Valid {
			ts := purchasedAt.Time
			item.PurchasedAt = &ts
		}
		backup.ShoppingItems = append(backup.ShoppingItems, item)
	}
	return rows.Err()
}

func (s *BackupService) exportNotifications(backup *BackupData) error {
	rows, err := s.db.Query(`SELECT id, message, type, related_id, is_read, created_at FROM notifications ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var n NotificationBackup
		if err := rows.Scan(&n.ID, &n.Message, &n.Type, &n.RelatedID, &n.Read, &n.CreatedAt); err != nil {
			return err
		}
		backup.Notifications = append(backup.Notifications, n)
	}
	return rows.Err()
}

func (s *BackupService) exportSettings(backup *BackupData) error {
	rows, err := s.db.Query(`SELECT name, value FROM settings ORDER BY name ASC`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return err
		}
		backup.Settings[name] = value
	}
	return rows.Err()
}

// Import restores a snapshot from a JSON file. Rows are inserted as-is, so
// importing into a database that already holds the same IDs fails; clear the
// tables first for a full restore.
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	var backup BackupData
	if err := json.NewDecoder(file).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, u := range backup.Users {
		_, err := tx.Exec(`INSERT INTO users (id, name, email, role, avatar, stars, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			u.ID, u.Name, u.Email, u.Role, u.Avatar, u.Stars, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %s: %w", u.ID, err)
		}
	}

	for _, t := range backup.Tasks {
		_, err := tx.Exec(`INSERT INTO tasks (id, title, description, assignee_id, creator_id, visibility, status, due_date, due_time, completed_at, rule_id, recurrence, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Title, t.Description, t.AssigneeID, t.CreatorID, t.Visibility, t.Status,
			t.DueDate, t.DueTime, nullableBackupTime(t.CompletedAt), t.RuleID, t.Recurrence, t.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import task %s: %w", t.ID, err)
		}
	}

	for _, item := range backup.ShoppingItems {
		_, err := tx.Exec(`INSERT INTO shopping_items (id, name, suggested_by, status, created_at, purchased_at) VALUES (?, ?, ?, ?, ?, ?)`,
			item.ID, item.Name, item.SuggestedBy, item.Status, item.CreatedAt, nullableBackupTime(item.PurchasedAt))
		if err != nil {
			return fmt.Errorf("failed to import shopping item %s: %w", item.ID, err)
		}
	}

	for _, n := range backup.Notifications {
		_, err := tx.Exec(`INSERT INTO notifications (id, message, type, related_id, is_read, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			n.ID, n.Message, n.Type, n.RelatedID, n.Read, n.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import notification %s: %w", n.ID, err)
		}
	}

	upsert := s.db.Dialect.UpsertKeyValue("settings")
	for name, value := range backup.Settings {
		if _, err := tx.Exec(upsert, name, value); err != nil {
			return fmt.Errorf("failed to import setting %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("database imported",
		"path", inputPath,
		"users", len(backup.Users),
		"tasks", len(backup.Tasks),
		"shopping_items", len(backup.ShoppingItems),
		"notifications", len(backup.Notifications),
		"settings", len(backup.Settings),
	)
	return nil
}

func nullableBackupTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
