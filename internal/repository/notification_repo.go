package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"choreboard/internal/database"
	"choreboard/internal/models"
)

// NotificationRepository handles database operations for the notification ledger
type NotificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateNotification appends a notification inside the given transaction
func (r *NotificationRepository) CreateNotification(tx *database.Tx, message string, typ models.NotificationType, relatedID string) (*models.Notification, error) {
	n := &models.Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Type:      typ,
		RelatedID: relatedID,
		Read:      false,
		CreatedAt: time.Now(),
	}

	query := `INSERT INTO notifications (id, message, type, related_id, is_read, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := tx.Exec(query, n.ID, n.Message, string(n.Type), n.RelatedID, n.Read, n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

// ListNotifications retrieves the ledger, newest first
func (r *NotificationRepository) ListNotifications() ([]models.Notification, error) {
	query := `SELECT id, message, type, related_id, is_read, created_at FROM notifications ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var typ string
		if err := rows.Scan(&n.ID, &n.Message, &typ, &n.RelatedID, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = models.NotificationType(typ)
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// DeleteByRelatedID removes the notifications tied to a resolved task or
// shopping item. Runs inside the caller's transaction so a reader can never
// observe a resolved item with its approval notification still pending.
func (r *NotificationRepository) DeleteByRelatedID(tx *database.Tx, relatedID string) error {
	_, err := tx.Exec("DELETE FROM notifications WHERE related_id = ?", relatedID)
	if err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}
	return nil
}

// MarkRead flags a single notification as read
func (r *NotificationRepository) MarkRead(id string) error {
	result, err := r.db.Exec("UPDATE notifications SET is_read = ? WHERE id = ?", true, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return requireRowAffected(result)
}
