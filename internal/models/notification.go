package models

import "time"

// NotificationType classifies what a notification is about
type NotificationType string

const (
	NotifTaskApproval       NotificationType = "TASK_APPROVAL"
	NotifShoppingSuggestion NotificationType = "SHOPPING_SUGGESTION"
	NotifInfo               NotificationType = "INFO"
)

// Notification is an ephemeral entry correlated to a pending approval.
// It is removed outright (not marked read) when the related task or shopping
// item is approved or rejected, so the set of notifications always mirrors
// the set of open approvals.
type Notification struct {
	ID        string
	Message   string
	Type      NotificationType
	RelatedID string // ID of the task or shopping item this refers to
	Read      bool
	CreatedAt time.Time
}
