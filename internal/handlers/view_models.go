package handlers

import (
	"time"

	"choreboard/internal/models"
	"choreboard/internal/scoring"
)

// UserResponse is the JSON shape of a family member
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar"`
	Stars     int       `json:"stars"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Avatar:    u.Avatar,
		Stars:     u.Stars,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

// TaskResponse is the JSON shape of a task instance
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	AssigneeID  string     `json:"assigneeId"`
	CreatorID   string     `json:"creatorId"`
	Visibility  string     `json:"visibility"`
	Status      string     `json:"status"`
	DueDate     string     `json:"dueDate"`
	DueTime     string     `json:"dueTime,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	RuleID      string     `json:"ruleId"`
	Recurrence  []int      `json:"recurrenceDays,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func toTaskResponse(t *models.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		AssigneeID:  t.AssigneeID,
		CreatorID:   t.CreatorID,
		Visibility:  string(t.Visibility),
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		DueTime:     t.DueTime,
		CompletedAt: t.CompletedAt,
		RuleID:      t.RuleID,
		Recurrence:  t.Recurrence,
		CreatedAt:   t.CreatedAt,
	}
}

func toTaskResponses(tasks []models.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskResponse(&tasks[i]))
	}
	return out
}

// ShoppingItemResponse is the JSON shape of a shopping item
type ShoppingItemResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	SuggestedBy string     `json:"suggestedBy"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	PurchasedAt *time.Time `json:"purchasedAt,omitempty"`
}

func toShoppingItemResponse(item *models.ShoppingItem) ShoppingItemResponse {
	return ShoppingItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		SuggestedBy: item.SuggestedByID,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt,
		PurchasedAt: item.PurchasedAt,
	}
}

func toShoppingItemResponses(items []models.ShoppingItem) []ShoppingItemResponse {
	out := make([]ShoppingItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toShoppingItemResponse(&items[i]))
	}
	return out
}

// NotificationResponse is the JSON shape of a notification
type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	RelatedID string    `json:"relatedId,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func toNotificationResponses(notifications []models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			Type:      string(n.Type),
			RelatedID: n.RelatedID,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

// ScoreResponse is one row of the monthly leaderboard
type ScoreResponse struct {
	User           UserResponse `json:"user"`
	TotalPoints    int          `json:"totalPoints"`
	TasksCompleted int          `json:"tasksCompleted"`
}

func toScoreResponses(scores []scoring.UserScore) []ScoreResponse {
	out := make([]ScoreResponse, 0, len(scores))
	for i := range scores {
		out = append(out, ScoreResponse{
			User:           toUserResponse(&scores[i].User),
			TotalPoints:    scores[i].TotalPoints,
			TasksCompleted: scores[i].TasksCompleted,
		})
	}
	return out
}

// SettingsResponse is the JSON shape of the family settings
type SettingsResponse struct {
	RequireApproval     bool   `json:"requireApproval"`
	EnableGamification  bool   `json:"enableGamification"`
	EnableNotifications bool   `json:"enableNotifications"`
	FamilyName          string `json:"familyName"`
}
