// Package views holds the pure predicates that decide what a given user
// sees on each screen. Nothing here mutates or caches: every read filters a
// fresh snapshot of the store, which keeps reads consistent with the last
// write for free.
package views

import (
	"time"

	"choreboard/internal/models"
)

// MyTasks selects the viewer's own open tasks for the home screen
func MyTasks(tasks []models.Task, viewer *models.User) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.AssigneeID == viewer.ID && t.Status != models.TaskDone {
			out = append(out, t)
		}
	}
	return out
}

// FamilyRadar selects other people's open tasks the viewer may see:
// managers see everything, members only public tasks
func FamilyRadar(tasks []models.Task, viewer *models.User) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.AssigneeID == viewer.ID || t.Status == models.TaskDone {
			continue
		}
		if viewer.IsManager() || t.Visibility == models.VisibilityPublic {
			out = append(out, t)
		}
	}
	return out
}

// CalendarDay selects the tasks due on one date that the viewer may see:
// own tasks always, everything for managers, public tasks otherwise
func CalendarDay(tasks []models.Task, viewer *models.User, date string) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.DueDate != date {
			continue
		}
		if t.AssigneeID == viewer.ID || viewer.IsManager() || t.Visibility == models.VisibilityPublic {
			out = append(out, t)
		}
	}
	return out
}

// ShoppingMonth is the shopping list split for one viewed month
type ShoppingMonth struct {
	Pending   []models.ShoppingItem
	Approved  []models.ShoppingItem
	Purchased []models.ShoppingItem
}

// ShoppingByMonth applies the month-window rule: active (pending/approved)
// items float to the real current month and never appear under a past or
// future month, while purchased items are pinned to the month they were
// bought in.
func ShoppingByMonth(items []models.ShoppingItem, year int, month time.Month, now time.Time) ShoppingMonth {
	viewingCurrent := now.Year() == year && now.Month() == month

	var view ShoppingMonth
	for _, item := range items {
		switch item.Status {
		case models.ShoppingPending:
			if viewingCurrent {
				view.Pending = append(view.Pending, item)
			}
		case models.ShoppingApproved:
			if viewingCurrent {
				view.Approved = append(view.Approved, item)
			}
		case models.ShoppingPurchased:
			if item.PurchasedAt != nil && item.PurchasedAt.Year() == year && item.PurchasedAt.Month() == month {
				view.Purchased = append(view.Purchased, item)
			}
		}
		// REJECTED items never appear in list views; they are retained in
		// the store only.
	}
	return view
}

// PendingApprovalsCount counts the unread approval-type notifications.
// Only managers have an approvals inbox; everyone else sees zero.
func PendingApprovalsCount(notifications []models.Notification, viewer *models.User) int {
	if viewer == nil || !viewer.IsManager() {
		return 0
	}
	count := 0
	for _, n := range notifications {
		if n.Read {
			continue
		}
		if n.Type == models.NotifTaskApproval || n.Type == models.NotifShoppingSuggestion {
			count++
		}
	}
	return count
}
