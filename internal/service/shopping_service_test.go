package service

import (
	"errors"
	"testing"

	"choreboard/internal/models"
)

func TestAddByManagerIsAutoApproved(t *testing.T) {
	env := newTestEnv(t)
	manager := env.addUser(t, "ana", models.RoleManager)

	item, err := env.shopping.Add(manager.ID, "Leite")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if item.Status != models.ShoppingApproved {
		t.Errorf("Status = %v, want APPROVED for a manager's item", item.Status)
	}
	if n := env.notificationCount(t); n != 0 {
		t.Errorf("Manager's item must not produce a notification, got %d", n)
	}
}

func TestAddByMemberIsPending(t *testing.T) {
	env := newTestEnv(t)
	member := env.addUser(t, "julia", models.RoleMember)

	item, err := env.shopping.Add(member.ID, "Chocolate")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if item.Status != models.ShoppingPending {
		t.Errorf("Status = %v, want PENDING for a member's suggestion", item.Status)
	}

	notifications, err := env.notifs.ListNotifications()
	if err != nil {
		t.Fatalf("ListNotifications() error = %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("Expected 1 suggestion notification, got %d", len(notifications))
	}
	if notifications[0].Type != models.NotifShoppingSuggestion {
		t.Errorf("Notification type = %v, want SHOPPING_SUGGESTION", notifications[0].Type)
	}
	if notifications[0].RelatedID != item.ID {
		t.Error("Notification must reference the suggested item")
	}
}

func TestApproveClearsNotification(t *testing.T) {
	env := newTestEnv(t)
	member := env.addUser(t, "julia", models.RoleMember)

	item, err := env.shopping.Add(member.ID, "Detergente")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := env.shopping.Approve(item.ID); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	got, err := env.shopping.shoppingRepo.GetItemByID(item.ID)
	if err != nil {
		t.Fatalf("GetItemByID() error = %v", err)
	}
	if got.Status != models.ShoppingApproved {
		t.Errorf("Status = %v, want APPROVED", got.Status)
	}
	if n := env.notificationCount(t); n != 0 {
		t.Errorf("Approval must clear the notification, got %d left", n)
	}
}

func TestDecideOnlyPendingItems(t *testing.T) {
	env := newTestEnv(t)
	member := env.addUser(t, "julia", models.RoleMember)

	item, err := env.shopping.Add(member.ID, "Pão")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := env.shopping.Approve(item.ID); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	if err := env.shopping.Approve(item.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Repeated Approve() error = %v, want ErrInvalidTransition", err)
	}
	if err := env.shopping.Reject(item.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Reject() after approval: error = %v, want ErrInvalidTransition", err)
	}
}

func TestRejectedItemCannotBePurchased(t *testing.T) {
	env := newTestEnv(t)
	member := env.addUser(t, "julia", models.RoleMember)

	item, err := env.shopping.Add(member.ID, "Refrigerante")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := env.shopping.Reject(item.ID); err != nil {
		t.Fatalf("Reject() error = %v", err)
	}

	got, err := env.shopping.shoppingRepo.GetItemByID(item.ID)
	if err != nil {
		t.Fatalf("GetItemByID() error = %v", err)
	}
	if got.Status != models.ShoppingRejected {
		t.Errorf("Status = %v, want REJECTED", got.Status)
	}
	if n := env.notificationCount(t); n != 0 {
		t.Errorf("Rejection must clear the notification, got %d left", n)
	}

	if err := env.shopping.MarkPurchased(item.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("MarkPurchased() on rejected item: error = %v, want ErrInvalidTransition", err)
	}
}

func TestMarkPurchasedStampsTimestamp(t *testing.T) {
	env := newTestEnv(t)
	manager := env.addUser(t, "ana", models.RoleManager)

	item, err := env.shopping.Add(manager.ID, "Arroz")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := env.shopping.MarkPurchased(item.ID); err != nil {
		t.Fatalf("MarkPurchased() error = %v", err)
	}

	got, err := env.shopping.shoppingRepo.GetItemByID(item.ID)
	if err != nil {
		t.Fatalf("GetItemByID() error = %v", err)
	}
	if got.Status != models.ShoppingPurchased {
		t.Errorf("Status = %v, want PURCHASED", got.Status)
	}
	if got.PurchasedAt == nil {
		t.Error("Purchase must stamp PurchasedAt")
	}

	// PURCHASED is terminal
	if err := env.shopping.MarkPurchased(item.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Repeated MarkPurchased() error = %v, want ErrInvalidTransition", err)
	}
}

func TestAddValidation(t *testing.T) {
	env := newTestEnv(t)
	member := env.addUser(t, "julia", models.RoleMember)

	if _, err := env.shopping.Add(member.ID, ""); err == nil {
		t.Error("Add() with empty name should fail validation")
	}
	if _, err := env.shopping.Add("no-such-user", "Leite"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Add() by unknown user: error = %v, want ErrUserNotFound", err)
	}
	if err := env.shopping.Approve("no-such-item"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Approve() unknown item: error = %v, want ErrItemNotFound", err)
	}
}
