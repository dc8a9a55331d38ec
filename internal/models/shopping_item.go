package models

import "time"

// ShoppingItemStatus tracks a shopping item through its approval lifecycle
type ShoppingItemStatus string

const (
	ShoppingPending   ShoppingItemStatus = "PENDING"
	ShoppingApproved  ShoppingItemStatus = "APPROVED"
	ShoppingPurchased ShoppingItemStatus = "PURCHASED"
	ShoppingRejected  ShoppingItemStatus = "REJECTED"
)

// ShoppingItem is an entry on the shared family shopping list.
// Invariant: PurchasedAt is set if and only if Status is PURCHASED.
type ShoppingItem struct {
	ID            string
	Name          string
	SuggestedByID string
	Status        ShoppingItemStatus
	CreatedAt     time.Time
	PurchasedAt   *time.Time
}
