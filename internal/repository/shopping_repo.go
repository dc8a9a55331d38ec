package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"choreboard/internal/database"
	"choreboard/internal/models"
)

// ShoppingRepository handles database operations for shopping items
type ShoppingRepository struct {
	db *database.DB
}

// NewShoppingRepository creates a new shopping repository
func NewShoppingRepository(db *database.DB) *ShoppingRepository {
	return &ShoppingRepository{db: db}
}

const shoppingColumns = "id, name, suggested_by, status, created_at, purchased_at"

// DB exposes the underlying handle for service-level transactions
func (r *ShoppingRepository) DB() *database.DB {
	return r.db
}

// CreateItem inserts a new shopping item inside the given transaction
func (r *ShoppingRepository) CreateItem(tx *database.Tx, name, suggestedByID string, status models.ShoppingItemStatus) (*models.ShoppingItem, error) {
	item := &models.ShoppingItem{
		ID:            uuid.New().String(),
		Name:          name,
		SuggestedByID: suggestedByID,
		Status:        status,
		CreatedAt:     time.Now(),
	}

	query := `INSERT INTO shopping_items (` + shoppingColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := tx.Exec(query, item.ID, item.Name, item.SuggestedByID, string(item.Status), item.CreatedAt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create shopping item: %w", err)
	}
	return item, nil
}

// GetItemByID retrieves a shopping item, returning nil if not found
func (r *ShoppingRepository) GetItemByID(id string) (*models.ShoppingItem, error) {
	row := r.db.QueryRow(`SELECT `+shoppingColumns+` FROM shopping_items WHERE id = ?`, id)
	item, err := scanShoppingItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shopping item: %w", err)
	}
	return item, nil
}

// ListItems retrieves every shopping item, oldest first
func (r *ShoppingRepository) ListItems() ([]models.ShoppingItem, error) {
	rows, err := r.db.Query(`SELECT ` + shoppingColumns + ` FROM shopping_items ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shopping items: %w", err)
	}
	defer rows.Close()

	var items []models.ShoppingItem
	for rows.Next() {
		item, err := scanShoppingItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shopping item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// SetStatus updates the status of one item inside the given transaction
func (r *ShoppingRepository) SetStatus(tx *database.Tx, id string, status models.ShoppingItemStatus) error {
	result, err := tx.Exec("UPDATE shopping_items SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update shopping item: %w", err)
	}
	return requireRowAffected(result)
}

// MarkPurchased sets the terminal PURCHASED state with its timestamp
func (r *ShoppingRepository) MarkPurchased(id string, purchasedAt time.Time) error {
	result, err := r.db.Exec("UPDATE shopping_items SET status = ?, purchased_at = ? WHERE id = ?",
		string(models.ShoppingPurchased), purchasedAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark item purchased: %w", err)
	}
	return requireRowAffected(result)
}

func scanShoppingItem(scan func(dest ...interface{}) error) (*models.ShoppingItem, error) {
	var item models.ShoppingItem
	var status string
	var purchasedAt sql.NullTime
	err := scan(&item.ID, &item.Name, &item.SuggestedByID, &status, &item.CreatedAt, &purchasedAt)
	if err != nil {
		return nil, err
	}
	item.Status = models.ShoppingItemStatus(status)
	if purchasedAt.Valid {
		ts := purchasedAt.Time
		item.PurchasedAt = &ts
	}
	return &item, nil
}
