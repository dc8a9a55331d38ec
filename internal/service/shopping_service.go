package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"choreboard/internal/models"
	"choreboard/internal/repository"
	"choreboard/internal/validation"
)

var ErrItemNotFound = errors.New("shopping item not found")

// ShoppingService drives the shared shopping list lifecycle
type ShoppingService struct {
	shoppingRepo *repository.ShoppingRepository
	userRepo     *repository.UserRepository
	notifRepo    *repository.NotificationRepository
}

// NewShoppingService creates a new shopping service
func NewShoppingService(
	shoppingRepo *repository.ShoppingRepository,
	userRepo *repository.UserRepository,
	notifRepo *repository.NotificationRepository,
) *ShoppingService {
	return &ShoppingService{
		shoppingRepo: shoppingRepo,
		userRepo:     userRepo,
		notifRepo:    notifRepo,
	}
}

// Add creates a shopping item suggested by the acting user. A manager's own
// suggestion is trusted and starts APPROVED; a member's starts PENDING and
// produces a suggestion notification for the managers.
func (s *ShoppingService) Add(actorID, name string) (*models.ShoppingItem, error) {
	if actorID == "" {
		return nil, ErrUserNotFound
	}
	actor, err := s.userRepo.GetUserByID(actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrUserNotFound
	}

	if err := validation.ValidateTitle("name", name); err != nil {
		return nil, err
	}

	status := models.ShoppingPending
	if actor.IsManager() {
		status = models.ShoppingApproved
	}

	tx, err := s.shoppingRepo.DB().Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := s.shoppingRepo.CreateItem(tx, name, actor.ID, status)
	if err != nil {
		return nil, err
	}

	if status == models.ShoppingPending {
		message := fmt.Sprintf("%s sugeriu comprar: %s", actor.Name, item.Name)
		if _, err := s.notifRepo.CreateNotification(tx, message, models.NotifShoppingSuggestion, item.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("shopping item added", "item", item.ID, "status", status, "suggested_by", actor.ID)
	return item, nil
}

// Approve moves a PENDING item to APPROVED and clears its notification
func (s *ShoppingService) Approve(itemID string) error {
	return s.resolve(itemID, models.ShoppingApproved)
}

// Reject moves a PENDING item to REJECTED and clears its notification.
// Rejected items are retained; views simply stop showing them.
func (s *ShoppingService) Reject(itemID string) error {
	return s.resolve(itemID, models.ShoppingRejected)
}

// resolve applies an approval decision. Only PENDING items can be decided;
// the status change and the notification removal commit together.
func (s *ShoppingService) resolve(itemID string, decision models.ShoppingItemStatus) error {
	item, err := s.shoppingRepo.GetItemByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	if item.Status != models.ShoppingPending {
		return fmt.Errorf("%w: cannot decide a %s item", ErrInvalidTransition, item.Status)
	}

	tx, err := s.shoppingRepo.DB().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.shoppingRepo.SetStatus(tx, itemID, decision); err != nil {
		return err
	}
	if err := s.notifRepo.DeleteByRelatedID(tx, itemID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("shopping item decided", "item", itemID, "decision", decision)
	return nil
}

// MarkPurchased moves an APPROVED item to the terminal PURCHASED state,
// stamping the purchase time the month-window views pin it to. PURCHASED
// and REJECTED are terminal: a rejected item cannot be bought.
func (s *ShoppingService) MarkPurchased(itemID string) error {
	item, err := s.shoppingRepo.GetItemByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	if item.Status != models.ShoppingApproved {
		return fmt.Errorf("%w: cannot purchase a %s item", ErrInvalidTransition, item.Status)
	}

	if err := s.shoppingRepo.MarkPurchased(itemID, time.Now()); err != nil {
		return err
	}

	slog.Info("shopping item purchased", "item", itemID)
	return nil
}

// ListItems returns every shopping item
func (s *ShoppingService) ListItems() ([]models.ShoppingItem, error) {
	return s.shoppingRepo.ListItems()
}
