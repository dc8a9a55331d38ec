package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"choreboard/internal/service"
	"choreboard/internal/views"
)

// ShoppingHandler exposes the shared shopping list
type ShoppingHandler struct {
	shoppingService *service.ShoppingService
}

// NewShoppingHandler creates a new shopping handler
func NewShoppingHandler(shoppingService *service.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{shoppingService: shoppingService}
}

type shoppingMonthResponse struct {
	Year      int                    `json:"year"`
	Month     int                    `json:"month"`
	Pending   []ShoppingItemResponse `json:"pending"`
	Approved  []ShoppingItemResponse `json:"approved"`
	Purchased []ShoppingItemResponse `json:"purchased"`
}

// List returns the month view of the shopping list. Year and month default
// to the current month; active items only ever show under the real current
// month, purchased items under the month they were bought in.
func (h *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid year", nil)
			return
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			respondWithError(w, http.StatusBadRequest, "invalid month", nil)
			return
		}
		month = time.Month(parsed)
	}

	items, err := h.shoppingService.ListItems()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	view := views.ShoppingByMonth(items, year, month, now)
	respondWithJSON(w, http.StatusOK, shoppingMonthResponse{
		Year:      year,
		Month:     int(month),
		Pending:   toShoppingItemResponses(view.Pending),
		Approved:  toShoppingItemResponses(view.Approved),
		Purchased: toShoppingItemResponses(view.Purchased),
	})
}

type addItemRequest struct {
	Name string `json:"name"`
}

// Add creates a shopping item suggested by the acting user
func (h *ShoppingHandler) Add(w http.ResponseWriter, r *http.Request) {
	actor := GetUserFromContext(r.Context())

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	item, err := h.shoppingService.Add(actor.ID, req.Name)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, toShoppingItemResponse(item))
}

// Approve accepts a pending suggestion
func (h *ShoppingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if err := h.shoppingService.Approve(r.PathValue("id")); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reject declines a pending suggestion
func (h *ShoppingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if err := h.shoppingService.Reject(r.PathValue("id")); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Purchase marks an approved item as bought
func (h *ShoppingHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	if err := h.shoppingService.MarkPurchased(r.PathValue("id")); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
