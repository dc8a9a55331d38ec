package handlers

import (
	"net/http"

	"choreboard/internal/repository"
	"choreboard/internal/views"
)

// InboxHandler exposes the managers' notification ledger and the badge count
type InboxHandler struct {
	notifRepo *repository.NotificationRepository
}

// NewInboxHandler creates a new inbox handler
func NewInboxHandler(notifRepo *repository.NotificationRepository) *InboxHandler {
	return &InboxHandler{notifRepo: notifRepo}
}

// List returns the notification ledger, newest first. Entries disappear
// when the related task or shopping item gets decided, so this is always
// the set of open approvals.
func (h *InboxHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifRepo.ListNotifications()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toNotificationResponses(notifications))
}

// MarkRead flags one notification as seen without resolving it
func (h *InboxHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	err := h.notifRepo.MarkRead(r.PathValue("id"))
	if err == repository.ErrNotFound {
		respondWithError(w, http.StatusNotFound, "notification not found", nil)
		return
	}
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type pendingCountResponse struct {
	Count int `json:"count"`
}

// PendingCount returns the approvals badge for the viewer. Members always
// get zero; the inbox belongs to the managers.
func (h *InboxHandler) PendingCount(w http.ResponseWriter, r *http.Request) {
	viewer := GetUserFromContext(r.Context())

	notifications, err := h.notifRepo.ListNotifications()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	count := views.PendingApprovalsCount(notifications, viewer)
	respondWithJSON(w, http.StatusOK, pendingCountResponse{Count: count})
}
