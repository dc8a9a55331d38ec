package handlers

import (
	"encoding/json"
	"net/http"

	"choreboard/internal/models"
	"choreboard/internal/service"
)

// FamilyHandler exposes membership, the household name and the settings
type FamilyHandler struct {
	familyService *service.FamilyService
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(familyService *service.FamilyService) *FamilyHandler {
	return &FamilyHandler{familyService: familyService}
}

// ListUsers returns every family member
func (h *FamilyHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.familyService.ListUsers()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toUserResponses(users))
}

type userRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AddUser creates a family member and sends the invitation email
func (h *FamilyHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.familyService.AddUser(r.Context(), req.Name, req.Email, models.UserRole(req.Role))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, toUserResponse(user))
}

// UpdateUser edits a member's display name and role
func (h *FamilyHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.familyService.UpdateUser(id, req.Name, models.UserRole(req.Role)); err != nil {
		respondWithServiceError(w, err)
		return
	}

	user, err := h.familyService.GetUser(id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toUserResponse(user))
}

type avatarRequest struct {
	Avatar string `json:"avatar"`
}

// UpdateAvatar replaces a member's avatar reference. Members may change
// their own; managers may change anyone's.
func (h *FamilyHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	actor := GetUserFromContext(r.Context())
	id := r.PathValue("id")

	if id != actor.ID && !actor.IsManager() {
		respondWithError(w, http.StatusForbidden, "cannot change another member's avatar", nil)
		return
	}

	var req avatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.familyService.UpdateAvatar(id, req.Avatar); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveUser removes a member and their assigned tasks
func (h *FamilyHandler) RemoveUser(w http.ResponseWriter, r *http.Request) {
	actor := GetUserFromContext(r.Context())
	id := r.PathValue("id")

	if id == actor.ID {
		respondWithError(w, http.StatusConflict, "cannot remove yourself", nil)
		return
	}

	if err := h.familyService.RemoveUser(id); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSettings returns the family settings and household name
func (h *FamilyHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.familyService.Settings()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	familyName, err := h.familyService.FamilyName()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, SettingsResponse{
		RequireApproval:     settings.RequireApproval,
		EnableGamification:  settings.EnableGamification,
		EnableNotifications: settings.EnableNotifications,
		FamilyName:          familyName,
	})
}

type settingsRequest struct {
	RequireApproval     *bool   `json:"requireApproval"`
	EnableGamification  *bool   `json:"enableGamification"`
	EnableNotifications *bool   `json:"enableNotifications"`
	FamilyName          *string `json:"familyName"`
}

// UpdateSettings applies a partial settings update; omitted fields keep
// their current values
func (h *FamilyHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	settings, err := h.familyService.UpdateSettings(models.SettingsPatch{
		RequireApproval:     req.RequireApproval,
		EnableGamification:  req.EnableGamification,
		EnableNotifications: req.EnableNotifications,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	if req.FamilyName != nil {
		if err := h.familyService.SetFamilyName(*req.FamilyName); err != nil {
			respondWithServiceError(w, err)
			return
		}
	}

	familyName, err := h.familyService.FamilyName()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, SettingsResponse{
		RequireApproval:     settings.RequireApproval,
		EnableGamification:  settings.EnableGamification,
		EnableNotifications: settings.EnableNotifications,
		FamilyName:          familyName,
	})
}
