package handlers

import (
	"encoding/json"
	"net/http"

	"choreboard/internal/service"
)

// AuthHandler handles login, logout and the session probe
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email string `json:"email"`
}

// Login matches the email against the family roster and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, token, err := h.authService.Login(req.Email)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	setSessionCookie(w, token, h.authService.SessionTTL())
	respondWithJSON(w, http.StatusOK, toUserResponse(user))
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user behind the current session
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	respondWithJSON(w, http.StatusOK, toUserResponse(user))
}
