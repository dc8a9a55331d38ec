package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"choreboard/internal/service"
	"choreboard/internal/validation"
)

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg string, err error) {
	if err != nil {
		slog.Error(userMsg, "error", err)
	}
	respondWithJSON(w, status, map[string]string{"error": userMsg})
}

// respondWithServiceError maps the service layer's typed errors onto HTTP
// statuses so handlers don't repeat the switch
func respondWithServiceError(w http.ResponseWriter, err error) {
	var validationErr validation.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondWithJSON(w, http.StatusBadRequest, map[string]string{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
	case errors.Is(err, service.ErrNoSchedule):
		respondWithError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrRuleNotFound):
		respondWithError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrEmailTaken):
		respondWithError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, service.ErrUnknownEmail):
		respondWithError(w, http.StatusUnauthorized, err.Error(), nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error", err)
	}
}
