package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"choreboard/internal/service"
	"choreboard/internal/validation"
)

func TestRespondWithServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "task not found", err: service.ErrTaskNotFound, wantStatus: http.StatusNotFound},
		{name: "user not found", err: service.ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "item not found", err: service.ErrItemNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid transition", err: service.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{name: "wrapped invalid transition", err: fmt.Errorf("%w: cannot approve a TODO task", service.ErrInvalidTransition), wantStatus: http.StatusConflict},
		{name: "email taken", err: service.ErrEmailTaken, wantStatus: http.StatusConflict},
		{name: "no schedule", err: service.ErrNoSchedule, wantStatus: http.StatusBadRequest},
		{name: "unknown email", err: service.ErrUnknownEmail, wantStatus: http.StatusUnauthorized},
		{name: "validation error", err: validation.ValidationError{Field: "title", Message: "title is required"}, wantStatus: http.StatusBadRequest},
		{name: "unexpected error", err: fmt.Errorf("disk on fire"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondWithServiceError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("response body is not JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("response must carry an error message")
			}
		})
	}
}

func TestValidationErrorCarriesField(t *testing.T) {
	rec := httptest.NewRecorder()
	respondWithServiceError(rec, validation.ValidationError{Field: "email", Message: "invalid email format"})

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("response body is not JSON: %v", err)
	}
	if body["field"] != "email" {
		t.Errorf("field = %q, want email", body["field"])
	}
}
