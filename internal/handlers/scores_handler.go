package handlers

import (
	"net/http"
	"strconv"
	"time"

	"choreboard/internal/scoring"
	"choreboard/internal/service"
)

// ScoresHandler exposes the monthly leaderboard
type ScoresHandler struct {
	familyService *service.FamilyService
	taskService   *service.TaskService
}

// NewScoresHandler creates a new scores handler
func NewScoresHandler(familyService *service.FamilyService, taskService *service.TaskService) *ScoresHandler {
	return &ScoresHandler{familyService: familyService, taskService: taskService}
}

// Monthly computes the leaderboard for one month, defaulting to the current
// one. Scores are derived fresh on every call, so a rejected task drops out
// of the ranking immediately.
func (h *ScoresHandler) Monthly(w http.ResponseWriter, r *http.Request) {
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

	users, err := h.familyService.ListUsers()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	tasks, err := h.taskService.ListTasks()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	scores := scoring.MonthlyScores(users, tasks, year, month)
	respondWithJSON(w, http.StatusOK, toScoreResponses(scores))
}
