package handlers

import (
	"encoding/json"
	"net/http"

	"choreboard/internal/models"
	"choreboard/internal/service"
	"choreboard/internal/views"
)

// TaskHandler exposes the task lifecycle and the task list views
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type taskRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	AssigneeID     string `json:"assigneeId"`
	Visibility     string `json:"visibility"`
	DueDate        string `json:"dueDate"`
	DueTime        string `json:"dueTime"`
	RecurrenceDays []int  `json:"recurrenceDays"`
}

func (req taskRequest) toParams() service.CreateTaskParams {
	return service.CreateTaskParams{
		Title:          req.Title,
		Description:    req.Description,
		AssigneeID:     req.AssigneeID,
		Visibility:     models.TaskVisibility(req.Visibility),
		DueDate:        req.DueDate,
		DueTime:        req.DueTime,
		RecurrenceDays: req.RecurrenceDays,
	}
}

// List returns the task instances the viewer may see. The view query
// parameter selects a screen: "mine" for the viewer's open tasks, "radar"
// for other people's open tasks; a date parameter selects one calendar day.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer := GetUserFromContext(r.Context())

	tasks, err := h.taskService.ListTasks()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	if date := r.URL.Query().Get("date"); date != "" {
		respondWithJSON(w, http.StatusOK, toTaskResponses(views.CalendarDay(tasks, viewer, date)))
		return
	}

	switch r.URL.Query().Get("view") {
	case "mine":
		tasks = views.MyTasks(tasks, viewer)
	case "radar":
		tasks = views.FamilyRadar(tasks, viewer)
	default:
		tasks = visibleTasks(tasks, viewer)
	}
	respondWithJSON(w, http.StatusOK, toTaskResponses(tasks))
}

// visibleTasks keeps the instances the viewer may see at all: own tasks
// always, everything for managers, public tasks otherwise
func visibleTasks(tasks []models.Task, viewer *models.User) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.AssigneeID == viewer.ID || viewer.IsManager() || t.Visibility == models.VisibilityPublic {
			out = append(out, t)
		}
	}
	return out
}

// Create generates the task instances for a due date or a weekday rule
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := GetUserFromContext(r.Context())

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	instances, err := h.taskService.Create(actor.ID, req.toParams())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, toTaskResponses(instances))
}

// UpdateRule replaces the open instances of a recurring rule
func (h *TaskHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	actor := GetUserFromContext(r.Context())
	ruleID := r.PathValue("ruleId")

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	instances, err := h.taskService.UpdateRule(actor.ID, ruleID, req.toParams())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toTaskResponses(instances))
}

// Delete removes one task instance
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.Delete(r.PathValue("id")); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Complete marks a task as finished by the acting user
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	actor := GetUserFromContext(r.Context())
	taskID := r.PathValue("id")

	if err := h.taskService.Complete(taskID, actor.ID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toTaskResponse(task))
}

// Approve finalizes a task waiting for approval
func (h *TaskHandler) Approve(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("id")
	if err := h.taskService.Approve(taskID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toTaskResponse(task))
}

// Reject sends a task waiting for approval back to TODO
func (h *TaskHandler) Reject(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("id")
	if err := h.taskService.Reject(taskID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toTaskResponse(task))
}
