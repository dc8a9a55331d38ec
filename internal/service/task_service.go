package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"choreboard/internal/models"
	"choreboard/internal/repository"
	"choreboard/internal/validation"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNoSchedule        = errors.New("either a due date or recurrence days are required")
	ErrRuleNotFound      = errors.New("no editable instances found for rule")
)

// recurrenceWindowDays is the fixed forward window a weekday rule expands
// into, counted from today inclusive
const recurrenceWindowDays = 14

// CreateTaskParams are the caller-supplied fields for creating a task or a
// recurring rule. Exactly one of DueDate / RecurrenceDays must be set; when
// both are present the due date wins and the recurrence is ignored.
type CreateTaskParams struct {
	Title          string
	Description    string
	AssigneeID     string
	Visibility     models.TaskVisibility
	DueDate        string // models.DateLayout
	DueTime        string // models.TimeLayout, optional
	RecurrenceDays []int  // weekday indices, 0=Sunday..6=Saturday
}

// TaskService drives the task lifecycle: creation and rule expansion,
// completion, approval and rejection, and the star award
type TaskService struct {
	taskRepo     *repository.TaskRepository
	userRepo     *repository.UserRepository
	notifRepo    *repository.NotificationRepository
	settingsRepo *repository.SettingsRepository
}

// NewTaskService creates a new task service
func NewTaskService(
	taskRepo *repository.TaskRepository,
	userRepo *repository.UserRepository,
	notifRepo *repository.NotificationRepository,
	settingsRepo *repository.SettingsRepository,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		userRepo:     userRepo,
		notifRepo:    notifRepo,
		settingsRepo: settingsRepo,
	}
}

// Create validates the params and appends the generated TODO instances.
// A single due date yields one instance; a weekday set yields one instance
// per matching day in the forward window, all sharing a fresh rule ID.
func (s *TaskService) Create(actorID string, params CreateTaskParams) ([]models.Task, error) {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return nil, err
	}

	if err := validateTaskParams(params); err != nil {
		return nil, err
	}

	instances, err := expandInstances(actor.ID, params, time.Now())
	if err != nil {
		return nil, err
	}

	tx, err := s.taskRepo.DB().Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.taskRepo.InsertBatch(tx, instances); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("tasks created", "title", params.Title, "instances", len(instances), "creator", actor.ID)
	return instances, nil
}

// UpdateRule replaces the future portion of a rule: its TODO instances are
// deleted and a fresh batch is generated from the new params under a new
// rule ID. Instances already waiting for approval or done keep the old rule
// ID and are untouched, so completed history survives the edit.
func (s *TaskService) UpdateRule(actorID, ruleID string, params CreateTaskParams) ([]models.Task, error) {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return nil, err
	}
	if err := validateTaskParams(params); err != nil {
		return nil, err
	}

	exists, err := s.taskRepo.HasRule(ruleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRuleNotFound
	}

	instances, err := expandInstances(actor.ID, params, time.Now())
	if err != nil {
		return nil, err
	}

	tx, err := s.taskRepo.DB().Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.taskRepo.DeleteTodoByRule(tx, ruleID); err != nil {
		return nil, err
	}
	if err := s.taskRepo.InsertBatch(tx, instances); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("task rule updated", "old_rule", ruleID, "new_rule", instances[0].RuleID, "instances", len(instances))
	return instances, nil
}

// Delete removes exactly one instance. No cascade: sibling instances of the
// same rule stay in place.
func (s *TaskService) Delete(taskID string) error {
	err := s.taskRepo.DeleteTask(taskID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTaskNotFound
	}
	return err
}

// Complete marks a TODO task as finished by the acting user. When the
// family requires approval the task parks in WAITING_APPROVAL and a
// notification is appended for the managers; otherwise it finalizes to DONE
// immediately. Only TODO tasks can be completed.
func (s *TaskService) Complete(taskID, actorID string) error {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return err
	}

	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrTaskNotFound
	}
	if task.Status != models.TaskTodo {
		return fmt.Errorf("%w: cannot complete a %s task", ErrInvalidTransition, task.Status)
	}

	settings, err := s.settingsRepo.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	now := time.Now()
	tx, err := s.taskRepo.DB().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if settings.RequireApproval {
		if err := s.taskRepo.MarkCompleted(tx, taskID, models.TaskWaitingApproval, now); err != nil {
			return err
		}
		message := fmt.Sprintf("%s completou: %s", actor.Name, task.Title)
		if _, err := s.notifRepo.CreateNotification(tx, message, models.NotifTaskApproval, taskID); err != nil {
			return err
		}
	} else {
		if err := s.taskRepo.MarkCompleted(tx, taskID, models.TaskDone, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("task completed", "task", taskID, "actor", actor.ID, "requires_approval", settings.RequireApproval)
	return nil
}

// Approve finalizes a WAITING_APPROVAL task. The status change, the
// notification removal and the star award land in one transaction, so a
// reader can never see an approved task with its notification still
// pending. Approving anything but a WAITING_APPROVAL task fails, which also
// makes a repeated approve incapable of double-awarding stars.
func (s *TaskService) Approve(taskID string) error {
	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrTaskNotFound
	}
	if task.Status != models.TaskWaitingApproval {
		return fmt.Errorf("%w: cannot approve a %s task", ErrInvalidTransition, task.Status)
	}

	settings, err := s.settingsRepo.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	tx, err := s.taskRepo.DB().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.taskRepo.SetStatus(tx, taskID, models.TaskDone); err != nil {
		return err
	}
	if err := s.notifRepo.DeleteByRelatedID(tx, taskID); err != nil {
		return err
	}
	if settings.EnableGamification {
		if err := s.userRepo.IncrementStars(tx, task.AssigneeID); err != nil {
			// The assignee may have been removed since completion; the
			// approval itself still stands.
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("task approved", "task", taskID, "assignee", task.AssigneeID)
	return nil
}

// Reject reverts a WAITING_APPROVAL task to TODO, clearing its completion
// timestamp and removing the pending notification. No star penalty.
func (s *TaskService) Reject(taskID string) error {
	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrTaskNotFound
	}
	if task.Status != models.TaskWaitingApproval {
		return fmt.Errorf("%w: cannot reject a %s task", ErrInvalidTransition, task.Status)
	}

	tx, err := s.taskRepo.DB().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.taskRepo.ResetToTodo(tx, taskID); err != nil {
		return err
	}
	if err := s.notifRepo.DeleteByRelatedID(tx, taskID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("task rejected", "task", taskID)
	return nil
}

// ListTasks returns every task instance
func (s *TaskService) ListTasks() ([]models.Task, error) {
	return s.taskRepo.ListTasks()
}

// GetTask returns one task instance
func (s *TaskService) GetTask(taskID string) (*models.Task, error) {
	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) requireUser(id string) (*models.User, error) {
	if id == "" {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func validateTaskParams(params CreateTaskParams) error {
	if err := validation.ValidateTitle("title", params.Title); err != nil {
		return err
	}
	if !params.Visibility.IsValid() {
		return validation.ValidationError{Field: "visibility", Message: "visibility must be PUBLIC or PERSONAL"}
	}
	if params.AssigneeID == "" {
		return validation.ValidationError{Field: "assigneeId", Message: "assignee is required"}
	}
	if err := validation.ValidateTimeOfDay(params.DueTime); err != nil {
		return err
	}
	if params.DueDate != "" {
		return validation.ValidateDate(params.DueDate)
	}
	if len(params.RecurrenceDays) == 0 {
		return ErrNoSchedule
	}
	return validation.ValidateWeekdays(params.RecurrenceDays)
}

// expandInstances turns the creation params into dated TODO instances.
// A due date produces a batch of one; a weekday set produces one instance
// per matching calendar day in the window starting at now's date.
func expandInstances(creatorID string, params CreateTaskParams, now time.Time) ([]models.Task, error) {
	ruleID := uuid.New().String()
	base := models.Task{
		Title:       params.Title,
		Description: params.Description,
		AssigneeID:  params.AssigneeID,
		CreatorID:   creatorID,
		Visibility:  params.Visibility,
		Status:      models.TaskTodo,
		DueTime:     params.DueTime,
		RuleID:      ruleID,
		CreatedAt:   now,
	}

	if params.DueDate != "" {
		t := base
		t.ID = uuid.New().String()
		t.DueDate = params.DueDate
		return []models.Task{t}, nil
	}

	wanted := make(map[int]bool, len(params.RecurrenceDays))
	for _, d := range params.RecurrenceDays {
		wanted[d] = true
	}

	var instances []models.Task
	for i := 0; i < recurrenceWindowDays; i++ {
		day := now.AddDate(0, 0, i)
		if !wanted[int(day.Weekday())] {
			continue
		}
		t := base
		t.ID = uuid.New().String()
		t.DueDate = day.Format(models.DateLayout)
		t.Recurrence = append([]int(nil), params.RecurrenceDays...)
		instances = append(instances, t)
	}

	if len(instances) == 0 {
		// A non-empty weekday set always matches within 14 days; reaching
		// here means the set was empty after validation.
		return nil, ErrNoSchedule
	}
	return instances, nil
}
