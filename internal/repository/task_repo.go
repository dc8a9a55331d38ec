package repository

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"choreboard/internal/database"
	"choreboard/internal/models"
)

// TaskRepository handles database operations for task instances
type TaskRepository struct {
	db *database.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = "id, title, description, assignee_id, creator_id, visibility, status, due_date, due_time, completed_at, rule_id, recurrence, created_at"

// DB exposes the underlying handle so the service layer can open a
// transaction spanning tasks, users and notifications
func (r *TaskRepository) DB() *database.DB {
	return r.db
}

// InsertBatch inserts the generated task instances inside one transaction
func (r *TaskRepository) InsertBatch(tx *database.Tx, tasks []models.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range tasks {
		t := &tasks[i]
		_, err := tx.Exec(query,
			t.ID, t.Title, t.Description, t.AssigneeID, t.CreatorID,
			string(t.Visibility), string(t.Status), t.DueDate, t.DueTime,
			nullableTime(t.CompletedAt), t.RuleID, encodeRecurrence(t.Recurrence), t.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert task: %w", err)
		}
	}
	return nil
}

// GetTaskByID retrieves a single task instance, returning nil if not found
func (r *TaskRepository) GetTaskByID(id string) (*models.Task, error) {
	row := r.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// ListTasks retrieves every task instance, oldest first
func (r *TaskRepository) ListTasks() ([]models.Task, error) {
	rows, err := r.db.Query(`SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

// ListTasksByDueDate retrieves the task instances due on one calendar date
func (r *TaskRepository) ListTasksByDueDate(dueDate string) ([]models.Task, error) {
	rows, err := r.db.Query(`SELECT `+taskColumns+` FROM tasks WHERE due_date = ? ORDER BY due_time ASC, created_at ASC`, dueDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks by date: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

// DeleteTask removes exactly one instance by id, no cascade
func (r *TaskRepository) DeleteTask(id string) error {
	result, err := r.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRowAffected(result)
}

// HasRule reports whether any instance carries the given rule ID
func (r *TaskRepository) HasRule(ruleID string) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM tasks WHERE rule_id = ?", ruleID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check rule: %w", err)
	}
	return count > 0, nil
}

// DeleteTodoByRule removes the TODO instances of a rule inside the given
// transaction. Instances already waiting for approval or done are preserved.
func (r *TaskRepository) DeleteTodoByRule(tx *database.Tx, ruleID string) error {
	_, err := tx.Exec("DELETE FROM tasks WHERE rule_id = ? AND status = ?", ruleID, string(models.TaskTodo))
	if err != nil {
		return fmt.Errorf("failed to delete rule instances: %w", err)
	}
	return nil
}

// MarkCompleted sets the status and completion timestamp of one task
func (r *TaskRepository) MarkCompleted(tx *database.Tx, id string, status models.TaskStatus, completedAt time.Time) error {
	result, err := tx.Exec("UPDATE tasks SET status = ?, completed_at = ? WHERE id = ?", string(status), completedAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark task completed: %w", err)
	}
	return requireRowAffected(result)
}

// SetStatus updates only the status of one task
func (r *TaskRepository) SetStatus(tx *database.Tx, id string, status models.TaskStatus) error {
	result, err := tx.Exec("UPDATE tasks SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	return requireRowAffected(result)
}

// ResetToTodo reverts a task to TODO and clears its completion timestamp
func (r *TaskRepository) ResetToTodo(tx *database.Tx, id string) error {
	result, err := tx.Exec("UPDATE tasks SET status = ?, completed_at = NULL WHERE id = ?", string(models.TaskTodo), id)
	if err != nil {
		return fmt.Errorf("failed to reset task: %w", err)
	}
	return requireRowAffected(result)
}

func collectTasks(rows *sql.Rows) ([]models.Task, error) {
	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func scanTask(scan func(dest ...interface{}) error) (*models.Task, error) {
	var t models.Task
	var visibility, status, recurrence string
	var completedAt sql.NullTime
	err := scan(&t.ID, &t.Title, &t.Description, &t.AssigneeID, &t.CreatorID,
		&visibility, &status, &t.DueDate, &t.DueTime, &completedAt, &t.RuleID, &recurrence, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Visibility = models.TaskVisibility(visibility)
	t.Status = models.TaskStatus(status)
	if completedAt.Valid {
		ts := completedAt.Time
		t.CompletedAt = &ts
	}
	t.Recurrence = decodeRecurrence(recurrence)
	return &t, nil
}

// encodeRecurrence serializes weekday indices as a comma-separated list
func encodeRecurrence(days []int) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

// decodeRecurrence parses the stored weekday list; malformed entries are skipped
func decodeRecurrence(s string) []int {
	if s == "" {
		return nil
	}
	var days []int
	for _, part := range strings.Split(s, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	return days
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
