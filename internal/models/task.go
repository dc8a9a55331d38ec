package models

import "time"

// TaskStatus tracks a task through its approval lifecycle
type TaskStatus string

const (
	TaskTodo            TaskStatus = "TODO"
	TaskWaitingApproval TaskStatus = "WAITING_APPROVAL"
	TaskDone            TaskStatus = "DONE"
)

// TaskVisibility controls who can see a task besides the assignee and managers
type TaskVisibility string

const (
	VisibilityPublic   TaskVisibility = "PUBLIC"
	VisibilityPersonal TaskVisibility = "PERSONAL"
)

// IsValid checks whether the visibility is one of the known values
func (v TaskVisibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityPersonal
}

// DateLayout is the wire format for calendar dates (no time component)
const DateLayout = "2006-01-02"

// TimeLayout is the wire format for the optional time-of-day field
const TimeLayout = "15:04"

// Task is a single dated task instance. Recurring rules never exist as
// standalone entities at this level: creating a recurring task expands the
// weekday rule into one Task per matching date, all sharing a RuleID so the
// batch can be edited or replaced as a group later.
type Task struct {
	ID          string
	Title       string
	Description string
	AssigneeID  string
	CreatorID   string
	Visibility  TaskVisibility
	Status      TaskStatus
	DueDate     string // DateLayout; always set, instances are date-bound
	DueTime     string // TimeLayout; empty when the task has no time of day
	CompletedAt *time.Time
	RuleID      string // shared by all instances generated from one creation
	Recurrence  []int  // weekday indices (0=Sunday..6=Saturday) of the rule, nil for single-date tasks
	CreatedAt   time.Time
}

// IsRecurring reports whether this instance was generated by a weekday rule
func (t *Task) IsRecurring() bool {
	return len(t.Recurrence) > 0
}

// DueInstant combines DueDate and DueTime into a local-time instant.
// The second return value is false when the task has no time of day or the
// stored date is malformed.
func (t *Task) DueInstant() (time.Time, bool) {
	if t.DueTime == "" {
		return time.Time{}, false
	}
	due, err := time.ParseInLocation(DateLayout+" "+TimeLayout, t.DueDate+" "+t.DueTime, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}
