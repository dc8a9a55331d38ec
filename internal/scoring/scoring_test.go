package scoring

import (
	"testing"
	"time"

	"choreboard/internal/models"
)

func timestamp(t *testing.T, value string) *time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", value, err)
	}
	return &ts
}

func TestTaskPoints(t *testing.T) {
	tests := []struct {
		name string
		task models.Task
		want int
	}{
		{
			name: "todo task scores nothing",
			task: models.Task{Status: models.TaskTodo, DueDate: "2026-09-10"},
			want: 0,
		},
		{
			name: "done without timestamp falls back to base",
			task: models.Task{Status: models.TaskDone, DueDate: "2026-09-10"},
			want: 2,
		},
		{
			name: "done without time of day scores base",
			task: models.Task{
				Status: models.TaskDone, DueDate: "2026-09-10",
				CompletedAt: timestamp(t, "2026-09-10 08:00"),
			},
			want: 2,
		},
		{
			name: "completed one minute before due time earns bonus",
			task: models.Task{
				Status: models.TaskDone, DueDate: "2026-09-10", DueTime: "18:00",
				CompletedAt: timestamp(t, "2026-09-10 17:59"),
			},
			want: 3,
		},
		{
			name: "completed exactly at due time earns bonus",
			task: models.Task{
				Status: models.TaskDone, DueDate: "2026-09-10", DueTime: "18:00",
				CompletedAt: timestamp(t, "2026-09-10 18:00"),
			},
			want: 3,
		},
		{
			name: "completed one minute late scores base",
			task: models.Task{
				Status: models.TaskDone, DueDate: "2026-09-10", DueTime: "18:00",
				CompletedAt: timestamp(t, "2026-09-10 18:01"),
			},
			want: 2,
		},
		{
			name: "waiting approval counts provisionally",
			task: models.Task{
				Status: models.TaskWaitingApproval, DueDate: "2026-09-10", DueTime: "18:00",
				CompletedAt: timestamp(t, "2026-09-10 17:00"),
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TaskPoints(tt.task); got != tt.want {
				t.Errorf("TaskPoints() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMonthlyScores(t *testing.T) {
	users := []models.User{
		{ID: "u1", Name: "Carlos"},
		{ID: "u2", Name: "Lucas"},
		{ID: "u3", Name: "Julia"},
	}
	tasks := []models.Task{
		// Lucas: on-time (3) + late (2) in September
		{AssigneeID: "u2", Status: models.TaskDone, DueDate: "2026-09-05", DueTime: "18:00",
			CompletedAt: timestamp(t, "2026-09-05 17:30")},
		{AssigneeID: "u2", Status: models.TaskWaitingApproval, DueDate: "2026-09-06", DueTime: "12:00",
			CompletedAt: timestamp(t, "2026-09-06 13:00")},
		// Julia: base points in September
		{AssigneeID: "u3", Status: models.TaskDone, DueDate: "2026-09-07",
			CompletedAt: timestamp(t, "2026-09-07 09:00")},
		// Outside the month: ignored
		{AssigneeID: "u3", Status: models.TaskDone, DueDate: "2026-08-31",
			CompletedAt: timestamp(t, "2026-08-31 09:00")},
		// Not completed: ignored
		{AssigneeID: "u1", Status: models.TaskTodo, DueDate: "2026-09-08"},
	}

	scores := MonthlyScores(users, tasks, 2026, time.September)

	if len(scores) != 3 {
		t.Fatalf("expected all 3 users in the leaderboard, got %d", len(scores))
	}
	if scores[0].User.ID != "u2" || scores[0].TotalPoints != 5 || scores[0].TasksCompleted != 2 {
		t.Errorf("top row = %s/%d points/%d tasks, want u2/5/2",
			scores[0].User.ID, scores[0].TotalPoints, scores[0].TasksCompleted)
	}
	if scores[1].User.ID != "u3" || scores[1].TotalPoints != 2 {
		t.Errorf("second row = %s/%d points, want u3/2", scores[1].User.ID, scores[1].TotalPoints)
	}
	if scores[2].User.ID != "u1" || scores[2].TotalPoints != 0 {
		t.Errorf("zero-score user missing from leaderboard: %+v", scores[2])
	}
}

func TestMonthlyScoresTieBreak(t *testing.T) {
	users := []models.User{
		{ID: "u1", Name: "Zeca"},
		{ID: "u2", Name: "Ana"},
	}
	// Both earn 2 points from one task each; the tie breaks on name.
	tasks := []models.Task{
		{AssigneeID: "u1", Status: models.TaskDone, DueDate: "2026-09-05",
			CompletedAt: timestamp(t, "2026-09-05 10:00")},
		{AssigneeID: "u2", Status: models.TaskDone, DueDate: "2026-09-05",
			CompletedAt: timestamp(t, "2026-09-05 10:00")},
	}

	scores := MonthlyScores(users, tasks, 2026, time.September)
	if scores[0].User.Name != "Ana" {
		t.Errorf("tie should rank by name ascending, got %q first", scores[0].User.Name)
	}
}

func TestMonthlyScoresRecomputesAfterRejection(t *testing.T) {
	users := []models.User{{ID: "u1", Name: "Lucas"}}
	task := models.Task{
		AssigneeID: "u1", Status: models.TaskWaitingApproval, DueDate: "2026-09-05",
		CompletedAt: timestamp(t, "2026-09-05 10:00"),
	}

	before := MonthlyScores(users, []models.Task{task}, 2026, time.September)
	if before[0].TotalPoints != 2 {
		t.Fatalf("waiting task should count, got %d points", before[0].TotalPoints)
	}

	// Rejection reverts the task to TODO and clears the timestamp; the next
	// computation no longer counts it.
	task.Status = models.TaskTodo
	task.CompletedAt = nil
	after := MonthlyScores(users, []models.Task{task}, 2026, time.September)
	if after[0].TotalPoints != 0 {
		t.Errorf("rejected task still counted: %d points", after[0].TotalPoints)
	}
}
