// Package scoring derives monthly point totals from the task collection.
// Everything here is a pure function over a snapshot: scores are recomputed
// on every read and never stored, so a rejected task simply drops out of the
// next computation.
package scoring

import (
	"sort"
	"time"

	"choreboard/internal/models"
)

const (
	// BasePoints is awarded for any counted completion
	BasePoints = 2
	// OnTimePoints is awarded when the task had a time of day and was
	// completed at or before it
	OnTimePoints = 3
)

// UserScore is one row of the monthly leaderboard
type UserScore struct {
	User           models.User
	TotalPoints    int
	TasksCompleted int
}

// TaskPoints computes the points one task contributes.
//
// A task counts as soon as it reaches WAITING_APPROVAL: the points are
// provisionally earned at completion time, not at manager approval.
// A missing completion timestamp falls back to the base score rather than
// erroring, and a task without a time of day can never earn the bonus.
func TaskPoints(task models.Task) int {
	if task.Status != models.TaskDone && task.Status != models.TaskWaitingApproval {
		return 0
	}
	if task.CompletedAt == nil {
		return BasePoints
	}

	due, ok := task.DueInstant()
	if !ok {
		return BasePoints
	}
	if !task.CompletedAt.After(due) {
		return OnTimePoints
	}
	return BasePoints
}

// MonthlyScores computes the leaderboard for one month. Every user appears,
// including those with zero points. Ordering: points descending, then tasks
// completed descending, then name ascending so equal scores rank
// deterministically.
func MonthlyScores(users []models.User, tasks []models.Task, year int, month time.Month) []UserScore {
	counted := make(map[string][]models.Task)
	for _, t := range tasks {
		if t.Status != models.TaskDone && t.Status != models.TaskWaitingApproval {
			continue
		}
		if !inMonth(t.DueDate, year, month) {
			continue
		}
		counted[t.AssigneeID] = append(counted[t.AssigneeID], t)
	}

	scores := make([]UserScore, 0, len(users))
	for _, u := range users {
		score := UserScore{User: u}
		for _, t := range counted[u.ID] {
			score.TotalPoints += TaskPoints(t)
			score.TasksCompleted++
		}
		scores = append(scores, score)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].TotalPoints != scores[j].TotalPoints {
			return scores[i].TotalPoints > scores[j].TotalPoints
		}
		if scores[i].TasksCompleted != scores[j].TasksCompleted {
			return scores[i].TasksCompleted > scores[j].TasksCompleted
		}
		return scores[i].User.Name < scores[j].User.Name
	})

	return scores
}

// inMonth reports whether a DateLayout date falls in the given month
func inMonth(dueDate string, year int, month time.Month) bool {
	d, err := time.ParseInLocation(models.DateLayout, dueDate, time.Local)
	if err != nil {
		return false
	}
	return d.Year() == year && d.Month() == month
}
