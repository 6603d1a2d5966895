package dto

import (
	"math"

	"github.com/mohammad-ariqat/taskManager/internal/models"
)

// TaskStats holds the status/deadline counters shown on the dashboard.
type TaskStats struct {
	Total          int64 `json:"total"`
	Completed      int64 `json:"completed"`
	InProgress     int64 `json:"in_progress"`
	Pending        int64 `json:"pending"`
	Overdue        int64 `json:"overdue"`
	DueToday       int64 `json:"due_today"`
	CompletionRate int   `json:"completion_rate"`
}

// CategoryStat is the per-category task count. Categories with no tasks are
// present with a zero count.
type CategoryStat struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// PriorityStat is the per-priority task count; only priorities that actually
// occur are listed.
type PriorityStat struct {
	Priority models.TaskPriority `json:"priority"`
	Count    int64               `json:"count"`
}

// DashboardStats is the payload of GET /api/dashboard/stats.
type DashboardStats struct {
	TaskStats     TaskStats      `json:"taskStats"`
	CategoryStats []CategoryStat `json:"categoryStats"`
	PriorityStats []PriorityStat `json:"priorityStats"`
}

// CompletionRate returns the completed share as a rounded percentage.
// A total of zero yields zero, never a division error.
func CompletionRate(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
