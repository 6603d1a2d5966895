package services

import (
	"fmt"
	"time"

	"github.com/mohammad-ariqat/taskManager/internal/dto"
	"github.com/mohammad-ariqat/taskManager/internal/models"
	"github.com/mohammad-ariqat/taskManager/internal/repository"
	"github.com/mohammad-ariqat/taskManager/internal/utils"
)

// StatsService derives the dashboard snapshot from current storage state.
// Every call re-reads the store; there is no caching layer.
type StatsService struct {
	taskRepo     repository.TaskRepository
	categoryRepo repository.CategoryRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(taskRepo repository.TaskRepository, categoryRepo repository.CategoryRepository) *StatsService {
	return &StatsService{
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
	}
}

// DashboardStats computes the owner-scoped statistics snapshot at the given
// instant. Overdue and due-today are disjoint: overdue means due before
// today's midnight, due-today means due within the current calendar day, and
// completed tasks count in neither.
func (s *StatsService) DashboardStats(userID uint64, now time.Time) (*dto.DashboardStats, error) {
	statusCounts, err := s.taskRepo.CountByStatus(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by status: %w", err)
	}

	taskStats := dto.TaskStats{}
	for _, sc := range statusCounts {
		taskStats.Total += sc.Count
		switch sc.Status {
		case models.TaskStatusCompleted:
			taskStats.Completed = sc.Count
		case models.TaskStatusInProgress:
			taskStats.InProgress = sc.Count
		case models.TaskStatusPending:
			taskStats.Pending = sc.Count
		}
	}

	startOfToday := utils.StartOfDay(now)
	endOfToday := utils.EndOfDay(now)

	overdue, err := s.taskRepo.CountOverdue(userID, startOfToday)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue tasks: %w", err)
	}
	taskStats.Overdue = overdue

	dueToday, err := s.taskRepo.CountDueBetween(userID, startOfToday, endOfToday)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks due today: %w", err)
	}
	taskStats.DueToday = dueToday

	taskStats.CompletionRate = dto.CompletionRate(taskStats.Completed, taskStats.Total)

	categoryCounts, err := s.categoryRepo.CountTasksPerCategory(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks per category: %w", err)
	}
	categoryStats := make([]dto.CategoryStat, len(categoryCounts))
	for i, cc := range categoryCounts {
		categoryStats[i] = dto.CategoryStat{
			ID:    cc.ID,
			Name:  cc.Name,
			Count: cc.Count,
		}
	}

	priorityCounts, err := s.taskRepo.CountByPriority(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by priority: %w", err)
	}
	priorityStats := make([]dto.PriorityStat, len(priorityCounts))
	for i, pc := range priorityCounts {
		priorityStats[i] = dto.PriorityStat{
			Priority: pc.Priority,
			Count:    pc.Count,
		}
	}

	return &dto.DashboardStats{
		TaskStats:     taskStats,
		CategoryStats: categoryStats,
		PriorityStats: priorityStats,
	}, nil
}
