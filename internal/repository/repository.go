package repository

import (
	"time"

	"github.com/mohammad-ariqat/taskManager/internal/models"
)

// StatusCount is one row of a status breakdown.
type StatusCount struct {
	Status models.TaskStatus
	Count  int64
}

// PriorityCount is one row of a priority breakdown.
type PriorityCount struct {
	Priority models.TaskPriority `json:"priority"`
	Count    int64               `json:"count"`
}

// CategoryTaskCount is one row of the per-category breakdown. Count is a
// left-outer count: categories with no tasks appear with Count 0.
type CategoryTaskCount struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByUser returns all tasks of one owner with the category resolved,
	// ordered by due date ascending with missing due dates last
	ListByUser(userID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// UpdateStatus updates only the status column of a task
	UpdateStatus(id uint64, status models.TaskStatus) error

	// Delete removes a task
	Delete(id uint64) error

	// CountByStatus returns per-status counts for one owner
	CountByStatus(userID uint64) ([]StatusCount, error)

	// CountOverdue counts the owner's unfinished tasks due strictly before the cutoff
	CountOverdue(userID uint64, before time.Time) (int64, error)

	// CountDueBetween counts the owner's unfinished tasks due in [from, to)
	CountDueBetween(userID uint64, from, to time.Time) (int64, error)

	// CountByPriority returns per-priority counts for one owner,
	// only for priorities that occur
	CountByPriority(userID uint64) ([]PriorityCount, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(category *models.Category) error

	// FindByID finds a category by ID
	FindByID(id uint64) (*models.Category, error)

	// ListByUser returns all categories of one owner, ordered by name
	ListByUser(userID uint64) ([]models.Category, error)

	// Update updates a category
	Update(category *models.Category) error

	// Delete removes a category and clears the reference on its tasks;
	// the tasks themselves are kept
	Delete(id uint64) error

	// CountTasksPerCategory returns the owner's categories with their task
	// counts, including zero-task categories
	CountTasksPerCategory(userID uint64) ([]CategoryTaskCount, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// DeleteWithOwnedData removes a user together with all of their tasks
	// and categories within a single transaction
	DeleteWithOwnedData(id uint64) error
}
