package repository

import (
	"time"

	"github.com/mohammad-ariqat/taskManager/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByUser returns all tasks of one owner, due date ascending, NULL due dates last
func (r *GormTaskRepository) ListByUser(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Preload("Category").
		Where("user_id = ?", userID).
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// UpdateStatus updates only the status column of a task
func (r *GormTaskRepository) UpdateStatus(id uint64, status models.TaskStatus) error {
	return r.db.Model(&models.Task{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// CountByStatus returns per-status counts for one owner
func (r *GormTaskRepository) CountByStatus(userID uint64) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.Model(&models.Task{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// CountOverdue counts unfinished tasks due strictly before the cutoff
func (r *GormTaskRepository) CountOverdue(userID uint64, before time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("user_id = ?", userID).
		Where("status <> ?", models.TaskStatusCompleted).
		Where("due_date IS NOT NULL AND due_date < ?", before).
		Count(&count).Error
	return count, err
}

// CountDueBetween counts unfinished tasks due in [from, to)
func (r *GormTaskRepository) CountDueBetween(userID uint64, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("user_id = ?", userID).
		Where("status <> ?", models.TaskStatusCompleted).
		Where("due_date >= ? AND due_date < ?", from, to).
		Count(&count).Error
	return count, err
}

// CountByPriority returns per-priority counts, only for priorities that occur
func (r *GormTaskRepository) CountByPriority(userID uint64) ([]PriorityCount, error) {
	var counts []PriorityCount
	err := r.db.Model(&models.Task{}).
		Select("priority, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("priority").
		Order("priority").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
