package dto

import (
	"time"

	"github.com/mohammad-ariqat/taskManager/internal/models"
	"github.com/mohammad-ariqat/taskManager/internal/utils"
)

// TaskDTO represents a task in API responses. DueDate is rendered as a
// calendar date (YYYY-MM-DD) because the column carries no time component.
type TaskDTO struct {
	ID          uint64              `json:"id"`
	UserID      uint64              `json:"user_id"`
	CategoryID  *uint64             `json:"category_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDate     *string             `json:"due_date"`
	Priority    models.TaskPriority `json:"priority"`
	Status      models.TaskStatus   `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Category    *CategoryDTO        `json:"category,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		UserID:      task.UserID,
		CategoryID:  task.CategoryID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.DueDate != nil {
		due := utils.FormatDate(*task.DueDate)
		dto.DueDate = &due
	}

	// Include category if preloaded
	if task.Category != nil && task.Category.ID != 0 {
		category := ToCategoryDTO(*task.Category)
		dto.Category = &category
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
