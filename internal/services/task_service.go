package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mohammad-ariqat/taskManager/internal/models"
	"github.com/mohammad-ariqat/taskManager/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleEmpty      = errors.New("title cannot be empty")
	ErrInvalidPriority = errors.New("priority must be one of low, medium, high")
	ErrInvalidStatus   = errors.New("status must be one of pending, in_progress, completed")
	ErrInvalidCategory = errors.New("category does not exist or does not belong to you")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo     repository.TaskRepository
	categoryRepo repository.CategoryRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, categoryRepo repository.CategoryRepository) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    models.TaskPriority
	CategoryID  *uint64
	UserID      uint64
}

// UpdateTaskInput represents input for updating a task. Pointer fields are
// applied only when set; the Clear flags distinguish an explicit null from
// an absent field.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	DueDate       *time.Time
	ClearDueDate  bool
	Priority      *models.TaskPriority
	Status        *models.TaskStatus
	CategoryID    *uint64
	ClearCategory bool
}

// ListTasks returns all tasks of one owner with the category resolved,
// ordered by due date ascending
func (s *TaskService) ListTasks(userID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask creates a new task. Status always starts at pending; the
// category, when given, must belong to the creating user.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if !input.Priority.IsValid() {
		return nil, ErrInvalidPriority
	}
	if err := s.ensureOwnCategory(input.CategoryID, input.UserID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    input.Priority,
		Status:      models.TaskStatusPending,
		CategoryID:  input.CategoryID,
		UserID:      input.UserID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Category")
}

// UpdateTask applies a partial update to an existing task. Fields left nil in
// the input stay untouched. The owner never changes.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.ClearCategory {
		task.CategoryID = nil
		task.Category = nil
	} else if input.CategoryID != nil {
		if err := s.ensureOwnCategory(input.CategoryID, task.UserID); err != nil {
			return nil, err
		}
		task.CategoryID = input.CategoryID
		task.Category = nil
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Category")
}

// UpdateTaskStatus writes only the status column, leaving every other field
// alone. All transitions between the three values are permitted.
func (s *TaskService) UpdateTaskStatus(taskID uint64, status models.TaskStatus) (*models.Task, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.UpdateStatus(taskID, status); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return s.taskRepo.FindByID(taskID, "Category")
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ensureOwnCategory verifies the referenced category exists and belongs to
// the owner. Missing and foreign categories answer identically so that the
// existence of other users' categories is not leaked.
func (s *TaskService) ensureOwnCategory(categoryID *uint64, userID uint64) error {
	if categoryID == nil {
		return nil
	}

	category, err := s.categoryRepo.FindByID(*categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCategory
		}
		return fmt.Errorf("failed to verify category: %w", err)
	}

	if category.UserID != userID {
		return ErrInvalidCategory
	}

	return nil
}
