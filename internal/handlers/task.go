package handlers

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/mohammad-ariqat/taskManager/internal/dto"
	apierrors "github.com/mohammad-ariqat/taskManager/internal/errors"
	"github.com/mohammad-ariqat/taskManager/internal/filter"
	"github.com/mohammad-ariqat/taskManager/internal/middleware"
	"github.com/mohammad-ariqat/taskManager/internal/models"
	"github.com/mohammad-ariqat/taskManager/internal/services"
	"github.com/mohammad-ariqat/taskManager/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the owner's tasks ordered by due date, with optional
// status/priority/category facets applied to the materialized list.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	facets := filter.Facets{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
	}
	tasks = filter.Apply(tasks, facets)

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// GetTask returns a single task. The record is already loaded and
// ownership-checked by RequireTaskOwnership.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask creates a new task owned by the requester.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string  `json:"title" binding:"required,max=255"`
		Description string  `json:"description"`
		DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
		Priority    string  `json:"priority" binding:"required,oneof=low medium high"`
		CategoryID  *uint64 `json:"category_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	input := services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		CategoryID:  req.CategoryID,
		UserID:      userID,
	}

	if req.DueDate != nil {
		dueDate, err := utils.ParseDate(*req.DueDate)
		if err != nil {
			apierrors.BadRequestWithDetails(c, "Validation failed", map[string]string{
				"due_date": "must be a date in 2006-01-02 form",
			})
			return
		}
		input.DueDate = &dueDate
	}

	task, err := h.taskService.CreateTask(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. The raw JSON is inspected so that an
// explicit null (clear the due date or category) can be told apart from an
// absent field.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, fieldErrs := buildUpdateTaskInput(rawReq)
	if len(fieldErrs) > 0 {
		apierrors.BadRequestWithDetails(c, "Validation failed", fieldErrs)
		return
	}

	updated, err := h.taskService.UpdateTask(task.ID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// UpdateTaskStatus changes only the status field, for quick updates from a
// list view. Any of the three statuses may transition to any other.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required,oneof=pending in_progress completed"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	updated, err := h.taskService.UpdateTaskStatus(task.ID, models.TaskStatus(req.Status))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// buildUpdateTaskInput converts a raw partial-update payload into a typed
// input, collecting per-field messages for anything malformed.
func buildUpdateTaskInput(raw map[string]any) (services.UpdateTaskInput, map[string]string) {
	input := services.UpdateTaskInput{}
	fieldErrs := make(map[string]string)

	if value, ok := raw["title"]; ok {
		title, ok := value.(string)
		if !ok || title == "" {
			fieldErrs["title"] = "must be a non-empty string"
		} else if utf8.RuneCountInString(title) > 255 {
			fieldErrs["title"] = "must be at most 255 characters"
		} else {
			input.Title = &title
		}
	}

	if value, ok := raw["description"]; ok {
		description, ok := value.(string)
		if !ok {
			fieldErrs["description"] = "must be a string"
		} else {
			input.Description = &description
		}
	}

	if value, ok := raw["priority"]; ok {
		priorityStr, ok := value.(string)
		priority := models.TaskPriority(priorityStr)
		if !ok || !priority.IsValid() {
			fieldErrs["priority"] = "must be one of: low, medium, high"
		} else {
			input.Priority = &priority
		}
	}

	if value, ok := raw["status"]; ok {
		statusStr, ok := value.(string)
		status := models.TaskStatus(statusStr)
		if !ok || !status.IsValid() {
			fieldErrs["status"] = "must be one of: pending, in_progress, completed"
		} else {
			input.Status = &status
		}
	}

	if value, ok := raw["due_date"]; ok {
		if value == nil {
			input.ClearDueDate = true
		} else if dueDateStr, ok := value.(string); ok {
			dueDate, err := utils.ParseDate(dueDateStr)
			if err != nil {
				fieldErrs["due_date"] = "must be a date in 2006-01-02 form"
			} else {
				input.DueDate = &dueDate
			}
		} else {
			fieldErrs["due_date"] = "must be a date string or null"
		}
	}

	if value, ok := raw["category_id"]; ok {
		if value == nil {
			input.ClearCategory = true
		} else if idFloat, ok := value.(float64); ok && idFloat == float64(uint64(idFloat)) {
			id := uint64(idFloat)
			input.CategoryID = &id
		} else {
			fieldErrs["category_id"] = "must be a category ID or null"
		}
	}

	return input, fieldErrs
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired), errors.Is(err, services.ErrTitleEmpty):
		apierrors.BadRequestWithDetails(c, "Validation failed", map[string]string{"title": "this field is required"})
	case errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequestWithDetails(c, "Validation failed", map[string]string{"priority": "must be one of: low, medium, high"})
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequestWithDetails(c, "Validation failed", map[string]string{"status": "must be one of: pending, in_progress, completed"})
	case errors.Is(err, services.ErrInvalidCategory):
		apierrors.BadRequestWithDetails(c, "Validation failed", map[string]string{"category_id": err.Error()})
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
