package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mohammad-ariqat/taskManager/internal/constants"
	"github.com/mohammad-ariqat/taskManager/internal/database"
	apierrors "github.com/mohammad-ariqat/taskManager/internal/errors"
	"github.com/mohammad-ariqat/taskManager/internal/models"
)

// RequireTaskOwnership loads the task addressed by the :id parameter and
// verifies the requester owns it. Unknown IDs answer 404; an owner mismatch
// answers a generic 403 without revealing anything about the record.
func RequireTaskOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().
			Preload("Category").
			First(&task, taskID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		if task.UserID != userID {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetTask retrieves the task loaded by RequireTaskOwnership from context
func GetTask(c *gin.Context) (models.Task, bool) {
	taskInterface, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}

	task, ok := taskInterface.(models.Task)
	return task, ok
}
