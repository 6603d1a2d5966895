package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mohammad-ariqat/taskManager/internal/constants"
	"github.com/mohammad-ariqat/taskManager/internal/database"
	apierrors "github.com/mohammad-ariqat/taskManager/internal/errors"
	"github.com/mohammad-ariqat/taskManager/internal/models"
)

// RequireCategoryOwnership loads the category addressed by the :id parameter
// and verifies the requester owns it. Same contract as RequireTaskOwnership:
// 404 for unknown IDs, generic 403 for foreign ones.
func RequireCategoryOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryIDStr := c.Param("id")
		categoryID, err := strconv.ParseUint(categoryIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid category ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var category models.Category
		if err := database.GetDB().First(&category, categoryID).Error; err != nil {
			apierrors.NotFound(c, "Category not found")
			c.Abort()
			return
		}

		if category.UserID != userID {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCategory, category)
		c.Next()
	}
}

// GetCategory retrieves the category loaded by RequireCategoryOwnership from context
func GetCategory(c *gin.Context) (models.Category, bool) {
	categoryInterface, exists := c.Get(constants.ContextKeyCategory)
	if !exists {
		return models.Category{}, false
	}

	category, ok := categoryInterface.(models.Category)
	return category, ok
}
