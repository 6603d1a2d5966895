package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohammad-ariqat/taskManager/internal/dto"
	apierrors "github.com/mohammad-ariqat/taskManager/internal/errors"
	"github.com/mohammad-ariqat/taskManager/internal/middleware"
	"github.com/mohammad-ariqat/taskManager/internal/services"
)

// CategoryHandler coordinates category-related HTTP handlers.
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// ListCategories returns the owner's categories. Task creation forms consume
// this to populate the category picker.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	categories, err := h.categoryService.ListCategories(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": dto.ToCategoryDTOs(categories),
	})
}

// GetCategory returns a single category, loaded by RequireCategoryOwnership.
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, ok := middleware.GetCategory(c)
	if !ok {
		apierrors.InternalError(c, "Category not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(category))
}

// CreateCategory creates a new category owned by the requester.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateCategoryRequest struct {
		Name  string `json:"name" binding:"required,max=255"`
		Color string `json:"color" binding:"omitempty,hexcolor"`
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(services.CreateCategoryInput{
		Name:   req.Name,
		Color:  req.Color,
		UserID: userID,
	})
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category))
}

// UpdateCategory applies a partial update to a category.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	category, ok := middleware.GetCategory(c)
	if !ok {
		apierrors.InternalError(c, "Category not found in context")
		return
	}

	type UpdateCategoryRequest struct {
		Name  *string `json:"name" binding:"omitempty,min=1,max=255"`
		Color *string `json:"color" binding:"omitempty,hexcolor"`
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	updated, err := h.categoryService.UpdateCategory(category.ID, services.UpdateCategoryInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*updated))
}

// DeleteCategory removes a category. Tasks referencing it keep existing with
// the reference cleared.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	category, ok := middleware.GetCategory(c)
	if !ok {
		apierrors.InternalError(c, "Category not found in context")
		return
	}

	if err := h.categoryService.DeleteCategory(category.ID); err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully",
	})
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNameRequired), errors.Is(err, services.ErrNameEmpty):
		apierrors.BadRequestWithDetails(c, "Validation failed", map[string]string{"name": "this field is required"})
	case errors.Is(err, services.ErrCategoryNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
