package services

import (
	"errors"
	"fmt"

	"github.com/mohammad-ariqat/taskManager/internal/constants"
	"github.com/mohammad-ariqat/taskManager/internal/models"
	"github.com/mohammad-ariqat/taskManager/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrNameRequired     = errors.New("name is required")
	ErrNameEmpty        = errors.New("name cannot be empty")
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

// CreateCategoryInput represents input for creating a category
type CreateCategoryInput struct {
	Name   string
	Color  string
	UserID uint64
}

// UpdateCategoryInput represents input for updating a category
type UpdateCategoryInput struct {
	Name  *string
	Color *string
}

// ListCategories returns all categories of one owner
func (s *CategoryService) ListCategories(userID uint64) ([]models.Category, error) {
	categories, err := s.categoryRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory creates a new category, falling back to the default color
func (s *CategoryService) CreateCategory(input CreateCategoryInput) (*models.Category, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	color := input.Color
	if color == "" {
		color = constants.DefaultCategoryColor
	}

	category := &models.Category{
		Name:   input.Name,
		Color:  color,
		UserID: input.UserID,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// UpdateCategory applies a partial update to an existing category
func (s *CategoryService) UpdateCategory(categoryID uint64, input UpdateCategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrNameEmpty
		}
		category.Name = *input.Name
	}
	if input.Color != nil {
		category.Color = *input.Color
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeleteCategory removes a category; tasks referencing it survive with the
// reference cleared
func (s *CategoryService) DeleteCategory(categoryID uint64) error {
	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to find category: %w", err)
	}

	if err := s.categoryRepo.Delete(categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
