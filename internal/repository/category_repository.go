package repository

import (
	"github.com/mohammad-ariqat/taskManager/internal/models"
	"gorm.io/gorm"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create creates a new category
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// FindByID finds a category by ID
func (r *GormCategoryRepository) FindByID(id uint64) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListByUser returns all categories of one owner, ordered by name
func (r *GormCategoryRepository) ListByUser(userID uint64) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Update updates a category
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete removes a category after clearing the reference on its tasks.
// The tasks survive with category_id set to NULL.
func (r *GormCategoryRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Category{}, id).Error
	})
}

// CountTasksPerCategory returns the owner's categories with their task counts,
// left-joined so that zero-task categories still appear
func (r *GormCategoryRepository) CountTasksPerCategory(userID uint64) ([]CategoryTaskCount, error) {
	var counts []CategoryTaskCount
	err := r.db.Table("categories").
		Select("categories.id, categories.name, COUNT(tasks.id) AS count").
		Joins("LEFT JOIN tasks ON tasks.category_id = categories.id").
		Where("categories.user_id = ?", userID).
		Group("categories.id, categories.name").
		Order("categories.name ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
