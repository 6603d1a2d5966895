package dto

import (
	"time"

	"github.com/mohammad-ariqat/taskManager/internal/models"
)

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCategoryDTO converts a Category model to CategoryDTO
func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// ToCategoryDTOs converts a slice of categories
func ToCategoryDTOs(categories []models.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		dtos[i] = ToCategoryDTO(category)
	}
	return dtos
}
