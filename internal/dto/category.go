package dto

import (
	"time"

	"github.com/kasirkita/pos_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name *string `json:"name"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string    `json:"categoryID"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCategoryResponse converts a domain.Category to its response DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		CreatedAt:  c.CreatedAt,
	}
}

// ToCategoryResponses converts a slice of domain categories to response DTOs.
func ToCategoryResponses(categories []domain.Category) []CategoryResponse {
	resp := make([]CategoryResponse, len(categories))
	for i := range categories {
		resp[i] = ToCategoryResponse(&categories[i])
	}
	return resp
}
