package mapping

import (
	"github.com/kasirkita/pos_backend/internal/core/domain"
	"github.com/kasirkita/pos_backend/internal/models"
)

// ToModelCategory converts a domain.Category to its database model.
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID: d.CategoryID,
		Name:       d.Name,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
		DeletedAt:  d.DeletedAt,
	}
}

// ToDomainCategory converts a database model to a domain.Category.
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID: m.CategoryID,
		Name:       m.Name,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		DeletedAt:  m.DeletedAt,
	}
}

// ToDomainCategorySlice converts a slice of category models to domain categories.
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	categories := make([]domain.Category, len(ms))
	for i, m := range ms {
		categories[i] = ToDomainCategory(m)
	}
	return categories
}
