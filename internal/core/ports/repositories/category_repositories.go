package repositories

import (
	"context"
	"time"

	"github.com/kasirkita/pos_backend/internal/core/domain"
)

// CategoryReader defines read operations for category data.
type CategoryReader interface {
	// FindCategoryByID retrieves a category by id, including soft-deleted ones.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// FindCategoryByName retrieves a non-deleted category by case-insensitive name.
	FindCategoryByName(ctx context.Context, name string, excludeID string) (*domain.Category, error)

	// ListCategories retrieves all non-deleted categories.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data.
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory updates an existing category's details.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// SoftDeleteCategory marks a category as deleted.
	SoftDeleteCategory(ctx context.Context, categoryID string, now time.Time) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces.
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
