package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kasirkita/pos_backend/internal/apperrors"
	"github.com/kasirkita/pos_backend/internal/core/domain"
	portsrepo "github.com/kasirkita/pos_backend/internal/core/ports/repositories"
	portssvc "github.com/kasirkita/pos_backend/internal/core/ports/services"
	"github.com/kasirkita/pos_backend/internal/dto"
	"github.com/kasirkita/pos_backend/internal/middleware"
)

type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// CreateCategory creates a new category with a unique name.
func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.checkNameAvailable(ctx, req.Name, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID), slog.String("name", category.Name))
	return &category, nil
}

// ListCategories retrieves all categories.
func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list categories", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory updates the provided fields of an existing category.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.DeletedAt != nil {
		return nil, apperrors.NewNotFoundError("category not found")
	}

	if req.Name != nil && *req.Name != category.Name {
		if err := s.checkNameAvailable(ctx, *req.Name, categoryID); err != nil {
			return nil, err
		}
		category.Name = *req.Name
	}
	category.UpdatedAt = time.Now().UTC()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Error("Failed to update category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	logger.Info("Category updated", slog.String("category_id", categoryID))
	return category, nil
}

// DeleteCategory soft-deletes a category. Its products keep their reference.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.DeletedAt != nil {
		return apperrors.NewNotFoundError("category not found")
	}

	if err := s.categoryRepo.SoftDeleteCategory(ctx, categoryID, time.Now().UTC()); err != nil {
		logger.Error("Failed to delete category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return fmt.Errorf("failed to delete category: %w", err)
	}

	logger.Info("Category deleted", slog.String("category_id", categoryID))
	return nil
}

func (s *categoryService) checkNameAvailable(ctx context.Context, name string, excludeID string) error {
	_, err := s.categoryRepo.FindCategoryByName(ctx, name, excludeID)
	if err == nil {
		return fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, name)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to check category name uniqueness", slog.String("error", err.Error()))
		return fmt.Errorf("failed to check category name uniqueness: %w", err)
	}
	return nil
}
