package services

import (
	"context"

	"github.com/kasirkita/pos_backend/internal/core/domain"
	"github.com/kasirkita/pos_backend/internal/dto"
)

// CategorySvcFacade defines the admin category management operations.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// ProductSvcFacade defines the admin product management operations plus the
// read side of the stock audit trail.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, params dto.ListProductsParams) (*dto.ListProductsResponse, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	ListStockHistories(ctx context.Context, params dto.ListStockHistoriesParams) (*dto.ListStockHistoriesResponse, error)
}
