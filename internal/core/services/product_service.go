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

// Audit reasons for stock movements made outside the sale lifecycle.
const (
	stockReasonInitial      = "Initial stock"
	stockReasonManualUpdate = "Manual update by Admin"
)

type productService struct {
	productRepo  portsrepo.ProductRepositoryWithTx
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductRepositoryWithTx, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

// CreateProduct creates a new product and records its initial stock in the
// audit trail. The product row and the audit row land atomically.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.checkCategoryExists(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if err := s.checkNameAvailable(ctx, req.Name, req.CategoryID, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:  uuid.NewString(),
		Name:       req.Name,
		Price:      req.Price,
		Stock:      req.Stock,
		CategoryID: req.CategoryID,
		ImageURL:   req.ImageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	initial := domain.StockAdjustment{
		ProductID: product.ProductID,
		Change:    req.Stock,
		Reason:    stockReasonInitial,
	}
	if err := s.productRepo.SaveProduct(ctx, product, initial); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("name", product.Name))
	return &product, nil
}

// GetProductByID retrieves a non-deleted product.
func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.IsDeleted() {
		return nil, apperrors.NewNotFoundError("product not found")
	}
	return product, nil
}

// ListProducts retrieves a filtered, paginated page of products.
func (s *productService) ListProducts(ctx context.Context, params dto.ListProductsParams) (*dto.ListProductsResponse, error) {
	filter := domain.ProductFilter{
		Search:     params.Search,
		CategoryID: params.CategoryID,
		Sort:       params.Sort,
		Page:       params.Page,
		PageSize:   params.PageSize,
	}

	products, total, err := s.productRepo.ListProducts(ctx, filter)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list products", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &dto.ListProductsResponse{
		Products: dto.ToProductResponses(products),
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

// UpdateProduct updates the provided fields. A stock change goes through the
// audited adjustment path so the ledger accounts for every unit.
func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		if err := s.checkCategoryExists(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil && *req.Name != product.Name {
		if err := s.checkNameAvailable(ctx, *req.Name, product.CategoryID, productID); err != nil {
			return nil, err
		}
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}

	var adjustment *domain.StockAdjustment
	if req.Stock != nil && *req.Stock != product.Stock {
		adjustment = &domain.StockAdjustment{
			ProductID: productID,
			Change:    *req.Stock - product.Stock,
			Reason:    stockReasonManualUpdate,
		}
		product.Stock = *req.Stock
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.productRepo.UpdateProduct(ctx, *product, adjustment); err != nil {
		logger.Error("Failed to update product", slog.String("error", err.Error()), slog.String("product_id", productID))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	logger.Info("Product updated", slog.String("product_id", productID), slog.Bool("stock_adjusted", adjustment != nil))
	return product, nil
}

// DeleteProduct soft-deletes a product so historical transaction items keep
// resolving their product reference.
func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetProductByID(ctx, productID); err != nil {
		return err
	}

	if err := s.productRepo.SoftDeleteProduct(ctx, productID, time.Now().UTC()); err != nil {
		logger.Error("Failed to delete product", slog.String("error", err.Error()), slog.String("product_id", productID))
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logger.Info("Product deleted", slog.String("product_id", productID))
	return nil
}

// ListStockHistories retrieves a filtered page of the stock audit trail.
func (s *productService) ListStockHistories(ctx context.Context, params dto.ListStockHistoriesParams) (*dto.ListStockHistoriesResponse, error) {
	filter := domain.StockHistoryFilter{
		ProductID: params.ProductID,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Page:      params.Page,
		PageSize:  params.PageSize,
	}

	histories, total, err := s.productRepo.ListStockHistories(ctx, filter)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list stock histories", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list stock histories: %w", err)
	}

	return &dto.ListStockHistoriesResponse{
		Histories: dto.ToStockHistoryResponses(histories),
		Total:     total,
		Page:      params.Page,
	}, nil
}

func (s *productService) checkCategoryExists(ctx context.Context, categoryID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: category %s", apperrors.ErrValidation, categoryID)
		}
		return fmt.Errorf("failed to check category: %w", err)
	}
	if category.DeletedAt != nil {
		return fmt.Errorf("%w: category %s is deleted", apperrors.ErrValidation, categoryID)
	}
	return nil
}

func (s *productService) checkNameAvailable(ctx context.Context, name string, categoryID string, excludeID string) error {
	_, err := s.productRepo.FindProductByNameInCategory(ctx, name, categoryID, excludeID)
	if err == nil {
		return fmt.Errorf("%w: product %q already exists in this category", apperrors.ErrDuplicate, name)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to check product name uniqueness", slog.String("error", err.Error()))
		return fmt.Errorf("failed to check product name uniqueness: %w", err)
	}
	return nil
}
