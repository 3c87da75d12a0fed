package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kasirkita/pos_backend/internal/core/domain"
)

// ProductReader defines read operations for product data.
type ProductReader interface {
	// FindProductByID retrieves a product by its unique identifier, including soft-deleted ones.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductByNameInCategory retrieves a non-deleted product by case-insensitive
	// name within a category, used for duplicate checks. excludeID may be empty.
	FindProductByNameInCategory(ctx context.Context, name string, categoryID string, excludeID string) (*domain.Product, error)

	// ListProducts retrieves a filtered, paginated page of non-deleted products
	// along with the total matching count.
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error)

	// CountProductsBelowStock counts non-deleted products with stock below the threshold.
	CountProductsBelowStock(ctx context.Context, threshold int64) (int64, error)
}

// ProductWriter defines write operations for product data.
type ProductWriter interface {
	// SaveProduct persists a new product and its initial StockHistory entry atomically.
	SaveProduct(ctx context.Context, product domain.Product, initialStock domain.StockAdjustment) error

	// UpdateProduct updates product fields. When stockAdjustment is non-nil the
	// stock write and its audit entry happen in the same database transaction.
	UpdateProduct(ctx context.Context, product domain.Product, stockAdjustment *domain.StockAdjustment) error

	// SoftDeleteProduct marks a product as deleted without removing historical references.
	SoftDeleteProduct(ctx context.Context, productID string, now time.Time) error
}

// ProductTransactionSupport defines the inventory ledger operations used
// inside the transaction engine's atomic units of work.
type ProductTransactionSupport interface {
	// FindProductsByIDsForUpdate selects non-deleted products and locks their rows
	// for update within the given transaction. Soft-deleted products are excluded,
	// so a missing key in the result means not-found-or-deleted.
	FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error)

	// AdjustStockInTx applies each stock delta and appends its StockHistory row
	// within the given transaction. One adjustment yields exactly one audit row;
	// nothing is committed here.
	AdjustStockInTx(ctx context.Context, tx pgx.Tx, adjustments []domain.StockAdjustment, now time.Time) error
}

// StockHistoryReader defines read access to the append-only stock audit trail.
type StockHistoryReader interface {
	// ListStockHistories retrieves a filtered, newest-first page of stock history
	// entries along with the total matching count.
	ListStockHistories(ctx context.Context, filter domain.StockHistoryFilter) ([]domain.StockHistory, int64, error)
}

// ProductRepositoryFacade combines all product-related repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	ProductTransactionSupport
	StockHistoryReader
}

// ProductRepositoryWithTx extends ProductRepositoryFacade with transaction capabilities.
type ProductRepositoryWithTx interface {
	ProductRepositoryFacade
	TransactionManager
}
