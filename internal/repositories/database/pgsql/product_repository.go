package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasirkita/pos_backend/internal/apperrors"
	"github.com/kasirkita/pos_backend/internal/core/domain"
	portsrepo "github.com/kasirkita/pos_backend/internal/core/ports/repositories"
	"github.com/kasirkita/pos_backend/internal/models"
	"github.com/kasirkita/pos_backend/internal/utils/mapping"
)

type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(db *pgxpool.Pool) portsrepo.ProductRepositoryWithTx {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ProductRepositoryWithTx = (*PgxProductRepository)(nil)

const productColumns = `product_id, name, price, stock, category_id, image_url, created_at, updated_at, deleted_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Name,
		&m.Price,
		&m.Stock,
		&m.CategoryID,
		&m.ImageURL,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const insertStockHistoryQuery = `
    INSERT INTO stock_histories (stock_history_id, product_id, change, reason, created_at)
    VALUES ($1, $2, $3, $4, $5);
`

// SaveProduct inserts the product row and its initial stock audit entry in one
// database transaction.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product, initialStock domain.StockAdjustment) error {
	m := mapping.ToModelProduct(product)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
        INSERT INTO products (product_id, name, price, stock, category_id, image_url, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err = tx.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.Price,
		m.Stock,
		m.CategoryID,
		m.ImageURL,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	_, err = tx.Exec(ctx, insertStockHistoryQuery,
		uuid.NewString(),
		initialStock.ProductID,
		initialStock.Change,
		initialStock.Reason,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record initial stock: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	m, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	product := mapping.ToDomainProduct(*m)
	return &product, nil
}

// FindProductByNameInCategory is the duplicate-name lookup scoped to one
// category. excludeID keeps a product from colliding with itself on update.
func (r *PgxProductRepository) FindProductByNameInCategory(ctx context.Context, name string, categoryID string, excludeID string) (*domain.Product, error) {
	query := `
        SELECT ` + productColumns + `
        FROM products
        WHERE lower(name) = lower($1) AND category_id = $2 AND deleted_at IS NULL AND product_id <> $3;
    `
	m, err := scanProduct(r.Pool.QueryRow(ctx, query, name, categoryID, excludeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by name: %w", err)
	}
	product := mapping.ToDomainProduct(*m)
	return &product, nil
}

func (r *PgxProductRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}

	where := ` WHERE deleted_at IS NULL`
	args := []any{}
	argIdx := 1
	if filter.Search != "" {
		where += fmt.Sprintf(` AND name ILIKE $%d`, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.CategoryID != "" {
		where += fmt.Sprintf(` AND category_id = $%d`, argIdx)
		args = append(args, filter.CategoryID)
		argIdx++
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT count(*) FROM products`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	orderBy := ` ORDER BY created_at DESC`
	switch filter.Sort {
	case "price_asc":
		orderBy = ` ORDER BY price ASC`
	case "price_desc":
		orderBy = ` ORDER BY price DESC`
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + orderBy +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d;`, argIdx, argIdx+1)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	modelProducts := []models.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product row: %w", err)
		}
		modelProducts = append(modelProducts, *m)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating product rows: %w", rows.Err())
	}

	return mapping.ToDomainProductSlice(modelProducts), total, nil
}

func (r *PgxProductRepository) CountProductsBelowStock(ctx context.Context, threshold int64) (int64, error) {
	var count int64
	query := `SELECT count(*) FROM products WHERE deleted_at IS NULL AND stock < $1;`
	if err := r.Pool.QueryRow(ctx, query, threshold).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count low stock products: %w", err)
	}
	return count, nil
}

// UpdateProduct writes the product fields and, when a stock adjustment is
// present, the stock delta with its audit row in the same database transaction.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product, stockAdjustment *domain.StockAdjustment) error {
	m := mapping.ToModelProduct(product)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
        UPDATE products
        SET name = $1, price = $2, stock = $3, category_id = $4, image_url = $5, updated_at = $6
        WHERE product_id = $7 AND deleted_at IS NULL;
    `
	cmdTag, err := tx.Exec(ctx, query,
		m.Name,
		m.Price,
		m.Stock,
		m.CategoryID,
		m.ImageURL,
		m.UpdatedAt,
		m.ProductID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update product query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product not found or already deleted: %w", apperrors.ErrNotFound)
	}

	if stockAdjustment != nil {
		_, err = tx.Exec(ctx, insertStockHistoryQuery,
			uuid.NewString(),
			stockAdjustment.ProductID,
			stockAdjustment.Change,
			stockAdjustment.Reason,
			m.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to record stock adjustment: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxProductRepository) SoftDeleteProduct(ctx context.Context, productID string, now time.Time) error {
	query := `
        UPDATE products
        SET deleted_at = $1, updated_at = $1
        WHERE product_id = $2 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, now, productID)
	if err != nil {
		return fmt.Errorf("failed to mark product as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

// FindProductsByIDsForUpdate locks the product rows for the remainder of the
// transaction. Soft-deleted products are excluded, so a missing key in the
// result means not-found-or-deleted.
func (r *PgxProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	products := make(map[string]domain.Product, len(productIDs))
	if len(productIDs) == 0 {
		return products, nil
	}

	query := `
        SELECT ` + productColumns + `
        FROM products
        WHERE product_id = ANY($1) AND deleted_at IS NULL
        FOR UPDATE;
    `
	rows, err := tx.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked product row: %w", err)
		}
		products[m.ProductID] = mapping.ToDomainProduct(*m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating locked product rows: %w", rows.Err())
	}

	return products, nil
}

// AdjustStockInTx applies each stock delta and appends its audit row within
// the given transaction. One adjustment yields exactly one stock history row.
func (r *PgxProductRepository) AdjustStockInTx(ctx context.Context, tx pgx.Tx, adjustments []domain.StockAdjustment, now time.Time) error {
	if len(adjustments) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	updateQuery := `UPDATE products SET stock = stock + $1, updated_at = $2 WHERE product_id = $3;`
	for _, adj := range adjustments {
		batch.Queue(updateQuery, adj.Change, now, adj.ProductID)
		batch.Queue(insertStockHistoryQuery,
			uuid.NewString(),
			adj.ProductID,
			adj.Change,
			adj.Reason,
			now,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute stock adjustment batch: %w", err)
	}
	return nil
}

func (r *PgxProductRepository) ListStockHistories(ctx context.Context, filter domain.StockHistoryFilter) ([]domain.StockHistory, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1
	if filter.ProductID != "" {
		where += fmt.Sprintf(` AND sh.product_id = $%d`, argIdx)
		args = append(args, filter.ProductID)
		argIdx++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(` AND sh.created_at >= $%d`, argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(` AND sh.created_at < $%d`, argIdx)
		args = append(args, filter.EndDate.AddDate(0, 0, 1))
		argIdx++
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT count(*) FROM stock_histories sh`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count stock histories: %w", err)
	}

	query := `
        SELECT sh.stock_history_id, sh.product_id, sh.change, sh.reason, sh.created_at, p.name
        FROM stock_histories sh
        JOIN products p ON p.product_id = sh.product_id` + where +
		fmt.Sprintf(` ORDER BY sh.created_at DESC LIMIT $%d OFFSET $%d;`, argIdx, argIdx+1)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query stock histories: %w", err)
	}
	defer rows.Close()

	modelHistories := []models.StockHistory{}
	for rows.Next() {
		var m models.StockHistory
		err := rows.Scan(&m.StockHistoryID, &m.ProductID, &m.Change, &m.Reason, &m.CreatedAt, &m.ProductName)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan stock history row: %w", err)
		}
		modelHistories = append(modelHistories, m)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating stock history rows: %w", rows.Err())
	}

	return mapping.ToDomainStockHistorySlice(modelHistories), total, nil
}
