package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasirkita/pos_backend/internal/core/domain"
	portsrepo "github.com/kasirkita/pos_backend/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	db *pgxpool.Pool
}

func newPgxReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{db: db}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// DailyItemSales aggregates COMPLETED sales per product for [from, to).
// Revenue uses the price snapshots on the items, so later catalog price edits
// never rewrite history.
func (r *PgxReportingRepository) DailyItemSales(ctx context.Context, from, to time.Time) ([]domain.DailyItemSale, error) {
	query := `
        SELECT p.product_id, p.name, COALESCE(SUM(ti.quantity), 0), COALESCE(SUM(ti.quantity * ti.price), 0)
        FROM transaction_items ti
        JOIN transactions t ON t.transaction_id = ti.transaction_id
        JOIN products p ON p.product_id = ti.product_id
        WHERE t.status = 'COMPLETED' AND t.created_at >= $1 AND t.created_at < $2
        GROUP BY p.product_id, p.name
        ORDER BY SUM(ti.quantity * ti.price) DESC;
    `
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily item sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.DailyItemSale{}
	for rows.Next() {
		var s domain.DailyItemSale
		if err := rows.Scan(&s.ProductID, &s.Name, &s.TotalSold, &s.TotalRevenue); err != nil {
			return nil, fmt.Errorf("failed to scan daily item sale row: %w", err)
		}
		sales = append(sales, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating daily item sale rows: %w", rows.Err())
	}

	return sales, nil
}

// DashboardSummary computes the headline numbers in two aggregate queries.
func (r *PgxReportingRepository) DashboardSummary(ctx context.Context, lowStockThreshold int64) (*domain.DashboardSummary, error) {
	var summary domain.DashboardSummary

	salesQuery := `
        SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
        FROM transactions
        WHERE status = 'COMPLETED';
    `
	if err := r.db.QueryRow(ctx, salesQuery).Scan(&summary.TotalRevenue, &summary.TotalCompletedTransactions); err != nil {
		return nil, fmt.Errorf("failed to aggregate completed sales: %w", err)
	}

	lowStockQuery := `SELECT count(*) FROM products WHERE deleted_at IS NULL AND stock < $1;`
	if err := r.db.QueryRow(ctx, lowStockQuery, lowStockThreshold).Scan(&summary.LowStockProductsCount); err != nil {
		return nil, fmt.Errorf("failed to count low stock products: %w", err)
	}

	return &summary, nil
}
