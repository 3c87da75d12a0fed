package repositories

import (
	"context"
	"time"

	"github.com/kasirkita/pos_backend/internal/core/domain"
)

// ReportingRepositoryFacade defines the read-only aggregate queries behind the
// admin reports. These only ever read already-consistent data.
type ReportingRepositoryFacade interface {
	// DailyItemSales groups COMPLETED transaction items created within [from, to)
	// by product, summing quantities and revenue at the snapshotted prices.
	DailyItemSales(ctx context.Context, from, to time.Time) ([]domain.DailyItemSale, error)

	// DashboardSummary returns total COMPLETED revenue, the COMPLETED transaction
	// count and the number of products below the low-stock threshold.
	DashboardSummary(ctx context.Context, lowStockThreshold int64) (*domain.DashboardSummary, error)
}
