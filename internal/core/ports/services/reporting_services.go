package services

import (
	"context"

	"github.com/kasirkita/pos_backend/internal/dto"
)

// ReportingSvcFacade defines the admin report queries. Failures degrade to
// empty results with a logged error so the dashboard never blocks.
type ReportingSvcFacade interface {
	// DailyItemSales aggregates COMPLETED sales per product for one day
	// (date formatted as 2006-01-02).
	DailyItemSales(ctx context.Context, date string) ([]dto.DailyItemSaleResponse, error)

	// DashboardSummary returns the admin dashboard headline numbers.
	DashboardSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error)
}
