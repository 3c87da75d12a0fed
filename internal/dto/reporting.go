package dto

import "github.com/kasirkita/pos_backend/internal/core/domain"

// DailyItemSalesParams holds the query parameters for the daily item sales report.
type DailyItemSalesParams struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// DailyItemSaleResponse is one product's aggregated sales for the requested day.
type DailyItemSaleResponse struct {
	ProductID    string `json:"productID"`
	Name         string `json:"name"`
	TotalSold    int64  `json:"totalSold"`
	TotalRevenue int64  `json:"totalRevenue"`
}

// DashboardSummaryResponse carries the admin dashboard headline numbers.
type DashboardSummaryResponse struct {
	TotalRevenue               int64 `json:"totalRevenue"`
	TotalCompletedTransactions int64 `json:"totalCompletedTransactions"`
	LowStockProductsCount      int64 `json:"lowStockProductsCount"`
}

// ToDailyItemSaleResponses converts domain aggregates to response DTOs.
func ToDailyItemSaleResponses(sales []domain.DailyItemSale) []DailyItemSaleResponse {
	resp := make([]DailyItemSaleResponse, len(sales))
	for i, s := range sales {
		resp[i] = DailyItemSaleResponse(s)
	}
	return resp
}

// ToDashboardSummaryResponse converts the domain aggregate to its response DTO.
func ToDashboardSummaryResponse(s *domain.DashboardSummary) DashboardSummaryResponse {
	return DashboardSummaryResponse{
		TotalRevenue:               s.TotalRevenue,
		TotalCompletedTransactions: s.TotalCompletedTransactions,
		LowStockProductsCount:      s.LowStockProductsCount,
	}
}
