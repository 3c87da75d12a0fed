package domain

// DailyItemSale is one product's aggregated sales for a single day,
// summed over COMPLETED transactions only.
type DailyItemSale struct {
	ProductID    string `json:"productID"`
	Name         string `json:"name"`
	TotalSold    int64  `json:"totalSold"`
	TotalRevenue int64  `json:"totalRevenue"`
}

// DashboardSummary holds the admin dashboard headline numbers.
type DashboardSummary struct {
	TotalRevenue               int64 `json:"totalRevenue"`
	TotalCompletedTransactions int64 `json:"totalCompletedTransactions"`
	LowStockProductsCount      int64 `json:"lowStockProductsCount"`
}
