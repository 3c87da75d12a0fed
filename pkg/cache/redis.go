package cache

import "github.com/redis/go-redis/v9"

// Key formats and TTLs for the reporting cache.
const (
	// KeyDailyItemSales caches the per-day item sales report: report:daily_item_sales:{date}
	KeyDailyItemSales = "report:daily_item_sales:%s"

	// KeyDashboardSummary caches the admin dashboard headline numbers.
	KeyDashboardSummary = "report:dashboard_summary"
)

// New creates a redis client for the given address. Returns nil when addr is
// empty, which disables caching entirely.
func New(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}
