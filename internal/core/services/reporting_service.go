package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kasirkita/pos_backend/internal/apperrors"
	portsrepo "github.com/kasirkita/pos_backend/internal/core/ports/repositories"
	portssvc "github.com/kasirkita/pos_backend/internal/core/ports/services"
	"github.com/kasirkita/pos_backend/internal/dto"
	"github.com/kasirkita/pos_backend/internal/middleware"
	"github.com/kasirkita/pos_backend/pkg/cache"
)

// reportCacheTTL bounds staleness of the cached reports. Reports aggregate
// over completed sales, so a few minutes of lag is acceptable.
const reportCacheTTL = 5 * time.Minute

type reportingService struct {
	reportingRepo     portsrepo.ReportingRepositoryFacade
	redisClient       *redis.Client // nil disables caching
	lowStockThreshold int64
}

// NewReportingService creates a new ReportingService. redisClient may be nil,
// in which case every call hits the database directly.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, redisClient *redis.Client, lowStockThreshold int64) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo:     reportingRepo,
		redisClient:       redisClient,
		lowStockThreshold: lowStockThreshold,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// DailyItemSales aggregates COMPLETED sales per product for one day.
func (s *reportingService) DailyItemSales(ctx context.Context, date string) ([]dto.DailyItemSaleResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, date)
	}

	key := fmt.Sprintf(cache.KeyDailyItemSales, date)
	var cached []dto.DailyItemSaleResponse
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	from := day.UTC().Truncate(24 * time.Hour)
	to := from.Add(24 * time.Hour)

	sales, err := s.reportingRepo.DailyItemSales(ctx, from, to)
	if err != nil {
		logger.Error("Failed to aggregate daily item sales", slog.String("error", err.Error()), slog.String("date", date))
		return nil, fmt.Errorf("failed to aggregate daily item sales: %w", err)
	}

	resp := dto.ToDailyItemSaleResponses(sales)
	s.cacheSet(ctx, key, resp)
	return resp, nil
}

// DashboardSummary returns the admin dashboard headline numbers.
func (s *reportingService) DashboardSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var cached dto.DashboardSummaryResponse
	if s.cacheGet(ctx, cache.KeyDashboardSummary, &cached) {
		return &cached, nil
	}

	summary, err := s.reportingRepo.DashboardSummary(ctx, s.lowStockThreshold)
	if err != nil {
		logger.Error("Failed to build dashboard summary", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build dashboard summary: %w", err)
	}

	resp := dto.ToDashboardSummaryResponse(summary)
	s.cacheSet(ctx, cache.KeyDashboardSummary, resp)
	return &resp, nil
}

// cacheGet reads and decodes a cached report. Cache failures only log; the
// caller falls through to the database.
func (s *reportingService) cacheGet(ctx context.Context, key string, out any) bool {
	if s.redisClient == nil {
		return false
	}
	raw, err := s.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			middleware.GetLoggerFromCtx(ctx).Warn("Report cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Report cache decode failed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (s *reportingService) cacheSet(ctx context.Context, key string, value any) {
	if s.redisClient == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, key, raw, reportCacheTTL).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Report cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
