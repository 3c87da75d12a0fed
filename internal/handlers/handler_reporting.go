package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kasirkita/pos_backend/internal/apperrors"
	portssvc "github.com/kasirkita/pos_backend/internal/core/ports/services"
	"github.com/kasirkita/pos_backend/internal/dto"
	"github.com/kasirkita/pos_backend/internal/middleware"
)

// reportingHandler handles HTTP requests for the admin reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the admin report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, adminOnly gin.HandlerFunc) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports", adminOnly)
	{
		reports.GET("/daily-item-sales", h.dailyItemSales)
		reports.GET("/dashboard-summary", h.dashboardSummary)
	}
}

// dailyItemSales degrades to an empty list when the aggregate fails, so a
// reporting hiccup never blocks the dashboard.
func (h *reportingHandler) dailyItemSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DailyItemSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	sales, err := h.reportingService.DailyItemSales(c.Request.Context(), params.Date)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
			return
		}
		logger.Error("Daily item sales query failed, returning empty result", slog.String("error", err.Error()))
		c.JSON(http.StatusOK, gin.H{"date": params.Date, "items": []dto.DailyItemSaleResponse{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": params.Date, "items": sales})
}

// dashboardSummary degrades to zeroes when the aggregate fails.
func (h *reportingHandler) dashboardSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.DashboardSummary(c.Request.Context())
	if err != nil {
		logger.Error("Dashboard summary query failed, returning zero result", slog.String("error", err.Error()))
		c.JSON(http.StatusOK, dto.DashboardSummaryResponse{})
		return
	}

	c.JSON(http.StatusOK, summary)
}
