package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kasirkita/pos_backend/internal/apperrors"
	portssvc "github.com/kasirkita/pos_backend/internal/core/ports/services"
	"github.com/kasirkita/pos_backend/internal/core/services"
	"github.com/kasirkita/pos_backend/internal/dto"
	"github.com/kasirkita/pos_backend/internal/middleware"
)

// shiftHandler handles HTTP requests for the cash drawer shift lifecycle.
type shiftHandler struct {
	shiftService portssvc.ShiftSvcFacade
}

func newShiftHandler(ss portssvc.ShiftSvcFacade) *shiftHandler {
	return &shiftHandler{shiftService: ss}
}

// registerShiftRoutes registers the shift routes. Open/close/active belong to
// the cashier till; the listing and detail views are admin surfaces.
func registerShiftRoutes(rg *gin.RouterGroup, shiftService portssvc.ShiftSvcFacade, adminOnly, cashierOnly gin.HandlerFunc) {
	h := newShiftHandler(shiftService)

	shifts := rg.Group("/shifts")
	{
		shifts.POST("/open", cashierOnly, h.openShift)
		shifts.POST("/close", cashierOnly, h.closeShift)
		shifts.GET("/active", cashierOnly, h.getActiveShift)
		shifts.GET("", adminOnly, h.listShifts)
		shifts.GET("/:id", adminOnly, h.getShiftDetail)
	}
}

func (h *shiftHandler) openShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cashierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.OpenShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	shift, err := h.shiftService.OpenShift(c.Request.Context(), cashierID, req.CashStart)
	if err != nil {
		if errors.Is(err, services.ErrShiftAlreadyOpen) {
			c.JSON(http.StatusConflict, gin.H{"error": "You already have an open shift"})
			return
		}
		logger.Error("Failed to open shift in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open shift"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToShiftResponse(shift))
}

func (h *shiftHandler) closeShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cashierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	shift, err := h.shiftService.CloseShift(c.Request.Context(), cashierID, req.CashEnd)
	if err != nil {
		var pendingErr *services.PendingTransactionsError
		switch {
		case errors.Is(err, services.ErrNoActiveShift):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You have no open shift"})
		case errors.As(err, &pendingErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":               "Finish your pending transactions before closing the shift",
				"pendingTransactions": pendingErr.Count,
			})
		default:
			logger.Error("Failed to close shift in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close shift"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}

// getActiveShift returns the cashier's open shift, or a null shift when none
// is open. Having no open shift is a normal state, not an error.
func (h *shiftHandler) getActiveShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cashierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	shift, err := h.shiftService.FindActiveShift(c.Request.Context(), cashierID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"shift": nil})
			return
		}
		logger.Error("Failed to find active shift in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve active shift"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shift": dto.ToShiftResponse(shift)})
}

func (h *shiftHandler) listShifts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListShiftsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.shiftService.ListShifts(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list shifts from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list shifts"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *shiftHandler) getShiftDetail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shiftID := c.Param("id")

	var params dto.ShiftDetailParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.shiftService.GetShiftDetail(c.Request.Context(), shiftID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
			return
		}
		logger.Error("Failed to get shift detail from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve shift"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
