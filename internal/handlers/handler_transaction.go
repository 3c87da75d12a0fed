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

// transactionHandler handles HTTP requests for the sale lifecycle.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers the sale routes. The lifecycle belongs
// to the cashier till; the cross-shift listing is an admin surface.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, adminOnly, cashierOnly gin.HandlerFunc) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", cashierOnly, h.createTransaction)
		transactions.POST("/:id/complete", cashierOnly, h.completeTransaction)
		transactions.POST("/:id/cancel", cashierOnly, h.cancelTransaction)
		transactions.GET("/active-shift", cashierOnly, h.listByActiveShift)
		transactions.GET("", adminOnly, h.listTransactions)
	}
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cashierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transactionService.Create(c.Request.Context(), cashierID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoActiveShift):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Open a shift before ringing up a sale"})
		case errors.Is(err, services.ErrHasPendingTransaction):
			c.JSON(http.StatusConflict, gin.H{"error": "Finish your previous sale first"})
		case errors.Is(err, services.ErrInvalidProduct):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrEmptyTransaction):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction must have at least one item"})
		default:
			logger.Error("Failed to create transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) completeTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cashierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CompleteTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transactionService.Complete(c.Request.Context(), cashierID, c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, services.ErrNoActiveShift):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You have no open shift"})
		case errors.Is(err, services.ErrNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction is already completed or canceled"})
		case errors.Is(err, services.ErrWrongShift):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction does not belong to your active shift"})
		case errors.Is(err, services.ErrInsufficientPayment):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Paid amount does not cover the total"})
		case errors.Is(err, services.ErrInvalidDebitCard):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Enter a valid card number"})
		default:
			logger.Error("Failed to complete transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) cancelTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cashierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.Cancel(c.Request.Context(), cashierID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, services.ErrNoActiveShift):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You have no open shift"})
		case errors.Is(err, services.ErrNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction is already completed or canceled"})
		case errors.Is(err, services.ErrWrongShift):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction does not belong to your active shift"})
		default:
			logger.Error("Failed to cancel transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) listByActiveShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cashierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.transactionService.ListByActiveShift(c.Request.Context(), cashierID)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveShift) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You have no open shift"})
			return
		}
		logger.Error("Failed to list active shift transactions in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	transactions, err := h.transactionService.ListAll(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list transactions in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
