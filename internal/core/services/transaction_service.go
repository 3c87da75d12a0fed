package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kasirkita/pos_backend/internal/apperrors"
	"github.com/kasirkita/pos_backend/internal/core/domain"
	portsrepo "github.com/kasirkita/pos_backend/internal/core/ports/repositories"
	portssvc "github.com/kasirkita/pos_backend/internal/core/ports/services"
	"github.com/kasirkita/pos_backend/internal/dto"
	"github.com/kasirkita/pos_backend/internal/middleware"
)

var (
	// ErrEmptyTransaction is returned when a sale is rung up with no items.
	ErrEmptyTransaction = errors.New("transaction must have at least one item")

	// ErrHasPendingTransaction is returned when a new sale is rung up while the
	// shift's previous sale is still unresolved.
	ErrHasPendingTransaction = errors.New("shift already has a pending transaction")

	// ErrNotPending is returned when completing or cancelling a sale that has
	// already reached a terminal status.
	ErrNotPending = errors.New("transaction is not pending")

	// ErrWrongShift is returned when a sale does not belong to the cashier's
	// active shift.
	ErrWrongShift = errors.New("transaction does not belong to the active shift")

	// ErrInvalidProduct is returned when a requested product does not exist or
	// has been deleted.
	ErrInvalidProduct = errors.New("product not found or deleted")

	// ErrInsufficientStock is returned when a requested quantity exceeds the
	// product's on-hand stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInsufficientPayment is returned when a cash payment does not cover the total.
	ErrInsufficientPayment = errors.New("paid amount is less than the total amount")

	// ErrInvalidDebitCard is returned when a debit payment is missing its card number.
	ErrInvalidDebitCard = errors.New("debit card number is required")
)

// stockReasonPending is the audit reason recorded when a sale reserves stock.
const stockReasonPending = "Transaction PENDING"

// transactionService owns the PENDING -> COMPLETED/CANCELED sale lifecycle and
// the stock movements coupled to it. Every lifecycle method runs its guards
// and writes in one database transaction so a failed sale never leaves stock
// half-adjusted.
type transactionService struct {
	txnRepo     portsrepo.TransactionRepositoryWithTx
	shiftRepo   portsrepo.ShiftRepositoryWithTx
	productRepo portsrepo.ProductRepositoryWithTx
	txnTimeout  time.Duration
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryWithTx,
	shiftRepo portsrepo.ShiftRepositoryWithTx,
	productRepo portsrepo.ProductRepositoryWithTx,
	txnTimeout time.Duration,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:     txnRepo,
		shiftRepo:   shiftRepo,
		productRepo: productRepo,
		txnTimeout:  txnTimeout,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// Create rings up a new PENDING sale on the cashier's active shift.
//
// Line items are kept as requested, duplicates included, and each line gets
// its own stock history row. Sufficiency is checked against the per-product
// sum across lines so repeated lines cannot drive stock negative.
func (s *transactionService) Create(ctx context.Context, cashierID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Items) == 0 {
		return nil, ErrEmptyTransaction
	}

	ctx, cancel := context.WithTimeout(ctx, s.txnTimeout)
	defer cancel()

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txnRepo.Rollback(ctx, tx)

	shift, err := s.shiftRepo.FindActiveShiftForUpdate(ctx, tx, cashierID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNoActiveShift
		}
		logger.Error("Failed to find active shift", slog.String("error", err.Error()), slog.String("cashier_id", cashierID))
		return nil, fmt.Errorf("failed to find active shift: %w", err)
	}

	_, err = s.txnRepo.FindPendingByShiftInTx(ctx, tx, shift.ShiftID)
	if err == nil {
		return nil, ErrHasPendingTransaction
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check for a pending transaction", slog.String("error", err.Error()), slog.String("shift_id", shift.ShiftID))
		return nil, fmt.Errorf("failed to check for a pending transaction: %w", err)
	}

	productIDs := make([]string, 0, len(req.Items))
	seen := make(map[string]struct{}, len(req.Items))
	for _, item := range req.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.productRepo.FindProductsByIDsForUpdate(ctx, tx, productIDs)
	if err != nil {
		logger.Error("Failed to lock products", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to lock products: %w", err)
	}

	// Sufficiency is judged against the summed quantity per product, so the
	// same product on several lines cannot oversell the last units.
	requested := make(map[string]int64, len(productIDs))
	for _, item := range req.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidProduct, item.ProductID)
		}
		requested[item.ProductID] += item.Quantity
		if requested[item.ProductID] > product.Stock {
			return nil, fmt.Errorf("%w: product %q has %d left", ErrInsufficientStock, product.Name, product.Stock)
		}
	}

	now := time.Now().UTC()
	txnID := uuid.NewString()

	var totalAmount int64
	items := make([]domain.TransactionItem, 0, len(req.Items))
	adjustments := make([]domain.StockAdjustment, 0, len(req.Items))
	for _, item := range req.Items {
		product := products[item.ProductID]
		items = append(items, domain.TransactionItem{
			TransactionItemID: uuid.NewString(),
			TransactionID:     txnID,
			ProductID:         item.ProductID,
			Quantity:          item.Quantity,
			Price:             product.Price,
			ProductName:       product.Name,
		})
		adjustments = append(adjustments, domain.StockAdjustment{
			ProductID: item.ProductID,
			Change:    -item.Quantity,
			Reason:    stockReasonPending,
		})
		totalAmount += product.Price * item.Quantity
	}

	if err := s.productRepo.AdjustStockInTx(ctx, tx, adjustments, now); err != nil {
		logger.Error("Failed to adjust stock", slog.String("error", err.Error()), slog.String("transaction_id", txnID))
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	txn := domain.Transaction{
		TransactionID: txnID,
		ShiftID:       shift.ShiftID,
		CashierID:     cashierID,
		Status:        domain.StatusPending,
		TotalAmount:   totalAmount,
		PaymentType:   domain.PaymentCash,
		CreatedAt:     now,
		Items:         items,
	}

	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn, items); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("transaction_id", txnID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txnID),
		slog.String("shift_id", shift.ShiftID),
		slog.Int64("total_amount", totalAmount),
		slog.Int("item_count", len(items)),
	)
	return &txn, nil
}

// Complete finalizes a PENDING sale with its payment details. Stock was
// already reserved at creation, so only the transaction row changes.
func (s *transactionService) Complete(ctx context.Context, cashierID string, transactionID string, req dto.CompleteTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.txnTimeout)
	defer cancel()

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txnRepo.Rollback(ctx, tx)

	shift, err := s.shiftRepo.FindActiveShiftForUpdate(ctx, tx, cashierID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNoActiveShift
		}
		logger.Error("Failed to find active shift", slog.String("error", err.Error()), slog.String("cashier_id", cashierID))
		return nil, fmt.Errorf("failed to find active shift: %w", err)
	}

	txn, err := s.txnRepo.FindTransactionByIDInTx(ctx, tx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	if txn.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: status is %s", ErrNotPending, txn.Status)
	}
	if txn.ShiftID != shift.ShiftID {
		return nil, ErrWrongShift
	}
	if len(txn.Items) == 0 {
		return nil, ErrEmptyTransaction
	}

	switch req.PaymentType {
	case domain.PaymentCash:
		if req.PaidAmount == nil {
			return nil, fmt.Errorf("%w: paid amount is required for cash", ErrInsufficientPayment)
		}
		if *req.PaidAmount < txn.TotalAmount {
			return nil, fmt.Errorf("%w: paid %d, total %d", ErrInsufficientPayment, *req.PaidAmount, txn.TotalAmount)
		}
		change := *req.PaidAmount - txn.TotalAmount
		txn.PaidAmount = *req.PaidAmount
		txn.ChangeAmount = &change
		txn.DebitCardNo = nil
	case domain.PaymentDebit:
		if req.DebitCardNo == nil || strings.TrimSpace(*req.DebitCardNo) == "" {
			return nil, ErrInvalidDebitCard
		}
		// Debit charges the exact total; no cash moves through the drawer,
		// so change stays unset.
		txn.PaidAmount = txn.TotalAmount
		txn.ChangeAmount = nil
		txn.DebitCardNo = req.DebitCardNo
	default:
		return nil, apperrors.NewAppError(400, "unsupported payment type", nil)
	}

	txn.Status = domain.StatusCompleted
	txn.PaymentType = req.PaymentType

	if err := s.txnRepo.UpdateTransactionCompletionInTx(ctx, tx, *txn); err != nil {
		logger.Error("Failed to complete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to complete transaction: %w", err)
	}

	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Transaction completed",
		slog.String("transaction_id", transactionID),
		slog.String("payment_type", string(req.PaymentType)),
		slog.Int64("total_amount", txn.TotalAmount),
	)
	return txn, nil
}

// Cancel voids a PENDING sale and restores every line's stock, one audit row
// per line, mirroring the deduction made at creation.
func (s *transactionService) Cancel(ctx context.Context, cashierID string, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.txnTimeout)
	defer cancel()

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txnRepo.Rollback(ctx, tx)

	shift, err := s.shiftRepo.FindActiveShiftForUpdate(ctx, tx, cashierID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNoActiveShift
		}
		logger.Error("Failed to find active shift", slog.String("error", err.Error()), slog.String("cashier_id", cashierID))
		return nil, fmt.Errorf("failed to find active shift: %w", err)
	}

	txn, err := s.txnRepo.FindTransactionByIDInTx(ctx, tx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	if txn.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: status is %s", ErrNotPending, txn.Status)
	}
	if txn.ShiftID != shift.ShiftID {
		return nil, ErrWrongShift
	}

	now := time.Now().UTC()
	reason := fmt.Sprintf("Transaction cancelled (ID: %s)", txn.TransactionID)
	adjustments := make([]domain.StockAdjustment, 0, len(txn.Items))
	for _, item := range txn.Items {
		adjustments = append(adjustments, domain.StockAdjustment{
			ProductID: item.ProductID,
			Change:    item.Quantity,
			Reason:    reason,
		})
	}

	if err := s.productRepo.AdjustStockInTx(ctx, tx, adjustments, now); err != nil {
		logger.Error("Failed to restore stock", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to restore stock: %w", err)
	}

	if err := s.txnRepo.UpdateTransactionStatusInTx(ctx, tx, transactionID, domain.StatusCanceled); err != nil {
		logger.Error("Failed to cancel transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to cancel transaction: %w", err)
	}

	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	txn.Status = domain.StatusCanceled
	logger.Info("Transaction cancelled", slog.String("transaction_id", transactionID), slog.Int("restored_lines", len(adjustments)))
	return txn, nil
}

// ListByActiveShift returns the cashier's open shift together with all of its
// transactions, newest first.
func (s *transactionService) ListByActiveShift(ctx context.Context, cashierID string) (*dto.ActiveShiftTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	shift, err := s.shiftRepo.FindActiveShiftByCashier(ctx, cashierID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNoActiveShift
		}
		logger.Error("Failed to find active shift", slog.String("error", err.Error()), slog.String("cashier_id", cashierID))
		return nil, fmt.Errorf("failed to find active shift: %w", err)
	}

	transactions, _, err := s.txnRepo.ListTransactionsByShift(ctx, shift.ShiftID, domain.TransactionFilter{})
	if err != nil {
		logger.Error("Failed to list shift transactions", slog.String("error", err.Error()), slog.String("shift_id", shift.ShiftID))
		return nil, fmt.Errorf("failed to list shift transactions: %w", err)
	}

	return &dto.ActiveShiftTransactionsResponse{
		Shift:        dto.ToShiftResponse(shift),
		Transactions: dto.ToTransactionResponses(transactions),
	}, nil
}

// ListAll returns the admin-wide transaction listing.
func (s *transactionService) ListAll(ctx context.Context, params dto.ListTransactionsParams) ([]dto.TransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := domain.TransactionFilter{
		CashierID:     params.CashierID,
		Status:        domain.StatusCompleted,
		PaymentType:   domain.PaymentType(params.PaymentType),
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
		ShiftMismatch: params.IsMismatch,
		SortBy:        params.SortBy,
		SortOrder:     params.SortOrder,
		Page:          params.Page,
		PageSize:      params.PageSize,
	}

	transactions, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return dto.ToTransactionResponses(transactions), nil
}
