package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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
	// ErrShiftAlreadyOpen is returned when a cashier tries to open a second shift.
	ErrShiftAlreadyOpen = errors.New("cashier already has an open shift")

	// ErrNoActiveShift is returned when an operation requires an open shift and none exists.
	ErrNoActiveShift = errors.New("no active shift found")

	// ErrHasPendingTransactions is returned when a shift cannot close because
	// sales are still unresolved.
	ErrHasPendingTransactions = errors.New("shift still has pending transactions")
)

// PendingTransactionsError reports how many sales block the shift close so the
// boundary can tell the cashier "finish N pending sales first".
type PendingTransactionsError struct {
	Count int64
}

func (e *PendingTransactionsError) Error() string {
	return fmt.Sprintf("shift still has %d pending transaction(s)", e.Count)
}

func (e *PendingTransactionsError) Unwrap() error {
	return ErrHasPendingTransactions
}

// shiftService owns the open/closed lifecycle of a cashier's cash drawer and
// the expected-vs-actual reconciliation at close.
type shiftService struct {
	shiftRepo  portsrepo.ShiftRepositoryWithTx
	txnRepo    portsrepo.TransactionRepositoryWithTx
	txnTimeout time.Duration
}

// NewShiftService creates a new ShiftService.
func NewShiftService(shiftRepo portsrepo.ShiftRepositoryWithTx, txnRepo portsrepo.TransactionRepositoryWithTx, txnTimeout time.Duration) portssvc.ShiftSvcFacade {
	return &shiftService{
		shiftRepo:  shiftRepo,
		txnRepo:    txnRepo,
		txnTimeout: txnTimeout,
	}
}

var _ portssvc.ShiftSvcFacade = (*shiftService)(nil)

// OpenShift creates a new open shift for the cashier.
// The already-open check runs inside the same database transaction as the
// insert; the partial unique index on open shifts backs it up against races.
func (s *shiftService) OpenShift(ctx context.Context, cashierID string, cashStart int64) (*domain.Shift, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.txnTimeout)
	defer cancel()

	tx, err := s.shiftRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.shiftRepo.Rollback(ctx, tx)

	_, err = s.shiftRepo.FindActiveShiftForUpdate(ctx, tx, cashierID)
	if err == nil {
		return nil, ErrShiftAlreadyOpen
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check for an active shift", slog.String("error", err.Error()), slog.String("cashier_id", cashierID))
		return nil, fmt.Errorf("failed to check for an active shift: %w", err)
	}

	shift := domain.Shift{
		ShiftID:   uuid.NewString(),
		CashierID: cashierID,
		CashStart: cashStart,
		OpenedAt:  time.Now().UTC(),
	}

	if err := s.shiftRepo.SaveShiftInTx(ctx, tx, shift); err != nil {
		logger.Error("Failed to save shift", slog.String("error", err.Error()), slog.String("cashier_id", cashierID))
		return nil, fmt.Errorf("failed to save shift: %w", err)
	}

	if err := s.shiftRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Shift opened", slog.String("shift_id", shift.ShiftID), slog.String("cashier_id", cashierID))
	return &shift, nil
}

// CloseShift reconciles and closes the cashier's active shift.
//
// Expected cash counts only COMPLETED CASH sales, each contributing its net
// drawer movement (paid minus change handed back). DEBIT revenue is excluded:
// the reconciliation question is whether the physical drawer matches, not
// whether total sales match. That broader number is totalTransactions.
func (s *shiftService) CloseShift(ctx context.Context, cashierID string, cashEnd int64) (*domain.Shift, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.txnTimeout)
	defer cancel()

	tx, err := s.shiftRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.shiftRepo.Rollback(ctx, tx)

	shift, err := s.shiftRepo.FindActiveShiftForUpdate(ctx, tx, cashierID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNoActiveShift
		}
		logger.Error("Failed to find active shift for close", slog.String("error", err.Error()), slog.String("cashier_id", cashierID))
		return nil, fmt.Errorf("failed to find active shift: %w", err)
	}

	pendingCount, err := s.txnRepo.CountPendingByShiftInTx(ctx, tx, shift.ShiftID)
	if err != nil {
		logger.Error("Failed to count pending transactions", slog.String("error", err.Error()), slog.String("shift_id", shift.ShiftID))
		return nil, fmt.Errorf("failed to count pending transactions: %w", err)
	}
	if pendingCount > 0 {
		return nil, &PendingTransactionsError{Count: pendingCount}
	}

	completed, err := s.txnRepo.FindCompletedByShiftInTx(ctx, tx, shift.ShiftID)
	if err != nil {
		logger.Error("Failed to load completed transactions", slog.String("error", err.Error()), slog.String("shift_id", shift.ShiftID))
		return nil, fmt.Errorf("failed to load completed transactions: %w", err)
	}

	if len(completed) == 0 {
		logger.Warn("Closing shift with no completed transactions", slog.String("shift_id", shift.ShiftID))
	}

	var totalTransactions int64
	var cashFromTransactions int64
	for _, txn := range completed {
		totalTransactions += txn.TotalAmount
		if txn.PaymentType != domain.PaymentCash {
			continue
		}
		if txn.ChangeAmount != nil && *txn.ChangeAmount < 0 {
			// A negative stored change would silently inflate expected cash.
			logger.Error("Negative change amount on completed transaction", slog.String("transaction_id", txn.TransactionID), slog.Int64("change", *txn.ChangeAmount))
			return nil, apperrors.NewAppError(500, "data integrity: negative change amount on transaction "+txn.TransactionID, nil)
		}
		cashFromTransactions += txn.CashRetained()
	}

	now := time.Now().UTC()
	expectedCash := shift.CashStart + cashFromTransactions
	difference := cashEnd - expectedCash

	shift.CashEnd = &cashEnd
	shift.ExpectedCash = &expectedCash
	shift.Difference = &difference
	shift.IsMismatch = difference != 0
	shift.TotalTransactions = &totalTransactions
	shift.ClosedAt = &now

	if err := s.shiftRepo.CloseShiftInTx(ctx, tx, *shift); err != nil {
		logger.Error("Failed to close shift", slog.String("error", err.Error()), slog.String("shift_id", shift.ShiftID))
		return nil, fmt.Errorf("failed to close shift: %w", err)
	}

	if err := s.shiftRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Shift closed",
		slog.String("shift_id", shift.ShiftID),
		slog.Int64("expected_cash", expectedCash),
		slog.Int64("difference", difference),
		slog.Bool("is_mismatch", shift.IsMismatch),
	)
	return shift, nil
}

// FindActiveShift retrieves the cashier's open shift without changing state.
func (s *shiftService) FindActiveShift(ctx context.Context, cashierID string) (*domain.Shift, error) {
	shift, err := s.shiftRepo.FindActiveShiftByCashier(ctx, cashierID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find active shift", slog.String("error", err.Error()), slog.String("cashier_id", cashierID))
		}
		return nil, err
	}
	return shift, nil
}

// GetShiftDetail retrieves a shift header plus a filtered page of its transactions.
func (s *shiftService) GetShiftDetail(ctx context.Context, shiftID string, params dto.ShiftDetailParams) (*dto.ShiftDetailResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	shift, err := s.shiftRepo.FindShiftByID(ctx, shiftID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find shift", slog.String("error", err.Error()), slog.String("shift_id", shiftID))
		}
		return nil, err
	}

	filter := domain.TransactionFilter{
		Status:      domain.TransactionStatus(params.Status),
		PaymentType: domain.PaymentType(params.PaymentType),
		Page:        params.Page,
		PageSize:    params.PageSize,
	}
	transactions, total, err := s.txnRepo.ListTransactionsByShift(ctx, shiftID, filter)
	if err != nil {
		logger.Error("Failed to list shift transactions", slog.String("error", err.Error()), slog.String("shift_id", shiftID))
		return nil, fmt.Errorf("failed to list shift transactions: %w", err)
	}

	return &dto.ShiftDetailResponse{
		Shift:        dto.ToShiftResponse(shift),
		Transactions: dto.ToTransactionResponses(transactions),
		Total:        total,
		Page:         params.Page,
	}, nil
}

// ListShifts retrieves the admin-wide shift listing.
func (s *shiftService) ListShifts(ctx context.Context, params dto.ListShiftsParams) (*dto.ListShiftsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := domain.ShiftFilter{
		CashierID:  params.CashierID,
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		IsMismatch: params.IsMismatch,
		SortBy:     params.SortBy,
		SortOrder:  params.SortOrder,
		Page:       params.Page,
		PageSize:   params.PageSize,
	}

	shifts, total, err := s.shiftRepo.ListShifts(ctx, filter)
	if err != nil {
		logger.Error("Failed to list shifts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	return &dto.ListShiftsResponse{
		Shifts: dto.ToShiftResponses(shifts),
		Total:  total,
		Page:   params.Page,
	}, nil
}
