package services

import (
	"context"

	"github.com/kasirkita/pos_backend/internal/core/domain"
	"github.com/kasirkita/pos_backend/internal/dto"
)

// ShiftSvcFacade defines the cash drawer shift lifecycle and its queries.
type ShiftSvcFacade interface {
	// OpenShift creates a new open shift for the cashier.
	// Fails with services.ErrShiftAlreadyOpen if one is already open.
	OpenShift(ctx context.Context, cashierID string, cashStart int64) (*domain.Shift, error)

	// CloseShift reconciles and closes the cashier's active shift: it computes
	// the expected drawer cash from COMPLETED CASH transactions, the difference
	// against the counted cashEnd, and writes every close-time field atomically.
	// Fails with services.ErrNoActiveShift or *services.PendingTransactionsError.
	CloseShift(ctx context.Context, cashierID string, cashEnd int64) (*domain.Shift, error)

	// FindActiveShift returns the cashier's open shift, or apperrors.ErrNotFound.
	FindActiveShift(ctx context.Context, cashierID string) (*domain.Shift, error)

	// GetShiftDetail returns a shift header plus a filtered page of its transactions.
	GetShiftDetail(ctx context.Context, shiftID string, params dto.ShiftDetailParams) (*dto.ShiftDetailResponse, error)

	// ListShifts returns the admin-wide shift listing.
	ListShifts(ctx context.Context, params dto.ListShiftsParams) (*dto.ListShiftsResponse, error)
}
