package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/kasirkita/pos_backend/internal/core/domain"
)

// ShiftReader defines read operations for shift data.
type ShiftReader interface {
	// FindShiftByID retrieves a shift by its unique identifier.
	FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error)

	// FindActiveShiftByCashier retrieves the cashier's open shift (closed_at IS NULL).
	// Returns apperrors.ErrNotFound when the cashier has no open shift.
	FindActiveShiftByCashier(ctx context.Context, cashierID string) (*domain.Shift, error)

	// ListShifts retrieves a filtered, paginated page of shifts with cashier names
	// joined, along with the total matching count.
	ListShifts(ctx context.Context, filter domain.ShiftFilter) ([]domain.Shift, int64, error)
}

// ShiftTransactionSupport defines the shift operations used inside atomic units of work.
type ShiftTransactionSupport interface {
	// FindActiveShiftForUpdate retrieves the cashier's open shift and locks its row
	// within the given transaction, serializing concurrent shift mutations for the
	// same cashier. Returns apperrors.ErrNotFound when no shift is open.
	FindActiveShiftForUpdate(ctx context.Context, tx pgx.Tx, cashierID string) (*domain.Shift, error)

	// SaveShiftInTx inserts a new open shift row within the given transaction.
	// The partial unique index on open shifts backs the one-open-shift invariant.
	SaveShiftInTx(ctx context.Context, tx pgx.Tx, shift domain.Shift) error

	// CloseShiftInTx writes all close-time fields (cash end, expected cash,
	// difference, mismatch flag, totals, closed_at) in one update.
	CloseShiftInTx(ctx context.Context, tx pgx.Tx, shift domain.Shift) error
}

// ShiftRepositoryFacade combines all shift-related repository interfaces.
type ShiftRepositoryFacade interface {
	ShiftReader
	ShiftTransactionSupport
}

// ShiftRepositoryWithTx extends ShiftRepositoryFacade with transaction capabilities.
type ShiftRepositoryWithTx interface {
	ShiftRepositoryFacade
	TransactionManager
}
