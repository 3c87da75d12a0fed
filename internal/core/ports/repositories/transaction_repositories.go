package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/kasirkita/pos_backend/internal/core/domain"
)

// SaleReader defines read operations for transaction (sale) data.
type SaleReader interface {
	// FindTransactionByID retrieves a transaction with its items.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByShift retrieves a filtered, paginated page of a shift's
	// transactions (items included) along with the total matching count.
	ListTransactionsByShift(ctx context.Context, shiftID string, filter domain.TransactionFilter) ([]domain.Transaction, int64, error)

	// ListTransactions retrieves an admin-wide filtered listing of transactions
	// with items included.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

// SaleTransactionSupport defines the sale operations used inside the engine's
// atomic units of work. None of these commit; the caller owns the transaction.
type SaleTransactionSupport interface {
	// FindPendingByShiftInTx retrieves the shift's PENDING transaction, if any.
	// Returns apperrors.ErrNotFound when there is none.
	FindPendingByShiftInTx(ctx context.Context, tx pgx.Tx, shiftID string) (*domain.Transaction, error)

	// CountPendingByShiftInTx counts the shift's PENDING transactions.
	CountPendingByShiftInTx(ctx context.Context, tx pgx.Tx, shiftID string) (int64, error)

	// FindTransactionByIDInTx retrieves a transaction with its items within the
	// given transaction, locking the transaction row.
	FindTransactionByIDInTx(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error)

	// FindCompletedByShiftInTx retrieves all COMPLETED transactions of a shift,
	// used for the close-time reconciliation sums.
	FindCompletedByShiftInTx(ctx context.Context, tx pgx.Tx, shiftID string) ([]domain.Transaction, error)

	// SaveTransactionInTx inserts the transaction row and all its items.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction, items []domain.TransactionItem) error

	// UpdateTransactionCompletionInTx writes the completion fields (paid amount,
	// change, payment type, debit card, COMPLETED status) in one update.
	UpdateTransactionCompletionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// UpdateTransactionStatusInTx writes only the status, used for cancellation.
	UpdateTransactionStatusInTx(ctx context.Context, tx pgx.Tx, transactionID string, status domain.TransactionStatus) error
}

// TransactionRepositoryFacade combines all sale-related repository interfaces.
type TransactionRepositoryFacade interface {
	SaleReader
	SaleTransactionSupport
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with
// transaction capabilities.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
