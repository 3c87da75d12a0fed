package services

import (
	"context"

	"github.com/kasirkita/pos_backend/internal/core/domain"
	"github.com/kasirkita/pos_backend/internal/dto"
)

// TransactionSvcFacade defines the sale lifecycle and its queries.
// Create, Complete and Cancel each run in a single all-or-nothing storage
// transaction covering the guards, the stock writes and the sale rows.
type TransactionSvcFacade interface {
	// Create rings up a new PENDING sale on the cashier's active shift,
	// decrementing stock and snapshotting unit prices into the line items.
	Create(ctx context.Context, cashierID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// Complete finalizes a PENDING sale with its payment. Stock stays decremented.
	Complete(ctx context.Context, cashierID string, transactionID string, req dto.CompleteTransactionRequest) (*domain.Transaction, error)

	// Cancel voids a PENDING sale and restores every line item's stock.
	Cancel(ctx context.Context, cashierID string, transactionID string) (*domain.Transaction, error)

	// ListByActiveShift returns the cashier's open shift with its transactions.
	ListByActiveShift(ctx context.Context, cashierID string) (*dto.ActiveShiftTransactionsResponse, error)

	// ListAll returns the admin-wide transaction listing.
	ListAll(ctx context.Context, params dto.ListTransactionsParams) ([]dto.TransactionResponse, error)
}
