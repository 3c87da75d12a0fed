package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasirkita/pos_backend/internal/apperrors"
	"github.com/kasirkita/pos_backend/internal/core/domain"
	portsrepo "github.com/kasirkita/pos_backend/internal/core/ports/repositories"
	"github.com/kasirkita/pos_backend/internal/models"
	"github.com/kasirkita/pos_backend/internal/utils/mapping"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(db *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, shift_id, cashier_id, status, total_amount, paid_amount, change_amount, payment_type, debit_card_no, created_at`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.ShiftID,
		&m.CashierID,
		&m.Status,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.ChangeAmount,
		&m.PaymentType,
		&m.DebitCardNo,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// querier is satisfied by both the pool and a pgx.Tx, so item loading works
// inside and outside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// loadItemsFor fetches the line items for a set of transactions and attaches
// them in place, product names joined for display.
func loadItemsFor(ctx context.Context, q querier, transactions []domain.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	ids := make([]string, len(transactions))
	index := make(map[string]int, len(transactions))
	for i := range transactions {
		ids[i] = transactions[i].TransactionID
		index[transactions[i].TransactionID] = i
	}

	query := `
        SELECT ti.transaction_item_id, ti.transaction_id, ti.product_id, ti.quantity, ti.price, p.name
        FROM transaction_items ti
        JOIN products p ON p.product_id = ti.product_id
        WHERE ti.transaction_id = ANY($1)
        ORDER BY ti.transaction_item_id;
    `
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query transaction items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.TransactionItem
		err := rows.Scan(&m.TransactionItemID, &m.TransactionID, &m.ProductID, &m.Quantity, &m.Price, &m.ProductName)
		if err != nil {
			return fmt.Errorf("failed to scan transaction item row: %w", err)
		}
		i := index[m.TransactionID]
		transactions[i].Items = append(transactions[i].Items, mapping.ToDomainTransactionItem(m))
	}
	return rows.Err()
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	transactions := []domain.Transaction{mapping.ToDomainTransaction(*m)}
	if err := loadItemsFor(ctx, r.Pool, transactions); err != nil {
		return nil, err
	}
	return &transactions[0], nil
}

func (r *PgxTransactionRepository) ListTransactionsByShift(ctx context.Context, shiftID string, filter domain.TransactionFilter) ([]domain.Transaction, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}

	where := ` WHERE shift_id = $1`
	args := []any{shiftID}
	argIdx := 2
	if filter.Status != "" {
		where += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, string(filter.Status))
		argIdx++
	}
	if filter.PaymentType != "" {
		where += fmt.Sprintf(` AND payment_type = $%d`, argIdx)
		args = append(args, string(filter.PaymentType))
		argIdx++
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT count(*) FROM transactions`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shift transactions: %w", err)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`, argIdx, argIdx+1)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	transactions, err := r.queryTransactions(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	if err := loadItemsFor(ctx, r.Pool, transactions); err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1
	if filter.Status != "" {
		where += fmt.Sprintf(` AND t.status = $%d`, argIdx)
		args = append(args, string(filter.Status))
		argIdx++
	}
	if filter.CashierID != "" {
		where += fmt.Sprintf(` AND t.cashier_id = $%d`, argIdx)
		args = append(args, filter.CashierID)
		argIdx++
	}
	if filter.PaymentType != "" {
		where += fmt.Sprintf(` AND t.payment_type = $%d`, argIdx)
		args = append(args, string(filter.PaymentType))
		argIdx++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(` AND t.created_at >= $%d`, argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(` AND t.created_at < $%d`, argIdx)
		args = append(args, filter.EndDate.AddDate(0, 0, 1))
		argIdx++
	}
	if filter.ShiftMismatch != nil {
		where += fmt.Sprintf(` AND s.is_mismatch = $%d`, argIdx)
		args = append(args, *filter.ShiftMismatch)
		argIdx++
	}

	sortColumn := "t.created_at"
	if filter.SortBy == "totalAmount" {
		sortColumn = "t.total_amount"
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	query := `
        SELECT t.transaction_id, t.shift_id, t.cashier_id, t.status, t.total_amount,
               t.paid_amount, t.change_amount, t.payment_type, t.debit_card_no, t.created_at
        FROM transactions t
        JOIN shifts s ON s.shift_id = t.shift_id` + where +
		fmt.Sprintf(` ORDER BY %s %s LIMIT $%d OFFSET $%d;`, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	transactions, err := r.queryTransactions(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := loadItemsFor(ctx, r.Pool, transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	modelTransactions := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTransactions = append(modelTransactions, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	return mapping.ToDomainTransactionSlice(modelTransactions), nil
}

func (r *PgxTransactionRepository) FindPendingByShiftInTx(ctx context.Context, tx pgx.Tx, shiftID string) (*domain.Transaction, error) {
	query := `
        SELECT ` + transactionColumns + `
        FROM transactions
        WHERE shift_id = $1 AND status = 'PENDING'
        LIMIT 1;
    `
	m, err := scanTransaction(tx.QueryRow(ctx, query, shiftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find pending transaction for shift %s: %w", shiftID, err)
	}
	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

func (r *PgxTransactionRepository) CountPendingByShiftInTx(ctx context.Context, tx pgx.Tx, shiftID string) (int64, error) {
	var count int64
	query := `SELECT count(*) FROM transactions WHERE shift_id = $1 AND status = 'PENDING';`
	if err := tx.QueryRow(ctx, query, shiftID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending transactions for shift %s: %w", shiftID, err)
	}
	return count, nil
}

// FindTransactionByIDInTx locks the transaction row so concurrent complete and
// cancel calls for the same sale serialize.
func (r *PgxTransactionRepository) FindTransactionByIDInTx(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 FOR UPDATE;`
	m, err := scanTransaction(tx.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock transaction %s: %w", transactionID, err)
	}

	transactions := []domain.Transaction{mapping.ToDomainTransaction(*m)}
	if err := loadItemsFor(ctx, tx, transactions); err != nil {
		return nil, err
	}
	return &transactions[0], nil
}

func (r *PgxTransactionRepository) FindCompletedByShiftInTx(ctx context.Context, tx pgx.Tx, shiftID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE shift_id = $1 AND status = 'COMPLETED';`
	rows, err := tx.Query(ctx, query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed transactions for shift %s: %w", shiftID, err)
	}
	defer rows.Close()

	modelTransactions := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan completed transaction row: %w", err)
		}
		modelTransactions = append(modelTransactions, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating completed transaction rows: %w", rows.Err())
	}

	return mapping.ToDomainTransactionSlice(modelTransactions), nil
}

// SaveTransactionInTx inserts the transaction row and batches its item inserts.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction, items []domain.TransactionItem) error {
	m := mapping.ToModelTransaction(txn)
	query := `
        INSERT INTO transactions (transaction_id, shift_id, cashier_id, status, total_amount, paid_amount, payment_type, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.ShiftID,
		m.CashierID,
		m.Status,
		m.TotalAmount,
		m.PaidAmount,
		m.PaymentType,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
        INSERT INTO transaction_items (transaction_item_id, transaction_id, product_id, quantity, price)
        VALUES ($1, $2, $3, $4, $5);
    `
	for _, item := range items {
		mi := mapping.ToModelTransactionItem(item)
		batch.Queue(itemQuery, mi.TransactionItemID, mi.TransactionID, mi.ProductID, mi.Quantity, mi.Price)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute item batch for transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// UpdateTransactionCompletionInTx writes all completion fields in one update.
// The status guard keeps a terminal sale from being completed twice.
func (r *PgxTransactionRepository) UpdateTransactionCompletionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
        UPDATE transactions
        SET status = $1, paid_amount = $2, change_amount = $3, payment_type = $4, debit_card_no = $5
        WHERE transaction_id = $6 AND status = 'PENDING';
    `
	cmdTag, err := tx.Exec(ctx, query,
		m.Status,
		m.PaidAmount,
		m.ChangeAmount,
		m.PaymentType,
		m.DebitCardNo,
		m.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found or not pending: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTransactionRepository) UpdateTransactionStatusInTx(ctx context.Context, tx pgx.Tx, transactionID string, status domain.TransactionStatus) error {
	query := `
        UPDATE transactions
        SET status = $1
        WHERE transaction_id = $2 AND status = 'PENDING';
    `
	cmdTag, err := tx.Exec(ctx, query, string(status), transactionID)
	if err != nil {
		return fmt.Errorf("failed to update transaction status %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found or not pending: %w", apperrors.ErrNotFound)
	}
	return nil
}
