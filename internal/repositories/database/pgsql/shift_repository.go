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

type PgxShiftRepository struct {
	BaseRepository
}

func newPgxShiftRepository(db *pgxpool.Pool) portsrepo.ShiftRepositoryWithTx {
	return &PgxShiftRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ShiftRepositoryWithTx = (*PgxShiftRepository)(nil)

const shiftColumns = `shift_id, cashier_id, cash_start, opened_at, cash_end, expected_cash, difference, is_mismatch, total_transactions, closed_at`

func scanShift(row pgx.Row) (*models.Shift, error) {
	var m models.Shift
	err := row.Scan(
		&m.ShiftID,
		&m.CashierID,
		&m.CashStart,
		&m.OpenedAt,
		&m.CashEnd,
		&m.ExpectedCash,
		&m.Difference,
		&m.IsMismatch,
		&m.TotalTransactions,
		&m.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxShiftRepository) FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error) {
	query := `
        SELECT s.shift_id, s.cashier_id, s.cash_start, s.opened_at, s.cash_end, s.expected_cash,
               s.difference, s.is_mismatch, s.total_transactions, s.closed_at, u.name
        FROM shifts s
        JOIN users u ON u.user_id = s.cashier_id
        WHERE s.shift_id = $1;
    `
	var m models.Shift
	err := r.Pool.QueryRow(ctx, query, shiftID).Scan(
		&m.ShiftID,
		&m.CashierID,
		&m.CashStart,
		&m.OpenedAt,
		&m.CashEnd,
		&m.ExpectedCash,
		&m.Difference,
		&m.IsMismatch,
		&m.TotalTransactions,
		&m.ClosedAt,
		&m.CashierName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find shift by ID %s: %w", shiftID, err)
	}
	shift := mapping.ToDomainShift(m)
	return &shift, nil
}

func (r *PgxShiftRepository) FindActiveShiftByCashier(ctx context.Context, cashierID string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE cashier_id = $1 AND closed_at IS NULL;`
	m, err := scanShift(r.Pool.QueryRow(ctx, query, cashierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active shift for cashier %s: %w", cashierID, err)
	}
	shift := mapping.ToDomainShift(*m)
	return &shift, nil
}

// FindActiveShiftForUpdate locks the open shift row so concurrent open, close
// and sale operations for the same cashier serialize on it.
func (r *PgxShiftRepository) FindActiveShiftForUpdate(ctx context.Context, tx pgx.Tx, cashierID string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE cashier_id = $1 AND closed_at IS NULL FOR UPDATE;`
	m, err := scanShift(tx.QueryRow(ctx, query, cashierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock active shift for cashier %s: %w", cashierID, err)
	}
	shift := mapping.ToDomainShift(*m)
	return &shift, nil
}

func (r *PgxShiftRepository) SaveShiftInTx(ctx context.Context, tx pgx.Tx, shift domain.Shift) error {
	m := mapping.ToModelShift(shift)
	query := `
        INSERT INTO shifts (shift_id, cashier_id, cash_start, opened_at)
        VALUES ($1, $2, $3, $4);
    `
	_, err := tx.Exec(ctx, query, m.ShiftID, m.CashierID, m.CashStart, m.OpenedAt)
	if err != nil {
		return fmt.Errorf("failed to insert shift: %w", err)
	}
	return nil
}

// CloseShiftInTx writes every close-time field in one update. The closed_at
// guard keeps an already-closed shift from being closed twice.
func (r *PgxShiftRepository) CloseShiftInTx(ctx context.Context, tx pgx.Tx, shift domain.Shift) error {
	m := mapping.ToModelShift(shift)
	query := `
        UPDATE shifts
        SET cash_end = $1, expected_cash = $2, difference = $3, is_mismatch = $4,
            total_transactions = $5, closed_at = $6
        WHERE shift_id = $7 AND closed_at IS NULL;
    `
	cmdTag, err := tx.Exec(ctx, query,
		m.CashEnd,
		m.ExpectedCash,
		m.Difference,
		m.IsMismatch,
		m.TotalTransactions,
		m.ClosedAt,
		m.ShiftID,
	)
	if err != nil {
		return fmt.Errorf("failed to close shift: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("shift not found or already closed: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxShiftRepository) ListShifts(ctx context.Context, filter domain.ShiftFilter) ([]domain.Shift, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1
	if filter.CashierID != "" {
		where += fmt.Sprintf(` AND s.cashier_id = $%d`, argIdx)
		args = append(args, filter.CashierID)
		argIdx++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(` AND s.opened_at >= $%d`, argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(` AND s.opened_at < $%d`, argIdx)
		args = append(args, filter.EndDate.AddDate(0, 0, 1))
		argIdx++
	}
	if filter.IsMismatch != nil {
		where += fmt.Sprintf(` AND s.is_mismatch = $%d`, argIdx)
		args = append(args, *filter.IsMismatch)
		argIdx++
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT count(*) FROM shifts s`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shifts: %w", err)
	}

	// Sort columns are mapped from a fixed set, never interpolated from input.
	sortColumn := "s.opened_at"
	switch filter.SortBy {
	case "closedAt":
		sortColumn = "s.closed_at"
	case "totalTransactions":
		sortColumn = "s.total_transactions"
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	query := `
        SELECT s.shift_id, s.cashier_id, s.cash_start, s.opened_at, s.cash_end, s.expected_cash,
               s.difference, s.is_mismatch, s.total_transactions, s.closed_at, u.name
        FROM shifts s
        JOIN users u ON u.user_id = s.cashier_id` + where +
		fmt.Sprintf(` ORDER BY %s %s NULLS LAST LIMIT $%d OFFSET $%d;`, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	modelShifts := []models.Shift{}
	for rows.Next() {
		var m models.Shift
		err := rows.Scan(
			&m.ShiftID,
			&m.CashierID,
			&m.CashStart,
			&m.OpenedAt,
			&m.CashEnd,
			&m.ExpectedCash,
			&m.Difference,
			&m.IsMismatch,
			&m.TotalTransactions,
			&m.ClosedAt,
			&m.CashierName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift row: %w", err)
		}
		modelShifts = append(modelShifts, m)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating shift rows: %w", rows.Err())
	}

	return mapping.ToDomainShiftSlice(modelShifts), total, nil
}
