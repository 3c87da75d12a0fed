package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/kasirkita/pos_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every repository over the shared connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(dbPool),
		CategoryRepo:    newPgxCategoryRepository(dbPool),
		ProductRepo:     newPgxProductRepository(dbPool),
		ShiftRepo:       newPgxShiftRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		ReportingRepo:   newPgxReportingRepository(dbPool),
	}
}
