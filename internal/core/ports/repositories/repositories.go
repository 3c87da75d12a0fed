package repositories

// RepositoryProvider bundles all repository facades for dependency injection.
type RepositoryProvider struct {
	UserRepo        UserRepositoryFacade
	CategoryRepo    CategoryRepositoryFacade
	ProductRepo     ProductRepositoryWithTx
	ShiftRepo       ShiftRepositoryWithTx
	TransactionRepo TransactionRepositoryWithTx
	ReportingRepo   ReportingRepositoryFacade
}
