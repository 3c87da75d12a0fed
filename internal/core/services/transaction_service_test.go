package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kasirkita/pos_backend/internal/apperrors"
	"github.com/kasirkita/pos_backend/internal/core/domain"
	portsrepo "github.com/kasirkita/pos_backend/internal/core/ports/repositories"
	portssvc "github.com/kasirkita/pos_backend/internal/core/ports/services"
	"github.com/kasirkita/pos_backend/internal/core/services"
	"github.com/kasirkita/pos_backend/internal/dto"
)

// --- Mock ProductRepository ---

type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepositoryWithTx = (*MockProductRepository)(nil)

func (m *MockProductRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockProductRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockProductRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductByNameInCategory(ctx context.Context, name string, categoryID string, excludeID string) (*domain.Product, error) {
	args := m.Called(ctx, name, categoryID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) CountProductsBelowStock(ctx context.Context, threshold int64) (int64, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product, initialStock domain.StockAdjustment) error {
	args := m.Called(ctx, product, initialStock)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product, stockAdjustment *domain.StockAdjustment) error {
	args := m.Called(ctx, product, stockAdjustment)
	return args.Error(0)
}

func (m *MockProductRepository) SoftDeleteProduct(ctx context.Context, productID string, now time.Time) error {
	args := m.Called(ctx, productID, now)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, tx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) AdjustStockInTx(ctx context.Context, tx pgx.Tx, adjustments []domain.StockAdjustment, now time.Time) error {
	args := m.Called(ctx, tx, adjustments, now)
	return args.Error(0)
}

func (m *MockProductRepository) ListStockHistories(ctx context.Context, filter domain.StockHistoryFilter) ([]domain.StockHistory, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.StockHistory), args.Get(1).(int64), args.Error(2)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockShiftRepo   *MockShiftRepository
	mockProductRepo *MockProductRepository
	service         portssvc.TransactionSvcFacade
	cashierID       string
	shift           domain.Shift
	coffee          domain.Product
	tea             domain.Product
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockShiftRepo = new(MockShiftRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockShiftRepo, suite.mockProductRepo, 5*time.Second)

	suite.cashierID = uuid.NewString()
	suite.shift = domain.Shift{
		ShiftID:   uuid.NewString(),
		CashierID: suite.cashierID,
		CashStart: 100000,
		OpenedAt:  time.Now().UTC().Add(-time.Hour),
	}
	suite.coffee = domain.Product{
		ProductID: uuid.NewString(),
		Name:      "Coffee",
		Price:     15000,
		Stock:     10,
	}
	suite.tea = domain.Product{
		ProductID: uuid.NewString(),
		Name:      "Tea",
		Price:     8000,
		Stock:     5,
	}
}

func (suite *TransactionServiceTestSuite) expectUnitOfWork() {
	suite.mockTxnRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockTxnRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
}

func (suite *TransactionServiceTestSuite) expectActiveShift() {
	suite.mockShiftRepo.On("FindActiveShiftForUpdate", mock.Anything, mock.Anything, suite.cashierID).Return(&suite.shift, nil).Once()
}

func (suite *TransactionServiceTestSuite) pendingTxn() *domain.Transaction {
	return &domain.Transaction{
		TransactionID: uuid.NewString(),
		ShiftID:       suite.shift.ShiftID,
		CashierID:     suite.cashierID,
		Status:        domain.StatusPending,
		TotalAmount:   38000,
		PaymentType:   domain.PaymentCash,
		CreatedAt:     time.Now().UTC(),
		Items: []domain.TransactionItem{
			{
				TransactionItemID: uuid.NewString(),
				ProductID:         suite.coffee.ProductID,
				Quantity:          2,
				Price:             suite.coffee.Price,
			},
			{
				TransactionItemID: uuid.NewString(),
				ProductID:         suite.tea.ProductID,
				Quantity:          1,
				Price:             suite.tea.Price,
			},
		},
	}
}

// --- Create ---

func (suite *TransactionServiceTestSuite) TestCreate_Success() {
	ctx := context.Background()
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindPendingByShiftInTx", mock.Anything, mock.Anything, suite.shift.ShiftID).Return(nil, apperrors.ErrNotFound).Once()

	products := map[string]domain.Product{
		suite.coffee.ProductID: suite.coffee,
		suite.tea.ProductID:    suite.tea,
	}
	suite.mockProductRepo.On("FindProductsByIDsForUpdate", mock.Anything, mock.Anything, []string{suite.coffee.ProductID, suite.tea.ProductID}).Return(products, nil).Once()

	var capturedAdjustments []domain.StockAdjustment
	suite.mockProductRepo.On("AdjustStockInTx", mock.Anything, mock.Anything, mock.AnythingOfType("[]domain.StockAdjustment"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			capturedAdjustments = args.Get(2).([]domain.StockAdjustment)
		}).Return(nil).Once()

	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.TransactionItem")).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.CreateTransactionRequest{
		Items: []dto.CreateTransactionItem{
			{ProductID: suite.coffee.ProductID, Quantity: 2},
			{ProductID: suite.tea.ProductID, Quantity: 1},
		},
	}

	txn, err := suite.service.Create(ctx, suite.cashierID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(suite.shift.ShiftID, txn.ShiftID)
	suite.Equal(domain.StatusPending, txn.Status)
	suite.Equal(int64(2*15000+8000), txn.TotalAmount)
	// New sales start as cash until a payment type is picked at completion.
	suite.Equal(domain.PaymentCash, txn.PaymentType)
	suite.Nil(txn.ChangeAmount)

	// Unit prices are snapshotted from the locked catalog rows.
	suite.Require().Len(txn.Items, 2)
	suite.Equal(int64(15000), txn.Items[0].Price)
	suite.Equal(int64(8000), txn.Items[1].Price)

	// Each line reserves its own stock with the pending reason.
	suite.Require().Len(capturedAdjustments, 2)
	suite.Equal(int64(-2), capturedAdjustments[0].Change)
	suite.Equal(int64(-1), capturedAdjustments[1].Change)
	suite.Equal("Transaction PENDING", capturedAdjustments[0].Reason)

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreate_NoActiveShift() {
	ctx := context.Background()
	suite.expectUnitOfWork()
	suite.mockShiftRepo.On("FindActiveShiftForUpdate", mock.Anything, mock.Anything, suite.cashierID).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.CreateTransactionRequest{
		Items: []dto.CreateTransactionItem{{ProductID: suite.coffee.ProductID, Quantity: 1}},
	}

	txn, err := suite.service.Create(ctx, suite.cashierID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoActiveShift)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestCreate_EmptyItems() {
	ctx := context.Background()

	txn, err := suite.service.Create(ctx, suite.cashierID, dto.CreateTransactionRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEmptyTransaction)
	suite.Nil(txn)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreate_ExistingPendingBlocks() {
	ctx := context.Background()
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindPendingByShiftInTx", mock.Anything, mock.Anything, suite.shift.ShiftID).Return(suite.pendingTxn(), nil).Once()

	req := dto.CreateTransactionRequest{
		Items: []dto.CreateTransactionItem{{ProductID: suite.coffee.ProductID, Quantity: 1}},
	}

	txn, err := suite.service.Create(ctx, suite.cashierID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrHasPendingTransaction)
	suite.Nil(txn)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "AdjustStockInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreate_UnknownProduct() {
	ctx := context.Background()
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindPendingByShiftInTx", mock.Anything, mock.Anything, suite.shift.ShiftID).Return(nil, apperrors.ErrNotFound).Once()

	// Deleted and missing products are both absent from the locked set.
	suite.mockProductRepo.On("FindProductsByIDsForUpdate", mock.Anything, mock.Anything, mock.Anything).Return(map[string]domain.Product{}, nil).Once()

	req := dto.CreateTransactionRequest{
		Items: []dto.CreateTransactionItem{{ProductID: uuid.NewString(), Quantity: 1}},
	}

	txn, err := suite.service.Create(ctx, suite.cashierID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidProduct)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestCreate_InsufficientStock() {
	ctx := context.Background()
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindPendingByShiftInTx", mock.Anything, mock.Anything, suite.shift.ShiftID).Return(nil, apperrors.ErrNotFound).Once()

	products := map[string]domain.Product{suite.tea.ProductID: suite.tea}
	suite.mockProductRepo.On("FindProductsByIDsForUpdate", mock.Anything, mock.Anything, mock.Anything).Return(products, nil).Once()

	req := dto.CreateTransactionRequest{
		Items: []dto.CreateTransactionItem{{ProductID: suite.tea.ProductID, Quantity: 6}},
	}

	txn, err := suite.service.Create(ctx, suite.cashierID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientStock)
	suite.Nil(txn)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "AdjustStockInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreate_DuplicateLinesSumAgainstStock() {
	ctx := context.Background()
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindPendingByShiftInTx", mock.Anything, mock.Anything, suite.shift.ShiftID).Return(nil, apperrors.ErrNotFound).Once()

	// Tea has 5 in stock. Each line alone fits, their sum does not.
	products := map[string]domain.Product{suite.tea.ProductID: suite.tea}
	suite.mockProductRepo.On("FindProductsByIDsForUpdate", mock.Anything, mock.Anything, []string{suite.tea.ProductID}).Return(products, nil).Once()

	req := dto.CreateTransactionRequest{
		Items: []dto.CreateTransactionItem{
			{ProductID: suite.tea.ProductID, Quantity: 3},
			{ProductID: suite.tea.ProductID, Quantity: 3},
		},
	}

	txn, err := suite.service.Create(ctx, suite.cashierID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientStock)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestCreate_DuplicateLinesWithinStock() {
	ctx := context.Background()
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindPendingByShiftInTx", mock.Anything, mock.Anything, suite.shift.ShiftID).Return(nil, apperrors.ErrNotFound).Once()

	products := map[string]domain.Product{suite.tea.ProductID: suite.tea}
	suite.mockProductRepo.On("FindProductsByIDsForUpdate", mock.Anything, mock.Anything, []string{suite.tea.ProductID}).Return(products, nil).Once()

	var capturedAdjustments []domain.StockAdjustment
	suite.mockProductRepo.On("AdjustStockInTx", mock.Anything, mock.Anything, mock.AnythingOfType("[]domain.StockAdjustment"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			capturedAdjustments = args.Get(2).([]domain.StockAdjustment)
		}).Return(nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.TransactionItem")).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.CreateTransactionRequest{
		Items: []dto.CreateTransactionItem{
			{ProductID: suite.tea.ProductID, Quantity: 2},
			{ProductID: suite.tea.ProductID, Quantity: 3},
		},
	}

	txn, err := suite.service.Create(ctx, suite.cashierID, req)

	suite.Require().NoError(err)
	// Lines stay separate: two items, two audit rows.
	suite.Len(txn.Items, 2)
	suite.Len(capturedAdjustments, 2)
	suite.Equal(int64(5*8000), txn.TotalAmount)
}

// --- Complete ---

func (suite *TransactionServiceTestSuite) TestComplete_Cash() {
	ctx := context.Background()
	pending := suite.pendingTxn()
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindTransactionByIDInTx", mock.Anything, mock.Anything, pending.TransactionID).Return(pending, nil).Once()

	var saved domain.Transaction
	suite.mockTxnRepo.On("UpdateTransactionCompletionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) {
			saved = args.Get(2).(domain.Transaction)
		}).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	paid := int64(50000)
	req := dto.CompleteTransactionRequest{PaymentType: domain.PaymentCash, PaidAmount: &paid}

	txn, err := suite.service.Complete(ctx, suite.cashierID, pending.TransactionID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.Equal(domain.PaymentCash, txn.PaymentType)
	suite.Equal(int64(50000), txn.PaidAmount)
	suite.Require().NotNil(txn.ChangeAmount)
	suite.Equal(int64(12000), *txn.ChangeAmount)
	suite.Nil(txn.DebitCardNo)

	suite.Equal(domain.StatusCompleted, saved.Status)
	suite.Equal(int64(12000), *saved.ChangeAmount)
}

func (suite *TransactionServiceTestSuite) TestComplete_CashExactAmount() {
	ctx := context.Background()
	pending := suite.pendingTxn()
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindTransactionByIDInTx", mock.Anything, mock.Anything, pending.TransactionID).Return(pending, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionCompletionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	paid := pending.TotalAmount
	req := dto.CompleteTransactionRequest{PaymentType: domain.PaymentCash, PaidAmount: &paid}

	txn, err := suite.service.Complete(ctx, suite.cashierID, pending.TransactionID, req)

	suite.Require().NoError(err)
	suite.Equal(int64(0), *txn.ChangeAmount)
}

func (suite *TransactionServiceTestSuite) TestComplete_Debit() {
	ctx := context.Background()
	pending := suite.pendingTxn()
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindTransactionByIDInTx", mock.Anything, mock.Anything, pending.TransactionID).Return(pending, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionCompletionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	card := "5123450000001234"
	req := dto.CompleteTransactionRequest{PaymentType: domain.PaymentDebit, DebitCardNo: &card}

	txn, err := suite.service.Complete(ctx, suite.cashierID, pending.TransactionID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.Equal(domain.PaymentDebit, txn.PaymentType)
	// Debit charges the exact total and moves no drawer cash, so no change
	// is recorded.
	suite.Equal(pending.TotalAmount, txn.PaidAmount)
	suite.Nil(txn.ChangeAmount)
	suite.Require().NotNil(txn.DebitCardNo)
	suite.Equal(card, *txn.DebitCardNo)
	suite.Equal(int64(0), txn.CashRetained())
}

func (suite *TransactionServiceTestSuite) TestComplete_NoItemsRejected() {
	ctx := context.Background()
	pending := suite.pendingTxn()
	pending.Items = nil
	pending.TotalAmount = 0
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindTransactionByIDInTx", mock.Anything, mock.Anything, pending.TransactionID).Return(pending, nil).Once()

	paid := int64(10000)
	req := dto.CompleteTransactionRequest{PaymentType: domain.PaymentCash, PaidAmount: &paid}

	txn, err := suite.service.Complete(ctx, suite.cashierID, pending.TransactionID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEmptyTransaction)
	suite.Nil(txn)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransactionCompletionInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestComplete_InsufficientCash() {
	ctx := context.Background()
	pending := suite.pendingTxn()
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindTransactionByIDInTx", mock.Anything, mock.Anything, pending.TransactionID).Return(pending, nil).Once()

	paid := pending.TotalAmount - 1
	req := dto.CompleteTransactionRequest{PaymentType: domain.PaymentCash, PaidAmount: &paid}

	txn, err := suite.service.Complete(ctx, suite.cashierID, pending.TransactionID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientPayment)
	suite.Nil(txn)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransactionCompletionInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestComplete_MissingPaidAmount() {
	ctx := context.Background()
	pending := suite.pendingTxn()
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindTransactionByIDInTx", mock.Anything, mock.Anything, pending.TransactionID).Return(pending, nil).Once()

	req := dto.CompleteTransactionRequest{PaymentType: domain.PaymentCash}

	txn, err := suite.service.Complete(ctx, suite.cashierID, pending.TransactionID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientPayment)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestComplete_MissingDebitCard() {
	ctx := context.Background()
	pending := suite.pendingTxn()
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindTransactionByIDInTx", mock.Anything, mock.Anything, pending.TransactionID).Return(pending, nil).Once()

	blank := "   "
	req := dto.CompleteTransactionRequest{PaymentType: domain.PaymentDebit, DebitCardNo: &blank}

	txn, err := suite.service.Complete(ctx, suite.cashierID, pending.TransactionID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidDebitCard)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestComplete_NotPending() {
	ctx := context.Background()
	done := suite.pendingTxn()
	done.Status = domain.StatusCompleted
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindTransactionByIDInTx", mock.Anything, mock.Anything, done.TransactionID).Return(done, nil).Once()

	paid := int64(50000)
	req := dto.CompleteTransactionRequest{PaymentType: domain.PaymentCash, PaidAmount: &paid}

	txn, err := suite.service.Complete(ctx, suite.cashierID, done.TransactionID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotPending)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestComplete_WrongShift() {
	ctx := context.Background()
	pending := suite.pendingTxn()
	pending.ShiftID = uuid.NewString()
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindTransactionByIDInTx", mock.Anything, mock.Anything, pending.TransactionID).Return(pending, nil).Once()

	paid := int64(50000)
	req := dto.CompleteTransactionRequest{PaymentType: domain.PaymentCash, PaidAmount: &paid}

	txn, err := suite.service.Complete(ctx, suite.cashierID, pending.TransactionID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrWrongShift)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestComplete_NotFound() {
	ctx := context.Background()
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	missingID := uuid.NewString()
	suite.mockTxnRepo.On("FindTransactionByIDInTx", mock.Anything, mock.Anything, missingID).Return(nil, apperrors.ErrNotFound).Once()

	paid := int64(50000)
	req := dto.CompleteTransactionRequest{PaymentType: domain.PaymentCash, PaidAmount: &paid}

	txn, err := suite.service.Complete(ctx, suite.cashierID, missingID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(txn)
}

// --- Cancel ---

func (suite *TransactionServiceTestSuite) TestCancel_RestoresStockPerLine() {
	ctx := context.Background()
	pending := suite.pendingTxn()
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindTransactionByIDInTx", mock.Anything, mock.Anything, pending.TransactionID).Return(pending, nil).Once()

	var capturedAdjustments []domain.StockAdjustment
	suite.mockProductRepo.On("AdjustStockInTx", mock.Anything, mock.Anything, mock.AnythingOfType("[]domain.StockAdjustment"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			capturedAdjustments = args.Get(2).([]domain.StockAdjustment)
		}).Return(nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatusInTx", mock.Anything, mock.Anything, pending.TransactionID, domain.StatusCanceled).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	txn, err := suite.service.Cancel(ctx, suite.cashierID, pending.TransactionID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCanceled, txn.Status)

	// Restoration mirrors the reservation: one positive row per line.
	suite.Require().Len(capturedAdjustments, 2)
	suite.Equal(pending.Items[0].ProductID, capturedAdjustments[0].ProductID)
	suite.Equal(int64(2), capturedAdjustments[0].Change)
	suite.Equal(int64(1), capturedAdjustments[1].Change)
	suite.Contains(capturedAdjustments[0].Reason, pending.TransactionID)

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCancel_TerminalStatusRejected() {
	ctx := context.Background()
	canceled := suite.pendingTxn()
	canceled.Status = domain.StatusCanceled
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindTransactionByIDInTx", mock.Anything, mock.Anything, canceled.TransactionID).Return(canceled, nil).Once()

	txn, err := suite.service.Cancel(ctx, suite.cashierID, canceled.TransactionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotPending)
	suite.Nil(txn)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "AdjustStockInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCancel_WrongShift() {
	ctx := context.Background()
	pending := suite.pendingTxn()
	pending.ShiftID = uuid.NewString()
	suite.expectUnitOfWork()
	suite.expectActiveShift()
	suite.mockTxnRepo.On("FindTransactionByIDInTx", mock.Anything, mock.Anything, pending.TransactionID).Return(pending, nil).Once()

	txn, err := suite.service.Cancel(ctx, suite.cashierID, pending.TransactionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrWrongShift)
	suite.Nil(txn)
}

// --- Listings ---

func (suite *TransactionServiceTestSuite) TestListByActiveShift_NoShift() {
	ctx := context.Background()
	suite.mockShiftRepo.On("FindActiveShiftByCashier", ctx, suite.cashierID).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.ListByActiveShift(ctx, suite.cashierID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoActiveShift)
	suite.Nil(resp)
}

func (suite *TransactionServiceTestSuite) TestListAll_ForcesCompletedStatus() {
	ctx := context.Background()

	var capturedFilter domain.TransactionFilter
	suite.mockTxnRepo.On("ListTransactions", ctx, mock.AnythingOfType("domain.TransactionFilter")).
		Run(func(args mock.Arguments) {
			capturedFilter = args.Get(1).(domain.TransactionFilter)
		}).Return([]domain.Transaction{}, nil).Once()

	_, err := suite.service.ListAll(ctx, dto.ListTransactionsParams{Page: 1, PageSize: 20})

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, capturedFilter.Status)
}

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
