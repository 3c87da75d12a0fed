package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kasirkita/pos_backend/internal/apperrors"
	"github.com/kasirkita/pos_backend/internal/core/domain"
	portsrepo "github.com/kasirkita/pos_backend/internal/core/ports/repositories"
	portssvc "github.com/kasirkita/pos_backend/internal/core/ports/services"
	"github.com/kasirkita/pos_backend/internal/core/services"
)

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) DailyItemSales(ctx context.Context, from, to time.Time) ([]domain.DailyItemSale, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyItemSale), args.Error(1)
}

func (m *MockReportingRepository) DashboardSummary(ctx context.Context, lowStockThreshold int64) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, lowStockThreshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

// --- Test Suite Setup ---

// Runs with a nil cache client so every call goes to the repository.
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo, nil, 5)
}

func (suite *ReportingServiceTestSuite) TestDailyItemSales_DayWindow() {
	ctx := context.Background()

	from := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	sales := []domain.DailyItemSale{
		{ProductID: "p1", Name: "Coffee", TotalSold: 12, TotalRevenue: 180000},
	}
	suite.mockRepo.On("DailyItemSales", mock.Anything, from, to).Return(sales, nil).Once()

	resp, err := suite.service.DailyItemSales(ctx, "2026-03-14")

	suite.Require().NoError(err)
	suite.Require().Len(resp, 1)
	suite.Equal("Coffee", resp[0].Name)
	suite.Equal(int64(180000), resp[0].TotalRevenue)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestDailyItemSales_BadDate() {
	ctx := context.Background()

	resp, err := suite.service.DailyItemSales(ctx, "14-03-2026")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(resp)
	suite.mockRepo.AssertNotCalled(suite.T(), "DailyItemSales", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary_PassesThreshold() {
	ctx := context.Background()

	summary := &domain.DashboardSummary{
		TotalRevenue:               950000,
		TotalCompletedTransactions: 42,
		LowStockProductsCount:      3,
	}
	suite.mockRepo.On("DashboardSummary", mock.Anything, int64(5)).Return(summary, nil).Once()

	resp, err := suite.service.DashboardSummary(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(950000), resp.TotalRevenue)
	suite.Equal(int64(42), resp.TotalCompletedTransactions)
	suite.Equal(int64(3), resp.LowStockProductsCount)
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
