package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kasirkita/pos_backend/internal/apperrors"
	"github.com/kasirkita/pos_backend/internal/core/domain"
	portssvc "github.com/kasirkita/pos_backend/internal/core/ports/services"
	"github.com/kasirkita/pos_backend/internal/core/services"
	"github.com/kasirkita/pos_backend/internal/dto"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.CategorySvcFacade
	category         domain.Category
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewCategoryService(suite.mockCategoryRepo)

	suite.category = domain.Category{
		CategoryID: uuid.NewString(),
		Name:       "Snacks",
	}
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_Success() {
	ctx := context.Background()
	suite.mockCategoryRepo.On("FindCategoryByName", ctx, "Beverages", "").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCategoryRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.Category")).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "Beverages"})

	suite.Require().NoError(err)
	suite.NotEmpty(category.CategoryID)
	suite.Equal("Beverages", category.Name)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_DuplicateName() {
	ctx := context.Background()
	suite.mockCategoryRepo.On("FindCategoryByName", ctx, "Snacks", "").Return(&suite.category, nil).Once()

	category, err := suite.service.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "Snacks"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(category)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_RenameChecked() {
	ctx := context.Background()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.category.CategoryID).Return(&suite.category, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByName", ctx, "Drinks", suite.category.CategoryID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCategoryRepo.On("UpdateCategory", ctx, mock.AnythingOfType("domain.Category")).Return(nil).Once()

	newName := "Drinks"
	category, err := suite.service.UpdateCategory(ctx, suite.category.CategoryID, dto.UpdateCategoryRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal("Drinks", category.Name)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_DeletedIsNotFound() {
	ctx := context.Background()
	deletedAt := time.Now().UTC()
	deleted := suite.category
	deleted.DeletedAt = &deletedAt
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, deleted.CategoryID).Return(&deleted, nil).Once()

	newName := "Drinks"
	category, err := suite.service.UpdateCategory(ctx, deleted.CategoryID, dto.UpdateCategoryRequest{Name: &newName})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(category)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_Success() {
	ctx := context.Background()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.category.CategoryID).Return(&suite.category, nil).Once()
	suite.mockCategoryRepo.On("SoftDeleteCategory", ctx, suite.category.CategoryID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteCategory(ctx, suite.category.CategoryID)

	suite.Require().NoError(err)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func TestCategoryService(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
