package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kasirkita/pos_backend/internal/apperrors"
	"github.com/kasirkita/pos_backend/internal/core/domain"
	portssvc "github.com/kasirkita/pos_backend/internal/core/ports/services"
	"github.com/kasirkita/pos_backend/internal/core/services"
	"github.com/kasirkita/pos_backend/internal/dto"
	"github.com/kasirkita/pos_backend/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	user         domain.User
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)

	suite.user = domain.User{
		UserID:   uuid.NewString(),
		Name:     "Siti",
		Username: "siti",
		Role:     domain.RoleCashier,
	}
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "andi").Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.User
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	req := dto.CreateUserRequest{
		Name:     "Andi",
		Username: "andi",
		Password: "secret123",
		Role:     domain.RoleAdmin,
	}

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal(domain.RoleAdmin, user.Role)

	// The stored hash must verify against the plaintext and never equal it.
	suite.NotEqual("secret123", saved.PasswordHash)
	suite.True(utils.CheckPasswordHash("secret123", saved.PasswordHash))
}

func (suite *UserServiceTestSuite) TestCreateUser_UsernameTaken() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "siti").Return(&suite.user, nil).Once()

	req := dto.CreateUserRequest{Name: "Siti", Username: "siti", Password: "secret123", Role: domain.RoleCashier}

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_RehashesPassword() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(&suite.user, nil).Once()

	var saved domain.User
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	newPassword := "new-secret"
	req := dto.UpdateUserRequest{Password: &newPassword}

	_, err := suite.service.UpdateUser(ctx, suite.user.UserID, req)

	suite.Require().NoError(err)
	suite.True(utils.CheckPasswordHash(newPassword, saved.PasswordHash))
}

func (suite *UserServiceTestSuite) TestUpdateUser_NotFound() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.UpdateUser(ctx, uuid.NewString(), dto.UpdateUserRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(&suite.user, nil).Once()
	suite.mockUserRepo.On("SoftDeleteUser", ctx, suite.user.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, suite.user.UserID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestListUsers_NormalizesPaging() {
	ctx := context.Background()
	suite.mockUserRepo.On("ListUsers", ctx, 1, 20).Return([]domain.User{suite.user}, int64(1), nil).Once()

	resp, err := suite.service.ListUsers(ctx, 0, 0)

	suite.Require().NoError(err)
	suite.Len(resp.Users, 1)
	suite.Equal(1, resp.Page)
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
