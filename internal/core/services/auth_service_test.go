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
	portsrepo "github.com/kasirkita/pos_backend/internal/core/ports/repositories"
	portssvc "github.com/kasirkita/pos_backend/internal/core/ports/services"
	"github.com/kasirkita/pos_backend/internal/core/services"
	"github.com/kasirkita/pos_backend/internal/dto"
	"github.com/kasirkita/pos_backend/internal/utils"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, page, pageSize int) ([]domain.User, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SoftDeleteUser(ctx context.Context, userID string, now time.Time) error {
	args := m.Called(ctx, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.AuthSvcFacade
	user         domain.User
	password     string
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewAuthService(suite.mockUserRepo, "test-secret", time.Hour, "pos_backend")

	suite.password = "correct-horse"
	hash, err := utils.HashPassword(suite.password)
	suite.Require().NoError(err)

	suite.user = domain.User{
		UserID:       uuid.NewString(),
		Name:         "Budi",
		Username:     "budi",
		PasswordHash: hash,
		Role:         domain.RoleCashier,
	}
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "budi").Return(&suite.user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "budi", Password: suite.password})

	suite.Require().NoError(err)
	suite.NotEmpty(resp.Token)
	suite.Equal(suite.user.UserID, resp.User.UserID)
	suite.Equal(domain.RoleCashier, resp.User.Role)

	claims, err := utils.ParseAndValidateJWT(resp.Token, "test-secret")
	suite.Require().NoError(err)
	suite.Equal(suite.user.UserID, claims.Subject)
	suite.Equal(string(domain.RoleCashier), claims.Role)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "budi").Return(&suite.user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "budi", Password: "wrong"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
	suite.Nil(resp)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUser() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "whatever"})

	suite.Require().Error(err)
	// Unknown user and bad password surface as the same error.
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
	suite.Nil(resp)
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
