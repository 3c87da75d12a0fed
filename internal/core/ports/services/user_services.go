package services

import (
	"context"

	"github.com/kasirkita/pos_backend/internal/core/domain"
	"github.com/kasirkita/pos_backend/internal/dto"
)

// AuthSvcFacade defines the authentication operations.
type AuthSvcFacade interface {
	// Login verifies the credentials and returns a signed session token with
	// the user's identity. Fails with apperrors.ErrForbidden on bad credentials.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// UserSvcFacade defines the admin user management operations.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, page, pageSize int) (*dto.ListUsersResponse, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
}
