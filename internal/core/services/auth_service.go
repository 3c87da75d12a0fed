package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kasirkita/pos_backend/internal/apperrors"
	portsrepo "github.com/kasirkita/pos_backend/internal/core/ports/repositories"
	portssvc "github.com/kasirkita/pos_backend/internal/core/ports/services"
	"github.com/kasirkita/pos_backend/internal/dto"
	"github.com/kasirkita/pos_backend/internal/middleware"
	"github.com/kasirkita/pos_backend/internal/utils"
)

// ErrInvalidCredentials is returned for a wrong username or password. One
// error for both cases so login failures do not reveal which part was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

type authService struct {
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies the credentials and returns a signed session token.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrForbidden, ErrInvalidCredentials)
		}
		logger.Error("Failed to look up user for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login failed, bad password", slog.String("username", req.Username))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrForbidden, ErrInvalidCredentials)
	}

	token, err := utils.GenerateJWT(user.UserID, user.Name, string(user.Role), s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		logger.Error("Failed to sign session token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	resp := dto.ToLoginResponse(user, token)
	return &resp, nil
}
