package dto

import "github.com/kasirkita/pos_backend/internal/core/domain"

// LoginRequest is the username/password login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token and the logged-in user's identity.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToLoginResponse builds the login response from a user and a signed token.
func ToLoginResponse(user *domain.User, token string) LoginResponse {
	return LoginResponse{
		Token: token,
		User:  ToUserResponse(user),
	}
}
