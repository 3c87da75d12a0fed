package dto

import (
	"time"

	"github.com/kasirkita/pos_backend/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a new user.
type CreateUserRequest struct {
	Name     string          `json:"name" binding:"required"`
	Username string          `json:"username" binding:"required,min=3"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     domain.UserRole `json:"role" binding:"required,oneof=ADMIN CASHIER"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers distinguish omitted fields from zero values.
type UpdateUserRequest struct {
	Name     *string          `json:"name"`
	Password *string          `json:"password" binding:"omitempty,min=6"`
	Role     *domain.UserRole `json:"role" binding:"omitempty,oneof=ADMIN CASHIER"`
}

// UserResponse defines the data returned for a user. The password hash never leaves the service layer.
type UserResponse struct {
	UserID    string          `json:"userID"`
	Name      string          `json:"name"`
	Username  string          `json:"username"`
	Role      domain.UserRole `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ListUsersResponse is a paginated page of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses converts a slice of domain users to response DTOs.
func ToUserResponses(users []domain.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = ToUserResponse(&users[i])
	}
	return resp
}
