package models

import "time"

// UserRole mirrors the user_role enum in the database.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleCashier UserRole = "CASHIER"
)

// User maps a row of the users table.
type User struct {
	UserID       string     `json:"userID"`
	Name         string     `json:"name"`
	Username     string     `json:"username"` // Unique among non-deleted users
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"deletedAt"` // Soft delete marker
}
