package dto

import (
	"time"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
)

// RegisterUserRequest creates a bookkeeping user.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=owner admin_accounting staff viewer"`
}

// LoginRequest authenticates a user by credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed session token.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is a user in API responses. The password hash never leaves
// the service layer.
type UserResponse struct {
	UserID    string          `json:"userID"`
	Username  string          `json:"username"`
	FullName  string          `json:"fullName"`
	Role      domain.UserRole `json:"role"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain user to its API shape.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
