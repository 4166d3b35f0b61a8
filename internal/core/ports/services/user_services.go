package services

import (
	"context"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by their unique identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves all users.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new user with a hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest, creatorUserID string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}

// AuthSvcFacade authenticates users and issues session tokens.
type AuthSvcFacade interface {
	// Login verifies credentials and returns a signed JWT with the user.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
