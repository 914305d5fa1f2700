package service

import (
	"context"

	"bookreview-backend/internal/domains/user/model"
)

// ServiceInterface covers registration, login and the admin user surface.
type ServiceInterface interface {
	// Register creates a new account with the default USER role
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error)

	// Login verifies credentials and issues a bearer token.
	// Unknown identity and wrong password both fail with ErrInvalidCredentials.
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)

	// GetUser fetches a user by id
	GetUser(ctx context.Context, id int64) (*model.UserResponse, error)

	// ListUsers pages through all users (admin)
	ListUsers(ctx context.Context, req model.ListUsersRequest) (*model.ListUsersResponse, error)

	// UpdateUser updates profile fields, password and role set (admin)
	UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.UserResponse, error)

	// DeleteUser removes an account (admin)
	DeleteUser(ctx context.Context, id int64) error
}
