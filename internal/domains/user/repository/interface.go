package repository

import (
	"context"

	"bookreview-backend/internal/domains/user/model"
)

// UserRepository is the credential store plus the admin CRUD surface.
type UserRepository interface {
	// Create inserts a new user.
	// Errors: ErrUsernameTaken / ErrEmailTaken on unique violations.
	Create(ctx context.Context, user *model.User) error

	// GetByID returns ErrUserNotFound if absent
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// GetByUsernameOrEmail looks an account up by either identifier.
	// Returns ErrUserNotFound if absent.
	GetByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*model.User, error)

	// List returns a page of users plus the total count
	List(ctx context.Context, page, limit int) ([]*model.User, int, error)

	// Update persists username, email, password hash and roles.
	// Returns ErrUserNotFound if absent.
	Update(ctx context.Context, user *model.User) error

	// Delete removes the user. Returns ErrUserNotFound if absent.
	Delete(ctx context.Context, id int64) error

	// ExistsByID is a cheap presence check for cross-domain validation
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// ExistsByUsername / ExistsByEmail back registration uniqueness checks
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
