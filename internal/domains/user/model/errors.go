package model

import "errors"

// Repository-level errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already in use")
)

// Service-level errors
var (
	// ErrInvalidCredentials is returned for both an unknown identity and a
	// wrong password. The two cases must stay indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid username/email or password")
)
