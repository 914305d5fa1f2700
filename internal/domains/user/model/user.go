package model

import (
	"time"
)

// User represents a registered account. Roles is a non-empty set;
// every account carries at least USER.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never expose in JSON
	Roles        []string  `json:"roles" db:"roles"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}

// ToResponse strips credentials for API output
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Roles:        u.Roles,
		RegisteredAt: u.RegisteredAt,
	}
}
