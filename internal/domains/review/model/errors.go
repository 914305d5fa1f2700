package model

import "errors"

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrBookNotFound   = errors.New("book not found")
	ErrUserNotFound   = errors.New("user not found")

	// ErrNotOwner means the caller is neither the review's author nor an admin
	ErrNotOwner = errors.New("review belongs to another user")
)
