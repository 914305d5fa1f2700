package model

import (
	"errors"
	"fmt"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrAuthorNotFound = errors.New("author not found")
	ErrDuplicateISBN  = errors.New("book with this ISBN already exists")
	ErrGenresNotFound = errors.New("one or more genres not found")
)

// NewGenresNotFoundError names the ids that did not resolve
func NewGenresNotFoundError(missing []int64) error {
	return fmt.Errorf("%w: %v", ErrGenresNotFound, missing)
}
