package repository

import (
	"context"

	"bookreview-backend/internal/domains/author/model"
)

type AuthorRepository interface {
	Create(ctx context.Context, author *model.Author) error

	// GetByID returns ErrAuthorNotFound if absent
	GetByID(ctx context.Context, id int64) (*model.Author, error)

	List(ctx context.Context, page, limit int) ([]*model.Author, int, error)

	// Update returns ErrAuthorNotFound if absent
	Update(ctx context.Context, author *model.Author) error

	// Delete returns ErrAuthorNotFound if absent
	Delete(ctx context.Context, id int64) error

	ExistsByID(ctx context.Context, id int64) (bool, error)
}
