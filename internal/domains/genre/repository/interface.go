package repository

import (
	"context"

	"bookreview-backend/internal/domains/genre/model"
)

type GenreRepository interface {
	// Create inserts a genre. Errors: ErrDuplicateGenre on name collision.
	Create(ctx context.Context, genre *model.Genre) error

	// GetByID returns ErrGenreNotFound if absent
	GetByID(ctx context.Context, id int64) (*model.Genre, error)

	// GetByIDs returns the genres that exist among ids, in no particular order
	GetByIDs(ctx context.Context, ids []int64) ([]*model.Genre, error)

	List(ctx context.Context, page, limit int) ([]*model.Genre, int, error)

	// Update returns ErrGenreNotFound if absent
	Update(ctx context.Context, genre *model.Genre) error

	// Delete returns ErrGenreNotFound if absent
	Delete(ctx context.Context, id int64) error
}
