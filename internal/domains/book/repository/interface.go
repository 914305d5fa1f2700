package repository

import (
	"context"

	"bookreview-backend/internal/domains/book/model"
)

// BookRepository is the book store plus the four retrieval strategies the
// search composer selects between. Every listing returns the page and the
// total matching count; books come back with author name and genres loaded.
type BookRepository interface {
	// Create inserts the book and its genre links in one transaction.
	// Errors: ErrDuplicateISBN, ErrAuthorNotFound (FK violation).
	Create(ctx context.Context, book *model.Book, genreIDs []int64) error

	// GetByID returns ErrBookNotFound if absent
	GetByID(ctx context.Context, id int64) (*model.Book, error)

	// Update rewrites book fields and replaces genre links in one transaction
	Update(ctx context.Context, book *model.Book, genreIDs []int64) error

	// Delete removes the book; reviews cascade at the schema level
	Delete(ctx context.Context, id int64) error

	ExistsByID(ctx context.Context, id int64) (bool, error)

	// List is the unfiltered strategy
	List(ctx context.Context, page, limit int) ([]*model.Book, int, error)

	// SearchByTitleOrAuthor: title OR author name contains q, case-insensitive
	SearchByTitleOrAuthor(ctx context.Context, q string, page, limit int) ([]*model.Book, int, error)

	// SearchByAuthorName: author name contains q, case-insensitive
	SearchByAuthorName(ctx context.Context, q string, page, limit int) ([]*model.Book, int, error)

	// SearchByGenreName: some genre of the book has a name containing q
	SearchByGenreName(ctx context.Context, q string, page, limit int) ([]*model.Book, int, error)
}
