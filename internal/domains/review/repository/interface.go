package repository

import (
	"context"

	"bookreview-backend/internal/domains/review/model"
)

// ReviewRepository stores reviews and keeps the owning book's average
// rating consistent. Every mutation runs as one transaction that locks
// the book row, applies the change and recomputes the average, so
// concurrent mutations against the same book serialize and the review
// and the derived rating succeed or fail together. Mutations return the
// book's new average rating.
type ReviewRepository interface {
	// Create inserts the review with review_date set to now.
	// Returns ErrBookNotFound if the book is gone.
	Create(ctx context.Context, review *model.Review) (float64, error)

	// GetByID returns ErrReviewNotFound if absent
	GetByID(ctx context.Context, id int64) (*model.Review, error)

	// GetByUserAndBook returns the user's review of the book, or ErrReviewNotFound
	GetByUserAndBook(ctx context.Context, userID, bookID int64) (*model.Review, error)

	ListByBook(ctx context.Context, bookID int64, page, limit int) ([]*model.Review, int, error)
	ListByUser(ctx context.Context, userID int64, page, limit int) ([]*model.Review, int, error)

	// Update rewrites title, content and rating; review_date is untouched
	Update(ctx context.Context, review *model.Review) (float64, error)

	// Delete removes the review identified by id belonging to bookID
	Delete(ctx context.Context, id, bookID int64) (float64, error)
}
