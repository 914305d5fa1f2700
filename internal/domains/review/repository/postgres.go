package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/pkg/database"
)

const reviewColumns = `
	r.id, r.title, r.content, r.rating, r.review_date,
	r.user_id, r.book_id, u.username
`

type postgresReviewRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &postgresReviewRepository{pool: pool}
}

func scanReview(row pgx.Row) (*model.Review, error) {
	rv := &model.Review{}
	err := row.Scan(
		&rv.ID, &rv.Title, &rv.Content, &rv.Rating, &rv.ReviewDate,
		&rv.UserID, &rv.BookID, &rv.Username,
	)
	if err != nil {
		return nil, err
	}
	return rv, nil
}

// lockBook takes the book's row lock for the rest of the transaction.
// Mutations against the same book queue behind it.
func lockBook(ctx context.Context, tx pgx.Tx, bookID int64) error {
	var id int64
	err := tx.QueryRow(ctx, `SELECT id FROM books WHERE id = $1 FOR UPDATE`, bookID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrBookNotFound
		}
		return fmt.Errorf("failed to lock book: %w", err)
	}
	return nil
}

// refreshAverage recomputes the book's average rating from the surviving
// reviews. An empty review set yields 0.
func refreshAverage(ctx context.Context, tx pgx.Tx, bookID int64) (float64, error) {
	var avg float64
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE book_id = $1`,
		bookID,
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE books SET average_rating = $2 WHERE id = $1`,
		bookID, avg,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to store average rating: %w", err)
	}

	return avg, nil
}

func (r *postgresReviewRepository) Create(ctx context.Context, review *model.Review) (float64, error) {
	query := `
		INSERT INTO reviews (title, content, rating, review_date, user_id, book_id)
		VALUES ($1, $2, $3, NOW(), $4, $5)
		RETURNING id, review_date
	`

	avg, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (float64, error) {
		if err := lockBook(ctx, tx, review.BookID); err != nil {
			return 0, err
		}

		err := tx.QueryRow(ctx, query,
			review.Title, review.Content, review.Rating,
			review.UserID, review.BookID,
		).Scan(&review.ID, &review.ReviewDate)
		if err != nil {
			// account deleted between token issue and review insert
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" && pgErr.ConstraintName == "reviews_user_id_fkey" {
				return 0, model.ErrUserNotFound
			}
			return 0, fmt.Errorf("failed to create review: %w", err)
		}

		return refreshAverage(ctx, tx, review.BookID)
	})
	if err != nil {
		return 0, err
	}

	return avg, nil
}

func (r *postgresReviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
	`

	rv, err := scanReview(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return rv, nil
}

func (r *postgresReviewRepository) GetByUserAndBook(ctx context.Context, userID, bookID int64) (*model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1 AND r.book_id = $2
		ORDER BY r.review_date DESC
		LIMIT 1
	`

	rv, err := scanReview(r.pool.QueryRow(ctx, query, userID, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return rv, nil
}

func (r *postgresReviewRepository) ListByBook(ctx context.Context, bookID int64, page, limit int) ([]*model.Review, int, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.book_id = $1
		ORDER BY r.review_date DESC
		LIMIT $2 OFFSET $3
	`
	countQuery := `SELECT COUNT(*) FROM reviews WHERE book_id = $1`

	return r.queryPage(ctx, query, countQuery, bookID, page, limit)
}

func (r *postgresReviewRepository) ListByUser(ctx context.Context, userID int64, page, limit int) ([]*model.Review, int, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1
		ORDER BY r.review_date DESC
		LIMIT $2 OFFSET $3
	`
	countQuery := `SELECT COUNT(*) FROM reviews WHERE user_id = $1`

	return r.queryPage(ctx, query, countQuery, userID, page, limit)
}

func (r *postgresReviewRepository) queryPage(ctx context.Context, query, countQuery string, filter int64, page, limit int) ([]*model.Review, int, error) {
	offset := (page - 1) * limit

	rows, err := r.pool.Query(ctx, query, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*model.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, filter).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *postgresReviewRepository) Update(ctx context.Context, review *model.Review) (float64, error) {
	query := `
		UPDATE reviews
		SET title = $2, content = $3, rating = $4
		WHERE id = $1
	`

	avg, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (float64, error) {
		if err := lockBook(ctx, tx, review.BookID); err != nil {
			return 0, err
		}

		result, err := tx.Exec(ctx, query, review.ID, review.Title, review.Content, review.Rating)
		if err != nil {
			return 0, fmt.Errorf("failed to update review: %w", err)
		}
		if result.RowsAffected() == 0 {
			return 0, model.ErrReviewNotFound
		}

		return refreshAverage(ctx, tx, review.BookID)
	})
	if err != nil {
		return 0, err
	}

	return avg, nil
}

func (r *postgresReviewRepository) Delete(ctx context.Context, id, bookID int64) (float64, error) {
	avg, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (float64, error) {
		if err := lockBook(ctx, tx, bookID); err != nil {
			return 0, err
		}

		result, err := tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
		if err != nil {
			return 0, fmt.Errorf("failed to delete review: %w", err)
		}
		if result.RowsAffected() == 0 {
			return 0, model.ErrReviewNotFound
		}

		return refreshAverage(ctx, tx, bookID)
	})
	if err != nil {
		return 0, err
	}

	return avg, nil
}
