package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/pkg/database"
)

// bookColumns is the book projection with the author name joined in.
// Every listing query selects exactly these columns in this order.
const bookColumns = `
	b.id, b.title, b.isbn, b.publication_year, b.description,
	b.cover_image_url, b.average_rating, b.author_id, a.name
`

type postgresBookRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBookRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresBookRepository{pool: pool}
}

func scanBook(row pgx.Row) (*model.Book, error) {
	b := &model.Book{}
	err := row.Scan(
		&b.ID, &b.Title, &b.ISBN, &b.PublicationYear, &b.Description,
		&b.CoverImageURL, &b.AverageRating, &b.AuthorID, &b.AuthorName,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func translateBookError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return model.ErrDuplicateISBN
		case "23503":
			if pgErr.ConstraintName == "books_author_id_fkey" {
				return model.ErrAuthorNotFound
			}
		}
	}
	return err
}

func (r *postgresBookRepository) Create(ctx context.Context, book *model.Book, genreIDs []int64) error {
	query := `
		INSERT INTO books (title, isbn, publication_year, description, cover_image_url, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, average_rating
	`

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query,
			book.Title, book.ISBN, book.PublicationYear,
			book.Description, book.CoverImageURL, book.AuthorID,
		).Scan(&book.ID, &book.AverageRating)
		if err != nil {
			return translateBookError(err)
		}

		return replaceGenreLinks(ctx, tx, book.ID, genreIDs)
	})
	if err != nil {
		if isDomainError(err) {
			return err
		}
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

func (r *postgresBookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE b.id = $1
	`

	b, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	if err := r.loadGenres(ctx, []*model.Book{b}); err != nil {
		return nil, err
	}

	return b, nil
}

func (r *postgresBookRepository) Update(ctx context.Context, book *model.Book, genreIDs []int64) error {
	query := `
		UPDATE books
		SET title = $2, isbn = $3, publication_year = $4,
		    description = $5, cover_image_url = $6, author_id = $7
		WHERE id = $1
	`

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, query,
			book.ID, book.Title, book.ISBN, book.PublicationYear,
			book.Description, book.CoverImageURL, book.AuthorID,
		)
		if err != nil {
			return translateBookError(err)
		}
		if result.RowsAffected() == 0 {
			return model.ErrBookNotFound
		}

		return replaceGenreLinks(ctx, tx, book.ID, genreIDs)
	})
	if err != nil {
		if isDomainError(err) {
			return err
		}
		return fmt.Errorf("failed to update book: %w", err)
	}

	return nil
}

func (r *postgresBookRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

func (r *postgresBookRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}
	return exists, nil
}

func (r *postgresBookRepository) List(ctx context.Context, page, limit int) ([]*model.Book, int, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books b
		JOIN authors a ON a.id = b.author_id
		ORDER BY b.title
		LIMIT $1 OFFSET $2
	`
	countQuery := `SELECT COUNT(*) FROM books`

	return r.queryPage(ctx, query, countQuery, nil, page, limit)
}

func (r *postgresBookRepository) SearchByTitleOrAuthor(ctx context.Context, q string, page, limit int) ([]*model.Book, int, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE b.title ILIKE '%' || $1 || '%' OR a.name ILIKE '%' || $1 || '%'
		ORDER BY b.title
		LIMIT $2 OFFSET $3
	`
	countQuery := `
		SELECT COUNT(*)
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE b.title ILIKE '%' || $1 || '%' OR a.name ILIKE '%' || $1 || '%'
	`

	return r.queryPage(ctx, query, countQuery, []any{q}, page, limit)
}

func (r *postgresBookRepository) SearchByAuthorName(ctx context.Context, q string, page, limit int) ([]*model.Book, int, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE a.name ILIKE '%' || $1 || '%'
		ORDER BY b.title
		LIMIT $2 OFFSET $3
	`
	countQuery := `
		SELECT COUNT(*)
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE a.name ILIKE '%' || $1 || '%'
	`

	return r.queryPage(ctx, query, countQuery, []any{q}, page, limit)
}

func (r *postgresBookRepository) SearchByGenreName(ctx context.Context, q string, page, limit int) ([]*model.Book, int, error) {
	query := `
		SELECT DISTINCT ` + bookColumns + `
		FROM books b
		JOIN authors a ON a.id = b.author_id
		JOIN book_genres bg ON bg.book_id = b.id
		JOIN genres g ON g.id = bg.genre_id
		WHERE g.name ILIKE '%' || $1 || '%'
		ORDER BY b.title
		LIMIT $2 OFFSET $3
	`
	countQuery := `
		SELECT COUNT(DISTINCT b.id)
		FROM books b
		JOIN book_genres bg ON bg.book_id = b.id
		JOIN genres g ON g.id = bg.genre_id
		WHERE g.name ILIKE '%' || $1 || '%'
	`

	return r.queryPage(ctx, query, countQuery, []any{q}, page, limit)
}

// queryPage runs a page query and its count twin, then batch-loads genres
// for the page. args holds the filter parameters; limit and offset are
// appended as the trailing placeholders.
func (r *postgresBookRepository) queryPage(ctx context.Context, query, countQuery string, args []any, page, limit int) ([]*model.Book, int, error) {
	offset := (page - 1) * limit
	pageArgs := append(append([]any{}, args...), limit, offset)

	rows, err := r.pool.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []*model.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	if err := r.loadGenres(ctx, books); err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// loadGenres fills Genres for the given books with a single query
func (r *postgresBookRepository) loadGenres(ctx context.Context, books []*model.Book) error {
	if len(books) == 0 {
		return nil
	}

	byID := make(map[int64]*model.Book, len(books))
	ids := make([]int64, 0, len(books))
	for _, b := range books {
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	query := `
		SELECT bg.book_id, g.id, g.name
		FROM book_genres bg
		JOIN genres g ON g.id = bg.genre_id
		WHERE bg.book_id = ANY($1)
		ORDER BY g.name
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID int64
		var g model.GenreSummary
		if err := rows.Scan(&bookID, &g.ID, &g.Name); err != nil {
			return fmt.Errorf("failed to scan book genre: %w", err)
		}
		if b, ok := byID[bookID]; ok {
			b.Genres = append(b.Genres, g)
		}
	}

	return rows.Err()
}

func replaceGenreLinks(ctx context.Context, tx pgx.Tx, bookID int64, genreIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM book_genres WHERE book_id = $1`, bookID); err != nil {
		return fmt.Errorf("failed to clear book genres: %w", err)
	}

	for _, genreID := range genreIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO book_genres (book_id, genre_id) VALUES ($1, $2)`,
			bookID, genreID,
		)
		if err != nil {
			return fmt.Errorf("failed to link genre %d: %w", genreID, err)
		}
	}

	return nil
}

func isDomainError(err error) bool {
	return errors.Is(err, model.ErrBookNotFound) ||
		errors.Is(err, model.ErrAuthorNotFound) ||
		errors.Is(err, model.ErrDuplicateISBN)
}
