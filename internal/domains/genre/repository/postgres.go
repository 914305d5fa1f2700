package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookreview-backend/internal/domains/genre/model"
)

type postgresGenreRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresGenreRepository(pool *pgxpool.Pool) GenreRepository {
	return &postgresGenreRepository{pool: pool}
}

func (r *postgresGenreRepository) Create(ctx context.Context, genre *model.Genre) error {
	query := `
		INSERT INTO genres (name, description)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, genre.Name, genre.Description).Scan(&genre.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateGenre
		}
		return fmt.Errorf("failed to create genre: %w", err)
	}

	return nil
}

func (r *postgresGenreRepository) GetByID(ctx context.Context, id int64) (*model.Genre, error) {
	query := `SELECT id, name, description FROM genres WHERE id = $1`

	g := &model.Genre{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&g.ID, &g.Name, &g.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}

	return g, nil
}

func (r *postgresGenreRepository) GetByIDs(ctx context.Context, ids []int64) ([]*model.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, name, description FROM genres WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get genres: %w", err)
	}
	defer rows.Close()

	var genres []*model.Genre
	for rows.Next() {
		g := &model.Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Description); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get genres: %w", err)
	}

	return genres, nil
}

func (r *postgresGenreRepository) List(ctx context.Context, page, limit int) ([]*model.Genre, int, error) {
	query := `
		SELECT id, name, description FROM genres
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	offset := (page - 1) * limit
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	var genres []*model.Genre
	for rows.Next() {
		g := &model.Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Description); err != nil {
			return nil, 0, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list genres: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM genres`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count genres: %w", err)
	}

	return genres, total, nil
}

func (r *postgresGenreRepository) Update(ctx context.Context, genre *model.Genre) error {
	query := `
		UPDATE genres
		SET name = $2, description = $3
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, genre.ID, genre.Name, genre.Description)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateGenre
		}
		return fmt.Errorf("failed to update genre: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrGenreNotFound
	}

	return nil
}

func (r *postgresGenreRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrGenreNotFound
	}

	return nil
}
