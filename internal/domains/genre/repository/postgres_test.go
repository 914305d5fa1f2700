package repository

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreview-backend/internal/domains/genre/model"
)

// Runs against TEST_DATABASE_URL, skips when unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS genres (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT
		)
	`)
	require.NoError(t, err)

	_, err = pool.Exec(context.Background(), `TRUNCATE genres RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return pool
}

func TestGetByIDsReturnsEveryExistingGenre(t *testing.T) {
	pool := testPool(t)
	repo := NewPostgresGenreRepository(pool)
	ctx := context.Background()

	names := []string{"Science Fiction", "Fantasy", "Horror"}
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		g := &model.Genre{Name: name}
		require.NoError(t, repo.Create(ctx, g))
		ids = append(ids, g.ID)
	}

	genres, err := repo.GetByIDs(ctx, append(ids, 999))
	require.NoError(t, err)
	require.Len(t, genres, len(names))

	found := make(map[int64]bool, len(genres))
	for _, g := range genres {
		found[g.ID] = true
	}
	for _, id := range ids {
		assert.True(t, found[id])
	}
}

func TestCreateDuplicateGenreName(t *testing.T) {
	pool := testPool(t)
	repo := NewPostgresGenreRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Genre{Name: "Fantasy"}))

	err := repo.Create(ctx, &model.Genre{Name: "Fantasy"})
	assert.ErrorIs(t, err, model.ErrDuplicateGenre)
}

func TestListPagesThroughGenres(t *testing.T) {
	pool := testPool(t)
	repo := NewPostgresGenreRepository(pool)
	ctx := context.Background()

	for _, name := range []string{"Fantasy", "Horror", "Mystery", "Romance", "Thriller"} {
		require.NoError(t, repo.Create(ctx, &model.Genre{Name: name}))
	}

	page, total, err := repo.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "Fantasy", page[0].Name)

	last, _, err := repo.List(ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "Thriller", last[0].Name)
}
