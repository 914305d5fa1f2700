package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookreview-backend/internal/domains/book/model"
	genremodel "bookreview-backend/internal/domains/genre/model"
)

type mockBookRepository struct {
	mock.Mock
}

func (m *mockBookRepository) Create(ctx context.Context, book *model.Book, genreIDs []int64) error {
	args := m.Called(ctx, book, genreIDs)
	return args.Error(0)
}

func (m *mockBookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *mockBookRepository) Update(ctx context.Context, book *model.Book, genreIDs []int64) error {
	args := m.Called(ctx, book, genreIDs)
	return args.Error(0)
}

func (m *mockBookRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBookRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookRepository) List(ctx context.Context, page, limit int) ([]*model.Book, int, error) {
	args := m.Called(ctx, page, limit)
	return books(args.Get(0)), args.Int(1), args.Error(2)
}

func (m *mockBookRepository) SearchByTitleOrAuthor(ctx context.Context, q string, page, limit int) ([]*model.Book, int, error) {
	args := m.Called(ctx, q, page, limit)
	return books(args.Get(0)), args.Int(1), args.Error(2)
}

func (m *mockBookRepository) SearchByAuthorName(ctx context.Context, q string, page, limit int) ([]*model.Book, int, error) {
	args := m.Called(ctx, q, page, limit)
	return books(args.Get(0)), args.Int(1), args.Error(2)
}

func (m *mockBookRepository) SearchByGenreName(ctx context.Context, q string, page, limit int) ([]*model.Book, int, error) {
	args := m.Called(ctx, q, page, limit)
	return books(args.Get(0)), args.Int(1), args.Error(2)
}

func books(v interface{}) []*model.Book {
	if v == nil {
		return nil
	}
	return v.([]*model.Book)
}

type mockAuthorChecker struct {
	mock.Mock
}

func (m *mockAuthorChecker) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockGenreLookup struct {
	mock.Mock
}

func (m *mockGenreLookup) GetByIDs(ctx context.Context, ids []int64) ([]*genremodel.Genre, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*genremodel.Genre), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *mockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type bookFixture struct {
	repo    *mockBookRepository
	authors *mockAuthorChecker
	genres  *mockGenreLookup
	cache   *mockCache
	svc     ServiceInterface
}

func newBookFixture() *bookFixture {
	f := &bookFixture{
		repo:    new(mockBookRepository),
		authors: new(mockAuthorChecker),
		genres:  new(mockGenreLookup),
		cache:   new(mockCache),
	}
	f.svc = NewBookService(f.repo, f.authors, f.genres, f.cache)
	return f
}

func sampleBooks() []*model.Book {
	return []*model.Book{
		{ID: 1, Title: "Dune", AuthorID: 1, AuthorName: "Frank Herbert"},
	}
}

func TestSearchQueryWinsOverOtherFilters(t *testing.T) {
	f := newBookFixture()
	f.repo.On("SearchByTitleOrAuthor", mock.Anything, "dune", 1, 10).
		Return(sampleBooks(), 1, nil)

	results, total, err := f.svc.Search(context.Background(), model.SearchBooksRequest{
		Query:      "dune",
		AuthorName: "herbert",
		GenreName:  "scifi",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, results, 1)
	f.repo.AssertNotCalled(t, "SearchByAuthorName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "SearchByGenreName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchAuthorNameWinsOverGenre(t *testing.T) {
	f := newBookFixture()
	f.repo.On("SearchByAuthorName", mock.Anything, "herbert", 1, 10).
		Return(sampleBooks(), 1, nil)

	_, _, err := f.svc.Search(context.Background(), model.SearchBooksRequest{
		AuthorName: "herbert",
		GenreName:  "scifi",
	})

	require.NoError(t, err)
	f.repo.AssertNotCalled(t, "SearchByGenreName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchGenreNameAlone(t *testing.T) {
	f := newBookFixture()
	f.repo.On("SearchByGenreName", mock.Anything, "scifi", 1, 10).
		Return(sampleBooks(), 1, nil)

	_, _, err := f.svc.Search(context.Background(), model.SearchBooksRequest{
		GenreName: "scifi",
	})

	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}

func TestSearchPassesPaginationThrough(t *testing.T) {
	f := newBookFixture()
	f.repo.On("SearchByTitleOrAuthor", mock.Anything, "dune", 3, 25).
		Return(sampleBooks(), 60, nil)

	_, total, err := f.svc.Search(context.Background(), model.SearchBooksRequest{
		Query: "dune",
		Page:  3,
		Limit: 25,
	})

	require.NoError(t, err)
	assert.Equal(t, 60, total)
	f.repo.AssertExpectations(t)
}

func TestSearchNoFiltersListsAll(t *testing.T) {
	f := newBookFixture()
	f.repo.On("List", mock.Anything, 1, 10).Return(sampleBooks(), 1, nil)

	_, _, err := f.svc.Search(context.Background(), model.SearchBooksRequest{})

	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}

// Whitespace-only filters do not count as present
func TestSearchBlankQueryFallsThrough(t *testing.T) {
	f := newBookFixture()
	f.repo.On("SearchByGenreName", mock.Anything, "scifi", 1, 10).
		Return(sampleBooks(), 1, nil)

	_, _, err := f.svc.Search(context.Background(), model.SearchBooksRequest{
		Query:     "   ",
		GenreName: "scifi",
	})

	require.NoError(t, err)
	f.repo.AssertNotCalled(t, "SearchByTitleOrAuthor", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetByIDServesFromCache(t *testing.T) {
	f := newBookFixture()
	f.cache.On("Get", mock.Anything, "book:1", mock.Anything).
		Return(true, nil).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*model.BookResponse)
			dest.ID = 1
			dest.Title = "Dune"
		})

	resp, err := f.svc.GetByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Dune", resp.Title)
	f.repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetByIDCacheMissFillsCache(t *testing.T) {
	f := newBookFixture()
	f.cache.On("Get", mock.Anything, "book:1", mock.Anything).Return(false, nil)
	f.repo.On("GetByID", mock.Anything, int64(1)).Return(&model.Book{
		ID: 1, Title: "Dune", AuthorID: 1, AuthorName: "Frank Herbert",
	}, nil)
	f.cache.On("Set", mock.Anything, "book:1", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.svc.GetByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Dune", resp.Title)
	f.cache.AssertExpectations(t)
}

func TestCreateReportsMissingGenres(t *testing.T) {
	f := newBookFixture()
	f.authors.On("ExistsByID", mock.Anything, int64(1)).Return(true, nil)
	f.genres.On("GetByIDs", mock.Anything, []int64{2, 3}).Return([]*genremodel.Genre{
		{ID: 2, Name: "Fantasy"},
	}, nil)

	_, err := f.svc.Create(context.Background(), model.BookRequest{
		Title:           "Dune",
		ISBN:            "9780441013593",
		PublicationYear: 1965,
		AuthorID:        1,
		GenreIDs:        []int64{2, 3},
	})

	assert.ErrorIs(t, err, model.ErrGenresNotFound)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateRejectsUnknownAuthor(t *testing.T) {
	f := newBookFixture()
	f.authors.On("ExistsByID", mock.Anything, int64(99)).Return(false, nil)

	_, err := f.svc.Create(context.Background(), model.BookRequest{
		Title:           "Dune",
		ISBN:            "9780441013593",
		PublicationYear: 1965,
		AuthorID:        99,
	})

	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteInvalidatesCache(t *testing.T) {
	f := newBookFixture()
	f.repo.On("Delete", mock.Anything, int64(1)).Return(nil)
	f.cache.On("Delete", mock.Anything, []string{"book:1"}).Return(nil)

	err := f.svc.Delete(context.Background(), 1)

	require.NoError(t, err)
	f.cache.AssertExpectations(t)
}
