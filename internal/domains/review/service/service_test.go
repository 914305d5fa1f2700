package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/shared/auth"
)

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *model.Review) (float64, error) {
	args := m.Called(ctx, review)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *mockReviewRepository) GetByUserAndBook(ctx context.Context, userID, bookID int64) (*model.Review, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *mockReviewRepository) ListByBook(ctx context.Context, bookID int64, page, limit int) ([]*model.Review, int, error) {
	args := m.Called(ctx, bookID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepository) ListByUser(ctx context.Context, userID int64, page, limit int) ([]*model.Review, int, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepository) Update(ctx context.Context, review *model.Review) (float64, error) {
	args := m.Called(ctx, review)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockReviewRepository) Delete(ctx context.Context, id, bookID int64) (float64, error) {
	args := m.Called(ctx, id, bookID)
	return args.Get(0).(float64), args.Error(1)
}

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
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

type reviewFixture struct {
	repo  *mockReviewRepository
	books *mockChecker
	users *mockChecker
	cache *mockCache
	svc   ServiceInterface
}

func newReviewFixture() *reviewFixture {
	f := &reviewFixture{
		repo:  new(mockReviewRepository),
		books: new(mockChecker),
		users: new(mockChecker),
		cache: new(mockCache),
	}
	f.svc = NewReviewService(f.repo, f.books, f.users, f.cache)
	return f
}

func asUser(id int64, name string) auth.Identity {
	return auth.Identity{UserID: id, Username: name, Roles: []string{auth.RoleUser}}
}

func asAdmin(id int64, name string) auth.Identity {
	return auth.Identity{UserID: id, Username: name, Roles: []string{auth.RoleAdmin}}
}

func TestCreateReviewBindsCallerIdentity(t *testing.T) {
	f := newReviewFixture()
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(rv *model.Review) bool {
		return rv.UserID == 7 && rv.BookID == 5 && rv.Rating == 4
	})).Return(4.0, nil).Run(func(args mock.Arguments) {
		rv := args.Get(1).(*model.Review)
		rv.ID = 1
		rv.ReviewDate = time.Now()
	})
	f.cache.On("Delete", mock.Anything, []string{"book:5"}).Return(nil)

	resp, err := f.svc.Create(context.Background(), asUser(7, "alice"), 5, model.CreateReviewRequest{
		Content: "great read",
		Rating:  4,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.UserID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, int64(5), resp.BookID)
	f.cache.AssertExpectations(t)
}

func TestCreateReviewRejectsOutOfRangeRating(t *testing.T) {
	f := newReviewFixture()

	for _, rating := range []int{0, 6, -1} {
		_, err := f.svc.Create(context.Background(), asUser(7, "alice"), 5, model.CreateReviewRequest{
			Content: "x",
			Rating:  rating,
		})
		assert.Error(t, err)
	}

	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReviewMissingBook(t *testing.T) {
	f := newReviewFixture()
	f.repo.On("Create", mock.Anything, mock.Anything).Return(0.0, model.ErrBookNotFound)

	_, err := f.svc.Create(context.Background(), asUser(7, "alice"), 999, model.CreateReviewRequest{
		Content: "x",
		Rating:  3,
	})

	assert.ErrorIs(t, err, model.ErrBookNotFound)
	f.cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUpdateReviewByOwner(t *testing.T) {
	f := newReviewFixture()
	reviewDate := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f.repo.On("GetByID", mock.Anything, int64(1)).Return(&model.Review{
		ID: 1, Content: "ok", Rating: 4, ReviewDate: reviewDate,
		UserID: 7, BookID: 5, Username: "alice",
	}, nil)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(rv *model.Review) bool {
		return rv.ID == 1 && rv.Rating == 2 && rv.ReviewDate.Equal(reviewDate)
	})).Return(3.0, nil)
	f.cache.On("Delete", mock.Anything, []string{"book:5"}).Return(nil)

	resp, err := f.svc.Update(context.Background(), asUser(7, "alice"), 1, model.UpdateReviewRequest{
		Content: "changed my mind",
		Rating:  2,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Rating)
	assert.True(t, resp.ReviewDate.Equal(reviewDate))
	f.repo.AssertExpectations(t)
}

func TestUpdateReviewByStrangerIsForbidden(t *testing.T) {
	f := newReviewFixture()
	f.repo.On("GetByID", mock.Anything, int64(1)).Return(&model.Review{
		ID: 1, Content: "ok", Rating: 4, UserID: 7, BookID: 5,
	}, nil)

	_, err := f.svc.Update(context.Background(), asUser(8, "mallory"), 1, model.UpdateReviewRequest{
		Content: "hijacked",
		Rating:  1,
	})

	assert.ErrorIs(t, err, model.ErrNotOwner)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteReviewByAdmin(t *testing.T) {
	f := newReviewFixture()
	f.repo.On("GetByID", mock.Anything, int64(1)).Return(&model.Review{
		ID: 1, Content: "ok", Rating: 4, UserID: 7, BookID: 5,
	}, nil)
	f.repo.On("Delete", mock.Anything, int64(1), int64(5)).Return(0.0, nil)
	f.cache.On("Delete", mock.Anything, []string{"book:5"}).Return(nil)

	err := f.svc.Delete(context.Background(), asAdmin(99, "root"), 1)

	require.NoError(t, err)
	f.repo.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func TestDeleteReviewByStrangerIsForbidden(t *testing.T) {
	f := newReviewFixture()
	f.repo.On("GetByID", mock.Anything, int64(1)).Return(&model.Review{
		ID: 1, Content: "ok", Rating: 4, UserID: 7, BookID: 5,
	}, nil)

	err := f.svc.Delete(context.Background(), asUser(8, "mallory"), 1)

	assert.ErrorIs(t, err, model.ErrNotOwner)
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestListByBookMissingBook(t *testing.T) {
	f := newReviewFixture()
	f.books.On("ExistsByID", mock.Anything, int64(999)).Return(false, nil)

	_, _, err := f.svc.ListByBook(context.Background(), 999, 1, 10)

	assert.ErrorIs(t, err, model.ErrBookNotFound)
	f.repo.AssertNotCalled(t, "ListByBook", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetMyReviewForBook(t *testing.T) {
	f := newReviewFixture()
	f.books.On("ExistsByID", mock.Anything, int64(5)).Return(true, nil)
	f.repo.On("GetByUserAndBook", mock.Anything, int64(7), int64(5)).Return(&model.Review{
		ID: 1, Content: "ok", Rating: 4, UserID: 7, BookID: 5, Username: "alice",
	}, nil)

	resp, err := f.svc.GetMyReviewForBook(context.Background(), asUser(7, "alice"), 5)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}
