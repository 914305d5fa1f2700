package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookreview-backend/internal/domains/user/model"
	"bookreview-backend/pkg/jwt"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) GetByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*model.User, error) {
	args := m.Called(ctx, usernameOrEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context, page, limit int) ([]*model.User, int, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.User), args.Int(1), args.Error(2)
}

func (m *mockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newTestService(repo *mockUserRepository) ServiceInterface {
	return NewUserService(repo, jwt.NewManager("test-secret", time.Hour))
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegisterAssignsDefaultRole(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "alice" && len(u.Roles) == 1 && u.Roles[0] == "USER"
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 7
	})

	svc := newTestService(repo)
	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, []string{"USER"}, resp.Roles)
	repo.AssertExpectations(t)
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil)

	svc := newTestService(repo)
	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, model.ErrUsernameTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginIssuesToken(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("GetByUsernameOrEmail", mock.Anything, "alice").Return(&model.User{
		ID:           7,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "opensesame"),
		Roles:        []string{"USER"},
	}, nil)

	svc := newTestService(repo)
	resp, err := svc.Login(context.Background(), model.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "opensesame",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(7), resp.User.ID)

	claims, err := jwt.NewManager("test-secret", time.Hour).Validate(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, []string{"USER"}, claims.Roles)
}

// An unknown identity and a wrong password must be indistinguishable
// from the outside.
func TestLoginFailuresLookIdentical(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("GetByUsernameOrEmail", mock.Anything, "ghost").Return(nil, model.ErrUserNotFound)
	repo.On("GetByUsernameOrEmail", mock.Anything, "alice").Return(&model.User{
		ID:           7,
		Username:     "alice",
		PasswordHash: hashPassword(t, "opensesame"),
		Roles:        []string{"USER"},
	}, nil)

	svc := newTestService(repo)

	_, unknownErr := svc.Login(context.Background(), model.LoginRequest{
		UsernameOrEmail: "ghost",
		Password:        "whatever",
	})
	_, wrongPassErr := svc.Login(context.Background(), model.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "not-the-password",
	})

	assert.ErrorIs(t, unknownErr, model.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, model.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

// A store failure must surface as an internal error, never as a
// credential rejection.
func TestLoginStoreFailureIsNotInvalidCredentials(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("GetByUsernameOrEmail", mock.Anything, "alice").
		Return(nil, errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))

	svc := newTestService(repo)
	resp, err := svc.Login(context.Background(), model.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "opensesame",
	})

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestUpdateUserIgnoresEmptyRoleList(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("GetByID", mock.Anything, int64(7)).Return(&model.User{
		ID:       7,
		Username: "alice",
		Email:    "alice@example.com",
		Roles:    []string{"USER"},
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return len(u.Roles) == 1 && u.Roles[0] == "USER"
	})).Return(nil)

	svc := newTestService(repo)
	resp, err := svc.UpdateUser(context.Background(), 7, model.UpdateUserRequest{
		Roles: []string{},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"USER"}, resp.Roles)
	repo.AssertExpectations(t)
}
