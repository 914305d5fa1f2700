package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bookreview-backend/internal/domains/user/model"
	"bookreview-backend/internal/domains/user/repository"
	"bookreview-backend/internal/shared/auth"
	"bookreview-backend/pkg/jwt"
)

// bcrypt cost 12: balance between security and login latency
const bcryptCost = 12

// dummyHash is compared against when the identity does not exist, so the
// failure path does roughly the same work whether or not the account is real.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("credential-padding"), bcryptCost)

type userService struct {
	repo       repository.UserRepository
	jwtManager *jwt.Manager
}

func NewUserService(repo repository.UserRepository, jwtManager *jwt.Manager) ServiceInterface {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

// =====================================================
// AUTHENTICATION
// =====================================================

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, model.ErrUsernameTaken
	}

	inUse, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if inUse {
		return nil, model.ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newUser := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Roles:        []string{auth.RoleUser},
		RegisteredAt: time.Now(),
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	resp := newUser.ToResponse()
	return &resp, nil
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByUsernameOrEmail(ctx, req.UsernameOrEmail)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Burn a hash comparison anyway, then fail with the exact
			// same error a wrong password produces.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.Issue(u.ID, u.Username, u.Roles)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(s.jwtManager.TTL()),
		User:        u.ToResponse(),
	}, nil
}

// =====================================================
// USER MANAGEMENT
// =====================================================

func (s *userService) GetUser(ctx context.Context, id int64) (*model.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := u.ToResponse()
	return &resp, nil
}

func (s *userService) ListUsers(ctx context.Context, req model.ListUsersRequest) (*model.ListUsersResponse, error) {
	req.SetDefaults()

	users, total, err := s.repo.List(ctx, req.Page, req.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}

	return &model.ListUsersResponse{Users: responses, Total: total}, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Password != nil {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(passwordHash)
	}
	if req.Roles != nil {
		// The role set is never empty; an explicit empty list is ignored
		if len(req.Roles) > 0 {
			u.Roles = req.Roles
		}
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	resp := u.ToResponse()
	return &resp, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
