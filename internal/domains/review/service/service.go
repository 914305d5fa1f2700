package service

import (
	"context"

	"github.com/rs/zerolog/log"

	bookservice "bookreview-backend/internal/domains/book/service"
	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/domains/review/repository"
	"bookreview-backend/internal/shared/auth"
	"bookreview-backend/pkg/cache"
)

// BookChecker is the slice of the book domain the review service needs
type BookChecker interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// UserChecker is the slice of the user domain the review service needs
type UserChecker interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

type ServiceInterface interface {
	Create(ctx context.Context, identity auth.Identity, bookID int64, req model.CreateReviewRequest) (*model.ReviewResponse, error)
	GetByID(ctx context.Context, id int64) (*model.ReviewResponse, error)
	GetMyReviewForBook(ctx context.Context, identity auth.Identity, bookID int64) (*model.ReviewResponse, error)
	ListByBook(ctx context.Context, bookID int64, page, limit int) ([]model.ReviewResponse, int, error)
	ListByUser(ctx context.Context, userID int64, page, limit int) ([]model.ReviewResponse, int, error)
	Update(ctx context.Context, identity auth.Identity, id int64, req model.UpdateReviewRequest) (*model.ReviewResponse, error)
	Delete(ctx context.Context, identity auth.Identity, id int64) error
}

type reviewService struct {
	repo  repository.ReviewRepository
	books BookChecker
	users UserChecker
	cache cache.Cache
}

func NewReviewService(repo repository.ReviewRepository, books BookChecker, users UserChecker, c cache.Cache) ServiceInterface {
	return &reviewService{
		repo:  repo,
		books: books,
		users: users,
		cache: c,
	}
}

func (s *reviewService) Create(ctx context.Context, identity auth.Identity, bookID int64, req model.CreateReviewRequest) (*model.ReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	review := &model.Review{
		Title:   req.Title,
		Content: req.Content,
		Rating:  req.Rating,
		UserID:  identity.UserID,
		BookID:  bookID,
	}

	// the repository locks the book row and reports a missing book itself
	if _, err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.invalidateBook(ctx, bookID)

	review.Username = identity.Username
	resp := review.ToResponse()
	return &resp, nil
}

func (s *reviewService) GetByID(ctx context.Context, id int64) (*model.ReviewResponse, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := review.ToResponse()
	return &resp, nil
}

func (s *reviewService) GetMyReviewForBook(ctx context.Context, identity auth.Identity, bookID int64) (*model.ReviewResponse, error) {
	exists, err := s.books.ExistsByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrBookNotFound
	}

	review, err := s.repo.GetByUserAndBook(ctx, identity.UserID, bookID)
	if err != nil {
		return nil, err
	}

	resp := review.ToResponse()
	return &resp, nil
}

func (s *reviewService) ListByBook(ctx context.Context, bookID int64, page, limit int) ([]model.ReviewResponse, int, error) {
	page, limit = clampPage(page, limit)

	exists, err := s.books.ExistsByID(ctx, bookID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, model.ErrBookNotFound
	}

	reviews, total, err := s.repo.ListByBook(ctx, bookID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	return toResponses(reviews), total, nil
}

func (s *reviewService) ListByUser(ctx context.Context, userID int64, page, limit int) ([]model.ReviewResponse, int, error) {
	page, limit = clampPage(page, limit)

	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, model.ErrUserNotFound
	}

	reviews, total, err := s.repo.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	return toResponses(reviews), total, nil
}

func (s *reviewService) Update(ctx context.Context, identity auth.Identity, id int64, req model.UpdateReviewRequest) (*model.ReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(identity, review); err != nil {
		return nil, err
	}

	review.Title = req.Title
	review.Content = req.Content
	review.Rating = req.Rating

	if _, err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}

	s.invalidateBook(ctx, review.BookID)

	resp := review.ToResponse()
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, identity auth.Identity, id int64) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorize(identity, review); err != nil {
		return err
	}

	if _, err := s.repo.Delete(ctx, review.ID, review.BookID); err != nil {
		return err
	}

	s.invalidateBook(ctx, review.BookID)
	return nil
}

// authorize admits the review's author and admins, nobody else
func (s *reviewService) authorize(identity auth.Identity, review *model.Review) error {
	if review.UserID == identity.UserID {
		return nil
	}
	if identity.HasAnyRole(auth.RoleAdmin) {
		return nil
	}
	return model.ErrNotOwner
}

func (s *reviewService) invalidateBook(ctx context.Context, bookID int64) {
	if err := s.cache.Delete(ctx, bookservice.BookCacheKey(bookID)); err != nil {
		log.Warn().Err(err).Int64("book_id", bookID).Msg("book cache invalidation failed")
	}
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func toResponses(reviews []*model.Review) []model.ReviewResponse {
	responses := make([]model.ReviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		responses = append(responses, rv.ToResponse())
	}
	return responses
}
