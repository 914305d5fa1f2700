package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/book/repository"
	genremodel "bookreview-backend/internal/domains/genre/model"
	"bookreview-backend/pkg/cache"
)

const bookCacheTTL = 10 * time.Minute

// BookCacheKey builds the cache key for a book's detail view. The review
// domain invalidates this key after rating recomputation.
func BookCacheKey(id int64) string {
	return fmt.Sprintf("book:%d", id)
}

// AuthorChecker is the slice of the author domain the book service needs
type AuthorChecker interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// GenreLookup resolves genre ids for link validation
type GenreLookup interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*genremodel.Genre, error)
}

type ServiceInterface interface {
	Create(ctx context.Context, req model.BookRequest) (*model.BookResponse, error)
	GetByID(ctx context.Context, id int64) (*model.BookResponse, error)
	Search(ctx context.Context, req model.SearchBooksRequest) ([]model.BookResponse, int, error)
	Update(ctx context.Context, id int64, req model.BookRequest) (*model.BookResponse, error)
	Delete(ctx context.Context, id int64) error
}

type bookService struct {
	repo    repository.BookRepository
	authors AuthorChecker
	genres  GenreLookup
	cache   cache.Cache
}

func NewBookService(repo repository.BookRepository, authors AuthorChecker, genres GenreLookup, c cache.Cache) ServiceInterface {
	return &bookService{
		repo:    repo,
		authors: authors,
		genres:  genres,
		cache:   c,
	}
}

func (s *bookService) Create(ctx context.Context, req model.BookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	book := &model.Book{
		Title:           req.Title,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Description:     req.Description,
		CoverImageURL:   req.CoverImageURL,
		AuthorID:        req.AuthorID,
	}

	if err := s.repo.Create(ctx, book, req.GenreIDs); err != nil {
		return nil, err
	}

	// re-read to pick up the joined author name and genres
	created, err := s.repo.GetByID(ctx, book.ID)
	if err != nil {
		return nil, err
	}

	resp := created.ToResponse()
	return &resp, nil
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*model.BookResponse, error) {
	key := BookCacheKey(id)

	var cached model.BookResponse
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("book cache read failed")
	} else if found {
		return &cached, nil
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := book.ToResponse()
	if err := s.cache.Set(ctx, key, resp, bookCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("book cache write failed")
	}

	return &resp, nil
}

// Search dispatches to exactly one retrieval strategy chosen by the
// request. Filters never combine.
func (s *bookService) Search(ctx context.Context, req model.SearchBooksRequest) ([]model.BookResponse, int, error) {
	req.SetDefaults()

	var (
		books []*model.Book
		total int
		err   error
	)

	switch req.Strategy() {
	case model.StrategyQuery:
		books, total, err = s.repo.SearchByTitleOrAuthor(ctx, req.Query, req.Page, req.Limit)
	case model.StrategyAuthor:
		books, total, err = s.repo.SearchByAuthorName(ctx, req.AuthorName, req.Page, req.Limit)
	case model.StrategyGenre:
		books, total, err = s.repo.SearchByGenreName(ctx, req.GenreName, req.Page, req.Limit)
	default:
		books, total, err = s.repo.List(ctx, req.Page, req.Limit)
	}
	if err != nil {
		return nil, 0, err
	}

	responses := make([]model.BookResponse, 0, len(books))
	for _, b := range books {
		responses = append(responses, b.ToResponse())
	}

	return responses, total, nil
}

func (s *bookService) Update(ctx context.Context, id int64, req model.BookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	book.Title = req.Title
	book.ISBN = req.ISBN
	book.PublicationYear = req.PublicationYear
	book.Description = req.Description
	book.CoverImageURL = req.CoverImageURL
	book.AuthorID = req.AuthorID

	if err := s.repo.Update(ctx, book, req.GenreIDs); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

// checkReferences verifies the author exists and every genre id resolves
func (s *bookService) checkReferences(ctx context.Context, req model.BookRequest) error {
	exists, err := s.authors.ExistsByID(ctx, req.AuthorID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrAuthorNotFound
	}

	if len(req.GenreIDs) == 0 {
		return nil
	}

	genres, err := s.genres.GetByIDs(ctx, req.GenreIDs)
	if err != nil {
		return err
	}

	found := make(map[int64]bool, len(genres))
	for _, g := range genres {
		found[g.ID] = true
	}

	var missing []int64
	for _, id := range req.GenreIDs {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return model.NewGenresNotFoundError(missing)
	}

	return nil
}

func (s *bookService) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, BookCacheKey(id)); err != nil {
		log.Warn().Err(err).Int64("book_id", id).Msg("book cache invalidation failed")
	}
}
