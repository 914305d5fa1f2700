package service

import (
	"context"

	"bookreview-backend/internal/domains/genre/model"
	"bookreview-backend/internal/domains/genre/repository"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.GenreRequest) (*model.GenreResponse, error)
	GetByID(ctx context.Context, id int64) (*model.GenreResponse, error)
	List(ctx context.Context, page, limit int) ([]model.GenreResponse, int, error)
	Update(ctx context.Context, id int64, req model.GenreRequest) (*model.GenreResponse, error)
	Delete(ctx context.Context, id int64) error
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(repo repository.GenreRepository) ServiceInterface {
	return &genreService{repo: repo}
}

func (s *genreService) Create(ctx context.Context, req model.GenreRequest) (*model.GenreResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	genre := &model.Genre{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, err
	}

	resp := genre.ToResponse()
	return &resp, nil
}

func (s *genreService) GetByID(ctx context.Context, id int64) (*model.GenreResponse, error) {
	genre, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := genre.ToResponse()
	return &resp, nil
}

func (s *genreService) List(ctx context.Context, page, limit int) ([]model.GenreResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	genres, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]model.GenreResponse, 0, len(genres))
	for _, g := range genres {
		responses = append(responses, g.ToResponse())
	}

	return responses, total, nil
}

func (s *genreService) Update(ctx context.Context, id int64, req model.GenreRequest) (*model.GenreResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	genre, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	genre.Name = req.Name
	genre.Description = req.Description

	if err := s.repo.Update(ctx, genre); err != nil {
		return nil, err
	}

	resp := genre.ToResponse()
	return &resp, nil
}

func (s *genreService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
