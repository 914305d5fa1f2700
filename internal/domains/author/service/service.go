package service

import (
	"context"

	"bookreview-backend/internal/domains/author/model"
	"bookreview-backend/internal/domains/author/repository"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.AuthorRequest) (*model.AuthorResponse, error)
	GetByID(ctx context.Context, id int64) (*model.AuthorResponse, error)
	List(ctx context.Context, page, limit int) ([]model.AuthorResponse, int, error)
	Update(ctx context.Context, id int64, req model.AuthorRequest) (*model.AuthorResponse, error)
	Delete(ctx context.Context, id int64) error
}

type authorService struct {
	repo repository.AuthorRepository
}

func NewAuthorService(repo repository.AuthorRepository) ServiceInterface {
	return &authorService{repo: repo}
}

func (s *authorService) Create(ctx context.Context, req model.AuthorRequest) (*model.AuthorResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	author := &model.Author{
		Name:      req.Name,
		Biography: req.Biography,
		DOB:       req.DOB,
	}

	if err := s.repo.Create(ctx, author); err != nil {
		return nil, err
	}

	resp := author.ToResponse()
	return &resp, nil
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*model.AuthorResponse, error) {
	author, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := author.ToResponse()
	return &resp, nil
}

func (s *authorService) List(ctx context.Context, page, limit int) ([]model.AuthorResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	authors, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]model.AuthorResponse, 0, len(authors))
	for _, a := range authors {
		responses = append(responses, a.ToResponse())
	}

	return responses, total, nil
}

func (s *authorService) Update(ctx context.Context, id int64, req model.AuthorRequest) (*model.AuthorResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	author, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author.Name = req.Name
	author.Biography = req.Biography
	author.DOB = req.DOB

	if err := s.repo.Update(ctx, author); err != nil {
		return nil, err
	}

	resp := author.ToResponse()
	return &resp, nil
}

func (s *authorService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
