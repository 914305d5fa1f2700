package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// =====================================================
// REQUEST DTOs
// =====================================================

type BookRequest struct {
	Title           string  `json:"title" binding:"required"`
	ISBN            string  `json:"isbn" binding:"required"`
	PublicationYear int     `json:"publication_year" binding:"required"`
	Description     *string `json:"description"`
	CoverImageURL   *string `json:"cover_image_url"`
	AuthorID        int64   `json:"author_id" binding:"required"`
	GenreIDs        []int64 `json:"genre_ids"`
}

func (r BookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.ISBN,
			validation.Required.Error("isbn is required"),
			validation.Length(10, 13),
			is.Digit.Error("isbn must contain digits only"),
		),
		validation.Field(&r.PublicationYear,
			validation.Required,
			validation.Min(1000),
			validation.Max(time.Now().Year()+1),
		),
		validation.Field(&r.AuthorID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.GenreIDs, validation.Each(validation.Min(int64(1)))),
	)
}

// SearchBooksRequest carries the optional, independently-nullable filters.
// Exactly one retrieval strategy is selected per call; see Strategy.
type SearchBooksRequest struct {
	Query      string `form:"query"`
	AuthorName string `form:"authorName"`
	GenreName  string `form:"genreName"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

func (r *SearchBooksRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 10
	}
}

// SearchStrategy identifies which single filter won
type SearchStrategy int

const (
	// StrategyQuery matches title OR author name (case-insensitive substring)
	StrategyQuery SearchStrategy = iota
	// StrategyAuthor matches author name only
	StrategyAuthor
	// StrategyGenre matches genre name only
	StrategyGenre
	// StrategyAll is the unfiltered listing
	StrategyAll
)

// Strategy picks exactly one retrieval strategy, top to bottom, stopping
// at the first non-empty filter. Filters are never combined; a caller
// supplying query and authorName gets the query strategy only.
func (r *SearchBooksRequest) Strategy() SearchStrategy {
	switch {
	case strings.TrimSpace(r.Query) != "":
		return StrategyQuery
	case strings.TrimSpace(r.AuthorName) != "":
		return StrategyAuthor
	case strings.TrimSpace(r.GenreName) != "":
		return StrategyGenre
	default:
		return StrategyAll
	}
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type BookResponse struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	ISBN            string         `json:"isbn"`
	PublicationYear int            `json:"publication_year"`
	Description     *string        `json:"description,omitempty"`
	CoverImageURL   *string        `json:"cover_image_url,omitempty"`
	AverageRating   float64        `json:"average_rating"`
	Author          AuthorSummary  `json:"author"`
	Genres          []GenreSummary `json:"genres"`
}

type ListBooksResponse struct {
	Books []BookResponse `json:"books"`
	Total int            `json:"total"`
}
