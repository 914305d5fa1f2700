package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// =====================================================
// REQUEST DTOs
// =====================================================

type CreateReviewRequest struct {
	Title   *string `json:"title"`
	Content string  `json:"content" binding:"required"`
	Rating  int     `json:"rating" binding:"required"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 200)),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 5000),
		),
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(1).Error("rating must be between 1 and 5"),
			validation.Max(5).Error("rating must be between 1 and 5"),
		),
	)
}

type UpdateReviewRequest struct {
	Title   *string `json:"title"`
	Content string  `json:"content" binding:"required"`
	Rating  int     `json:"rating" binding:"required"`
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 200)),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 5000),
		),
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(1).Error("rating must be between 1 and 5"),
			validation.Max(5).Error("rating must be between 1 and 5"),
		),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type ReviewResponse struct {
	ID         int64     `json:"id"`
	Title      *string   `json:"title,omitempty"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating"`
	ReviewDate time.Time `json:"review_date"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username"`
	BookID     int64     `json:"book_id"`
}
