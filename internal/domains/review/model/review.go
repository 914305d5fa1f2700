package model

import "time"

// Review is one user's rating of one book. ReviewDate is set when the
// review is created and never changes on edit.
type Review struct {
	ID         int64     `json:"id" db:"id"`
	Title      *string   `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	Rating     int       `json:"rating" db:"rating"`
	ReviewDate time.Time `json:"review_date" db:"review_date"`
	UserID     int64     `json:"user_id" db:"user_id"`
	BookID     int64     `json:"book_id" db:"book_id"`

	// Joined data, populated by the repository
	Username string `json:"username"`
}

// ToResponse projects the entity for API output
func (r *Review) ToResponse() ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		Title:      r.Title,
		Content:    r.Content,
		Rating:     r.Rating,
		ReviewDate: r.ReviewDate,
		UserID:     r.UserID,
		Username:   r.Username,
		BookID:     r.BookID,
	}
}
