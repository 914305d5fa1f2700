package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Author struct {
	ID        int64      `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Biography *string    `json:"biography" db:"biography"`
	DOB       *time.Time `json:"dob" db:"dob"`
}

type AuthorRequest struct {
	Name      string     `json:"name" binding:"required"`
	Biography *string    `json:"biography"`
	DOB       *time.Time `json:"dob"`
}

func (r AuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("author name is required"),
			validation.Length(1, 255),
		),
	)
}

type AuthorResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Biography *string    `json:"biography,omitempty"`
	DOB       *time.Time `json:"dob,omitempty"`
}

func (a *Author) ToResponse() AuthorResponse {
	return AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Biography: a.Biography,
		DOB:       a.DOB,
	}
}
