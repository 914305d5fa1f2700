package model

// Book is the catalog entity. AverageRating is derived from the review
// set and recomputed by the review domain; it is never edited directly.
type Book struct {
	ID              int64    `json:"id" db:"id"`
	Title           string   `json:"title" db:"title"`
	ISBN            string   `json:"isbn" db:"isbn"`
	PublicationYear int      `json:"publication_year" db:"publication_year"`
	Description     *string  `json:"description" db:"description"`
	CoverImageURL   *string  `json:"cover_image_url" db:"cover_image_url"`
	AverageRating   float64  `json:"average_rating" db:"average_rating"`
	AuthorID        int64    `json:"author_id" db:"author_id"`

	// Joined data, populated by the repository
	AuthorName string         `json:"author_name"`
	Genres     []GenreSummary `json:"genres"`
}

// AuthorSummary is the author projection embedded in book responses
type AuthorSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GenreSummary is the genre projection embedded in book responses
type GenreSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ToResponse projects the entity for API output
func (b *Book) ToResponse() BookResponse {
	genres := b.Genres
	if genres == nil {
		genres = []GenreSummary{}
	}

	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Description:     b.Description,
		CoverImageURL:   b.CoverImageURL,
		AverageRating:   b.AverageRating,
		Author:          AuthorSummary{ID: b.AuthorID, Name: b.AuthorName},
		Genres:          genres,
	}
}
