package resources

import (
	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	httperrors "github.com/dropDatabas3/hellocrud/internal/http/errors"
)

// BookRequest es el body de POST /books/ y PUT /books/{id}.
// Los campos son punteros para distinguir "ausente" de "zero value".
type BookRequest struct {
	ID            *int64  `json:"id"`
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	PublishedYear *int    `json:"published_year"`
	Description   *string `json:"description"`
}

// Validate exige el id sólo cuando requireID es true (POST).
func (r BookRequest) Validate(requireID bool) *httperrors.AppError {
	var c fieldCheck
	if requireID {
		c.require("id", r.ID != nil)
	}
	c.require("title", r.Title != nil)
	c.require("author", r.Author != nil)
	c.require("published_year", r.PublishedYear != nil)
	return c.err()
}

// ToRecord arma el registro. fallbackID se usa cuando el body no trae id.
func (r BookRequest) ToRecord(fallbackID int64) repository.Book {
	b := repository.Book{ID: fallbackID, Description: cloneString(r.Description)}
	if r.ID != nil {
		b.ID = *r.ID
	}
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.Author != nil {
		b.Author = *r.Author
	}
	if r.PublishedYear != nil {
		b.PublishedYear = *r.PublishedYear
	}
	return b
}

// BookResponse para respuestas de books.
type BookResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	PublishedYear int     `json:"published_year"`
	Description   *string `json:"description"`
}

func NewBookResponse(b repository.Book) BookResponse {
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		PublishedYear: b.PublishedYear,
		Description:   cloneString(b.Description),
	}
}

func NewBookListResponse(books []repository.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, NewBookResponse(b))
	}
	return out
}
