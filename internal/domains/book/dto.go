package book

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 5000
)

// BookRequest - POST /v1/books and PUT /v1/books/:id.
// Updates are full replacements, so create and update share one shape.
type BookRequest struct {
	Title         string  `json:"title"`
	Description   *string `json:"description,omitempty"`
	PublishedDate string  `json:"published_date"`
	AuthorID      int64   `json:"author_id"`
}

func (r BookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.By(notBlank),
			validation.Length(1, MaxTitleLength),
		),
		validation.Field(&r.Description,
			validation.Length(0, MaxDescriptionLength),
		),
		validation.Field(&r.PublishedDate,
			validation.Required.Error("published_date is required"),
			validation.Date(DateLayout).Error("published_date must be an ISO-8601 date (YYYY-MM-DD)"),
		),
		validation.Field(&r.AuthorID,
			validation.Required.Error("author_id is required"),
			validation.Min(int64(1)).Error("author_id must be a positive integer"),
		),
	)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// BookResponse is the wire representation of a Book, including the
// author's name from the listing join.
type BookResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	PublishedDate string    `json:"published_date"`
	AuthorID      int64     `json:"author_id"`
	AuthorName    *string   `json:"author_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToResponse converts a Book entity to its wire representation.
func (b Book) ToResponse() *BookResponse {
	return &BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description,
		PublishedDate: b.PublishedDate.Format(DateLayout),
		AuthorID:      b.AuthorID,
		AuthorName:    b.AuthorName,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ToEntity converts a validated request into a Book entity. Call Validate
// first; the date parse cannot fail afterwards.
func (r *BookRequest) ToEntity() (*Book, error) {
	publishedDate, err := time.Parse(DateLayout, r.PublishedDate)
	if err != nil {
		return nil, err
	}
	return &Book{
		Title:         strings.TrimSpace(r.Title),
		Description:   r.Description,
		PublishedDate: publishedDate,
		AuthorID:      r.AuthorID,
	}, nil
}
