package book

import "time"

// DateLayout is the wire format for calendar-date fields.
const DateLayout = "2006-01-02"

// Book is the domain entity. AuthorName is populated by the listing join
// and is nil when the author row is missing — impossible while the
// integrity guard holds, but the join is a LEFT JOIN so such a row would
// still surface.
type Book struct {
	ID            int64     `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   *string   `json:"description" db:"description"`
	PublishedDate time.Time `json:"published_date" db:"published_date"`
	AuthorID      int64     `json:"author_id" db:"author_id"`
	AuthorName    *string   `json:"author_name" db:"author_name"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// BookFilter restricts the book listing. AuthorID nil means no filter.
type BookFilter struct {
	AuthorID *int64
}
