package book

import "context"

// Service defines business logic for the book domain.
type Service interface {
	GetAll(ctx context.Context, filter BookFilter) ([]Book, error)

	// GetByID returns ErrBookNotFound for unknown ids.
	GetByID(ctx context.Context, id int64) (*Book, error)

	// ListByAuthor returns the author's books in insertion order.
	ListByAuthor(ctx context.Context, authorID int64) ([]Book, error)

	// Create persists a new book after confirming the referenced author
	// exists; returns ErrAuthorNotFound otherwise.
	Create(ctx context.Context, req *BookRequest) (*Book, error)

	// Update fully replaces the book's fields, re-validating the author
	// reference. Returns ErrBookNotFound or ErrAuthorNotFound.
	Update(ctx context.Context, id int64, req *BookRequest) (*Book, error)

	// Delete removes the book; ErrBookNotFound for unknown ids.
	Delete(ctx context.Context, id int64) error
}
