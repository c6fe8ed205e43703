package book

import "context"

// Repository defines data access for books. Every read goes through the
// author join so rows always carry AuthorName.
type Repository interface {
	// GetAll returns books in insertion order, optionally restricted to
	// one author by the filter.
	GetAll(ctx context.Context, filter BookFilter) ([]Book, error)

	// GetByID returns ErrBookNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*Book, error)

	// ListByAuthor returns the author's books in insertion order.
	ListByAuthor(ctx context.Context, authorID int64) ([]Book, error)

	// Create inserts a new book. The author lookup and the insert run in a
	// single transaction; returns ErrAuthorNotFound and writes nothing
	// when the referenced author does not exist.
	Create(ctx context.Context, b *Book) (*Book, error)

	// Update fully replaces the mutable fields of the row matching b.ID,
	// re-validating the (possibly new) author reference in the same
	// transaction. Returns ErrBookNotFound or ErrAuthorNotFound.
	Update(ctx context.Context, b *Book) (*Book, error)

	// Delete removes the book; ErrBookNotFound when no row matches.
	Delete(ctx context.Context, id int64) error

	// AuthorExists reports whether the author id resolves to a row.
	AuthorExists(ctx context.Context, authorID int64) (bool, error)
}
