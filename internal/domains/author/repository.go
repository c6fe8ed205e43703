package author

import "context"

// Repository defines data access for authors.
type Repository interface {
	// GetAll returns every author in insertion order.
	GetAll(ctx context.Context) ([]Author, error)

	// GetByID returns ErrAuthorNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*Author, error)

	// Create inserts a new author; storage assigns id and timestamps.
	Create(ctx context.Context, a *Author) (*Author, error)

	// Update fully replaces the mutable fields of the row matching a.ID.
	// Returns ErrAuthorNotFound when no row matches.
	Update(ctx context.Context, a *Author) (*Author, error)

	// Delete removes the author. The book-existence check and the delete
	// run in a single transaction; returns ErrAuthorHasBooks when books
	// still reference the author, ErrAuthorNotFound when no row matches.
	Delete(ctx context.Context, id int64) error

	// CountBooks returns how many books reference the author.
	CountBooks(ctx context.Context, id int64) (int, error)
}
