package author

import "context"

// Service defines business logic for the author domain.
type Service interface {
	GetAll(ctx context.Context) ([]Author, error)

	// GetByID returns ErrAuthorNotFound for unknown ids.
	GetByID(ctx context.Context, id int64) (*Author, error)

	// Create persists a new author from a validated request.
	Create(ctx context.Context, req *AuthorRequest) (*Author, error)

	// Update fully replaces the author's fields.
	// Returns ErrAuthorNotFound for unknown ids.
	Update(ctx context.Context, id int64, req *AuthorRequest) (*Author, error)

	// Delete removes the author unless books still reference it, in which
	// case it returns ErrAuthorHasBooks and deletes nothing.
	Delete(ctx context.Context, id int64) error
}
