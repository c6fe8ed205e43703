package service

import (
	"context"

	"bookshelf-api/internal/domains/book"
)

// bookService implements book.Service.
type bookService struct {
	repo book.Repository
}

// NewBookService creates a new book service instance.
func NewBookService(repo book.Repository) book.Service {
	return &bookService{repo: repo}
}

func (s *bookService) GetAll(ctx context.Context, filter book.BookFilter) ([]book.Book, error) {
	return s.repo.GetAll(ctx, filter)
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*book.Book, error) {
	if id <= 0 {
		return nil, book.ErrBookNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) ListByAuthor(ctx context.Context, authorID int64) ([]book.Book, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

// Create refuses to write a book whose author does not exist. The
// repository repeats the lookup inside its transaction; this one exists
// so the common case fails fast without opening a transaction.
func (s *bookService) Create(ctx context.Context, req *book.BookRequest) (*book.Book, error) {
	b, err := req.ToEntity()
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.AuthorExists(ctx, b.AuthorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, book.ErrAuthorNotFound
	}

	return s.repo.Create(ctx, b)
}

// Update re-validates the author reference since a full replace may point
// the book at a different author.
func (s *bookService) Update(ctx context.Context, id int64, req *book.BookRequest) (*book.Book, error) {
	if id <= 0 {
		return nil, book.ErrBookNotFound
	}

	b, err := req.ToEntity()
	if err != nil {
		return nil, err
	}
	b.ID = id

	exists, err := s.repo.AuthorExists(ctx, b.AuthorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, book.ErrAuthorNotFound
	}

	return s.repo.Update(ctx, b)
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return book.ErrBookNotFound
	}
	return s.repo.Delete(ctx, id)
}
