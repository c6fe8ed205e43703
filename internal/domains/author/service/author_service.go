package service

import (
	"context"

	"bookshelf-api/internal/domains/author"
)

// authorService implements author.Service.
type authorService struct {
	repo author.Repository
}

// NewAuthorService creates a new author service instance. The service
// depends on the repository abstraction, not the concrete type, so tests
// can substitute an in-memory implementation.
func NewAuthorService(repo author.Repository) author.Service {
	return &authorService{repo: repo}
}

func (s *authorService) GetAll(ctx context.Context) ([]author.Author, error) {
	return s.repo.GetAll(ctx)
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*author.Author, error) {
	if id <= 0 {
		return nil, author.ErrAuthorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) Create(ctx context.Context, req *author.AuthorRequest) (*author.Author, error) {
	a, err := req.ToEntity()
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, a)
}

func (s *authorService) Update(ctx context.Context, id int64, req *author.AuthorRequest) (*author.Author, error) {
	if id <= 0 {
		return nil, author.ErrAuthorNotFound
	}

	a, err := req.ToEntity()
	if err != nil {
		return nil, err
	}
	a.ID = id

	return s.repo.Update(ctx, a)
}

// Delete refuses to remove an author that still has books. The repository
// repeats the check inside its transaction; this one exists so the common
// case fails fast without opening a transaction.
func (s *authorService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return author.ErrAuthorNotFound
	}

	count, err := s.repo.CountBooks(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return author.ErrAuthorHasBooks
	}

	return s.repo.Delete(ctx, id)
}
