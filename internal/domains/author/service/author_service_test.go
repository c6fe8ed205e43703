package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-api/internal/domains/author"
)

// mockAuthorRepo implements author.Repository with per-call overrides.
type mockAuthorRepo struct {
	GetAllFunc     func(ctx context.Context) ([]author.Author, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*author.Author, error)
	CreateFunc     func(ctx context.Context, a *author.Author) (*author.Author, error)
	UpdateFunc     func(ctx context.Context, a *author.Author) (*author.Author, error)
	DeleteFunc     func(ctx context.Context, id int64) error
	CountBooksFunc func(ctx context.Context, id int64) (int, error)
}

func (m *mockAuthorRepo) GetAll(ctx context.Context) ([]author.Author, error) {
	return m.GetAllFunc(ctx)
}

func (m *mockAuthorRepo) GetByID(ctx context.Context, id int64) (*author.Author, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockAuthorRepo) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	return m.CreateFunc(ctx, a)
}

func (m *mockAuthorRepo) Update(ctx context.Context, a *author.Author) (*author.Author, error) {
	return m.UpdateFunc(ctx, a)
}

func (m *mockAuthorRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockAuthorRepo) CountBooks(ctx context.Context, id int64) (int, error) {
	return m.CountBooksFunc(ctx, id)
}

func TestAuthorServiceCreate(t *testing.T) {
	var captured *author.Author
	repo := &mockAuthorRepo{
		CreateFunc: func(ctx context.Context, a *author.Author) (*author.Author, error) {
			captured = a
			created := *a
			created.ID = 1
			return &created, nil
		},
	}
	svc := NewAuthorService(repo)

	req := &author.AuthorRequest{Name: "  Jane Austen ", Birthdate: "1775-12-16"}
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Jane Austen", captured.Name, "service should trim the name before persisting")
	assert.Equal(t, time.Date(1775, 12, 16, 0, 0, 0, 0, time.UTC), captured.Birthdate)
}

func TestAuthorServiceGetByIDRejectsNonPositive(t *testing.T) {
	repo := &mockAuthorRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*author.Author, error) {
			t.Fatal("repository should not be reached for non-positive ids")
			return nil, nil
		},
	}
	svc := NewAuthorService(repo)

	_, err := svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)

	_, err = svc.GetByID(context.Background(), -4)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestAuthorServiceUpdateSetsID(t *testing.T) {
	repo := &mockAuthorRepo{
		UpdateFunc: func(ctx context.Context, a *author.Author) (*author.Author, error) {
			assert.Equal(t, int64(5), a.ID)
			return a, nil
		},
	}
	svc := NewAuthorService(repo)

	req := &author.AuthorRequest{Name: "Jane Austen", Birthdate: "1775-12-16"}
	updated, err := svc.Update(context.Background(), 5, req)
	require.NoError(t, err)
	assert.Equal(t, int64(5), updated.ID)
}

func TestAuthorServiceUpdateUnknownID(t *testing.T) {
	repo := &mockAuthorRepo{
		UpdateFunc: func(ctx context.Context, a *author.Author) (*author.Author, error) {
			return nil, author.ErrAuthorNotFound
		},
	}
	svc := NewAuthorService(repo)

	req := &author.AuthorRequest{Name: "Jane Austen", Birthdate: "1775-12-16"}
	_, err := svc.Update(context.Background(), 99, req)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestAuthorServiceDeleteBlockedByBooks(t *testing.T) {
	deleteCalled := false
	repo := &mockAuthorRepo{
		CountBooksFunc: func(ctx context.Context, id int64) (int, error) {
			return 2, nil
		},
		DeleteFunc: func(ctx context.Context, id int64) error {
			deleteCalled = true
			return nil
		},
	}
	svc := NewAuthorService(repo)

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, author.ErrAuthorHasBooks)
	assert.False(t, deleteCalled, "no deletion may be attempted while books exist")
}

func TestAuthorServiceDeleteWithoutBooks(t *testing.T) {
	repo := &mockAuthorRepo{
		CountBooksFunc: func(ctx context.Context, id int64) (int, error) {
			return 0, nil
		},
		DeleteFunc: func(ctx context.Context, id int64) error {
			assert.Equal(t, int64(1), id)
			return nil
		},
	}
	svc := NewAuthorService(repo)

	assert.NoError(t, svc.Delete(context.Background(), 1))
}

func TestAuthorServiceDeleteUnknownID(t *testing.T) {
	repo := &mockAuthorRepo{
		CountBooksFunc: func(ctx context.Context, id int64) (int, error) {
			return 0, nil
		},
		DeleteFunc: func(ctx context.Context, id int64) error {
			return author.ErrAuthorNotFound
		},
	}
	svc := NewAuthorService(repo)

	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}
