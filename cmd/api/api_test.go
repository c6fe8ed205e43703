package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-api/internal/config"
	"bookshelf-api/internal/domains/author"
	authorHandler "bookshelf-api/internal/domains/author/handler"
	authorService "bookshelf-api/internal/domains/author/service"
	"bookshelf-api/internal/domains/book"
	bookHandler "bookshelf-api/internal/domains/book/handler"
	bookService "bookshelf-api/internal/domains/book/service"
	"bookshelf-api/pkg/container"
)

// memStore backs in-memory author and book repositories so the full
// router can be exercised without PostgreSQL.
type memStore struct {
	mu           sync.Mutex
	authors      map[int64]author.Author
	books        map[int64]book.Book
	nextAuthorID int64
	nextBookID   int64
}

func newMemStore() *memStore {
	return &memStore{
		authors:      make(map[int64]author.Author),
		books:        make(map[int64]book.Book),
		nextAuthorID: 1,
		nextBookID:   1,
	}
}

type memAuthorRepo struct{ s *memStore }

func (r *memAuthorRepo) GetAll(ctx context.Context) ([]author.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]author.Author, 0, len(r.s.authors))
	for _, a := range r.s.authors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memAuthorRepo) GetByID(ctx context.Context, id int64) (*author.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return &a, nil
}

func (r *memAuthorRepo) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := *a
	created.ID = r.s.nextAuthorID
	r.s.nextAuthorID++
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.s.authors[created.ID] = created
	return &created, nil
}

func (r *memAuthorRepo) Update(ctx context.Context, a *author.Author) (*author.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.authors[a.ID]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	updated := *a
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	r.s.authors[a.ID] = updated
	return &updated, nil
}

func (r *memAuthorRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, b := range r.s.books {
		if b.AuthorID == id {
			return author.ErrAuthorHasBooks
		}
	}
	if _, ok := r.s.authors[id]; !ok {
		return author.ErrAuthorNotFound
	}
	delete(r.s.authors, id)
	return nil
}

func (r *memAuthorRepo) CountBooks(ctx context.Context, id int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	count := 0
	for _, b := range r.s.books {
		if b.AuthorID == id {
			count++
		}
	}
	return count, nil
}

type memBookRepo struct{ s *memStore }

func (r *memBookRepo) withAuthorName(b book.Book) book.Book {
	if a, ok := r.s.authors[b.AuthorID]; ok {
		name := a.Name
		b.AuthorName = &name
	}
	return b
}

func (r *memBookRepo) GetAll(ctx context.Context, filter book.BookFilter) ([]book.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]book.Book, 0, len(r.s.books))
	for _, b := range r.s.books {
		if filter.AuthorID != nil && b.AuthorID != *filter.AuthorID {
			continue
		}
		out = append(out, r.withAuthorName(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memBookRepo) GetByID(ctx context.Context, id int64) (*book.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	b = r.withAuthorName(b)
	return &b, nil
}

func (r *memBookRepo) ListByAuthor(ctx context.Context, authorID int64) ([]book.Book, error) {
	return r.GetAll(ctx, book.BookFilter{AuthorID: &authorID})
}

func (r *memBookRepo) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.authors[b.AuthorID]; !ok {
		return nil, book.ErrAuthorNotFound
	}
	created := *b
	created.ID = r.s.nextBookID
	r.s.nextBookID++
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.s.books[created.ID] = created
	result := r.withAuthorName(created)
	return &result, nil
}

func (r *memBookRepo) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.authors[b.AuthorID]; !ok {
		return nil, book.ErrAuthorNotFound
	}
	existing, ok := r.s.books[b.ID]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	updated := *b
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	r.s.books[b.ID] = updated
	result := r.withAuthorName(updated)
	return &result, nil
}

func (r *memBookRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.s.books, id)
	return nil
}

func (r *memBookRepo) AuthorExists(ctx context.Context, authorID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.authors[authorID]
	return ok, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	c := &container.Container{
		Config:     &config.Config{App: config.AppConfig{Name: "test", Environment: "test"}},
		AuthorRepo: &memAuthorRepo{s: store},
		BookRepo:   &memBookRepo{s: store},
	}
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.BookService = bookService.NewBookService(c.BookRepo)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, c.BookService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)

	return SetupRouter(c)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestAuthorBookLifecycle walks the full scenario: create an author and a
// book, list the author's books with the joined name, watch the guarded
// delete fail, then clean up in the only order the guard permits.
func TestAuthorBookLifecycle(t *testing.T) {
	r := newTestRouter()

	// Create the author.
	w := doJSON(t, r, http.MethodPost, "/api/v1/authors", map[string]interface{}{
		"name":      "Jane Austen",
		"birthdate": "1775-12-16",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var createdAuthor author.AuthorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createdAuthor))
	assert.Equal(t, int64(1), createdAuthor.ID)

	// Create a book referencing the author.
	w = doJSON(t, r, http.MethodPost, "/api/v1/books", map[string]interface{}{
		"title":          "Pride and Prejudice",
		"published_date": "1813-01-28",
		"author_id":      createdAuthor.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var createdBook book.BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createdBook))
	assert.Equal(t, int64(1), createdBook.ID)
	assert.Equal(t, createdAuthor.ID, createdBook.AuthorID)

	// A book against a missing author is a 404 and writes nothing.
	w = doJSON(t, r, http.MethodPost, "/api/v1/books", map[string]interface{}{
		"title":          "Ghost Book",
		"published_date": "1900-01-01",
		"author_id":      99,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The single-book lookup carries the joined author name.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/books/%d", createdBook.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched book.BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	require.NotNil(t, fetched.AuthorName)
	assert.Equal(t, "Jane Austen", *fetched.AuthorName)

	// The author filter returns exactly the author's books.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/books?author=%d", createdAuthor.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var filtered []book.BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, createdBook.ID, filtered[0].ID)

	// GET /authors/:id/books returns the author plus the ordered books.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/authors/%d/books", createdAuthor.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var withBooks authorHandler.AuthorBooksResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &withBooks))
	require.NotNil(t, withBooks.Author)
	assert.Equal(t, "Jane Austen", withBooks.Author.Name)
	require.Len(t, withBooks.Books, 1)
	assert.Equal(t, "Pride and Prejudice", withBooks.Books[0].Title)

	// Deleting the author while the book exists is refused and nothing
	// changes.
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/authors/%d", createdAuthor.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/authors/%d", createdAuthor.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code, "the author must survive a refused delete")

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/books/%d", createdBook.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code, "the book must survive a refused author delete")

	// Remove the book, then the author.
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/books/%d", createdBook.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/authors/%d", createdAuthor.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/authors/%d", createdAuthor.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestUpdateMovesBookBetweenAuthors covers the full-replace update
// re-pointing a book at a different author.
func TestUpdateMovesBookBetweenAuthors(t *testing.T) {
	r := newTestRouter()

	for _, name := range []string{"Jane Austen", "Charlotte Brontë"} {
		w := doJSON(t, r, http.MethodPost, "/api/v1/authors", map[string]interface{}{
			"name":      name,
			"birthdate": "1800-01-01",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/books", map[string]interface{}{
		"title":          "Jane Eyre",
		"published_date": "1847-10-19",
		"author_id":      1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Move the book to the second author.
	w = doJSON(t, r, http.MethodPut, "/api/v1/books/1", map[string]interface{}{
		"title":          "Jane Eyre",
		"published_date": "1847-10-19",
		"author_id":      2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var moved book.BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &moved))
	assert.Equal(t, int64(2), moved.AuthorID)
	require.NotNil(t, moved.AuthorName)
	assert.Equal(t, "Charlotte Brontë", *moved.AuthorName)

	// The first author is deletable now, the second is not.
	w = doJSON(t, r, http.MethodDelete, "/api/v1/authors/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/authors/2", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Moving the book to a now-deleted author is refused.
	w = doJSON(t, r, http.MethodPut, "/api/v1/books/1", map[string]interface{}{
		"title":          "Jane Eyre",
		"published_date": "1847-10-19",
		"author_id":      1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
