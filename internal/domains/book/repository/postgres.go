package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bookshelf-api/internal/domains/book"
	"bookshelf-api/internal/infrastructure/database"
)

// foreignKeyViolation is the PostgreSQL error code raised when author_id
// fails the FK constraint. The pre-checks inside the transactions should
// catch a missing author first; the constraint is the authority if they
// ever disagree.
const foreignKeyViolation = "23503"

// postgresRepository implements book.Repository on top of the shared pgx
// connection pool.
type postgresRepository struct {
	db *database.PostgresDB
}

// NewPostgresRepository creates a new book repository instance.
func NewPostgresRepository(db *database.PostgresDB) book.Repository {
	return &postgresRepository{db: db}
}

// listQuery is the one join shape every book read uses: all book columns
// plus the author's name. LEFT JOIN so an author-less row (impossible
// under the guard, theoretical under raw storage) still lists with a null
// author_name.
const listQuery = `
    SELECT b.id, b.title, b.description, b.published_date, b.author_id,
           a.name AS author_name, b.created_at, b.updated_at
    FROM books b
    LEFT JOIN authors a ON b.author_id = a.id
`

func scanBook(row pgx.Row, b *book.Book) error {
	return row.Scan(
		&b.ID,
		&b.Title,
		&b.Description,
		&b.PublishedDate,
		&b.AuthorID,
		&b.AuthorName,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

func (r *postgresRepository) collectBooks(ctx context.Context, query string, args ...interface{}) ([]book.Book, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]book.Book, 0)
	for rows.Next() {
		var b book.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, filter book.BookFilter) ([]book.Book, error) {
	if filter.AuthorID != nil {
		return r.collectBooks(ctx, listQuery+` WHERE b.author_id = $1 ORDER BY b.id`, *filter.AuthorID)
	}
	return r.collectBooks(ctx, listQuery+` ORDER BY b.id`)
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID int64) ([]book.Book, error) {
	return r.collectBooks(ctx, listQuery+` WHERE b.author_id = $1 ORDER BY b.id`, authorID)
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*book.Book, error) {
	var b book.Book
	err := scanBook(r.db.Pool.QueryRow(ctx, listQuery+` WHERE b.id = $1`, id), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return &b, nil
}

// Create looks the author up and inserts the book in one transaction, so
// the author cannot vanish between the check and the write.
func (r *postgresRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	var created book.Book

	err := r.db.ExecuteInTransaction(ctx, nil, func(tx pgx.Tx) error {
		var authorName string
		err := tx.QueryRow(ctx, `SELECT name FROM authors WHERE id = $1`, b.AuthorID).Scan(&authorName)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return book.ErrAuthorNotFound
			}
			return fmt.Errorf("failed to look up author: %w", err)
		}

		query := `
            INSERT INTO books (title, description, published_date, author_id)
            VALUES ($1, $2, $3, $4)
            RETURNING id, title, description, published_date, author_id, created_at, updated_at
        `
		err = tx.QueryRow(ctx, query, b.Title, b.Description, b.PublishedDate, b.AuthorID).Scan(
			&created.ID,
			&created.Title,
			&created.Description,
			&created.PublishedDate,
			&created.AuthorID,
			&created.CreatedAt,
			&created.UpdatedAt,
		)
		if err != nil {
			return mapAuthorFKError(err, "failed to create book")
		}

		created.AuthorName = &authorName
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// Update re-validates the (possibly new) author reference and applies the
// full-replace update in one transaction.
func (r *postgresRepository) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	var updated book.Book

	err := r.db.ExecuteInTransaction(ctx, nil, func(tx pgx.Tx) error {
		var authorName string
		err := tx.QueryRow(ctx, `SELECT name FROM authors WHERE id = $1`, b.AuthorID).Scan(&authorName)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return book.ErrAuthorNotFound
			}
			return fmt.Errorf("failed to look up author: %w", err)
		}

		query := `
            UPDATE books
            SET title = $1, description = $2, published_date = $3, author_id = $4, updated_at = NOW()
            WHERE id = $5
            RETURNING id, title, description, published_date, author_id, created_at, updated_at
        `
		err = tx.QueryRow(ctx, query, b.Title, b.Description, b.PublishedDate, b.AuthorID, b.ID).Scan(
			&updated.ID,
			&updated.Title,
			&updated.Description,
			&updated.PublishedDate,
			&updated.AuthorID,
			&updated.CreatedAt,
			&updated.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return book.ErrBookNotFound
			}
			return mapAuthorFKError(err, "failed to update book")
		}

		updated.AuthorName = &authorName
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) AuthorExists(ctx context.Context, authorID int64) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, authorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}

func mapAuthorFKError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return book.ErrAuthorNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
