package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bookshelf-api/internal/domains/author"
	"bookshelf-api/internal/infrastructure/database"
)

// postgresRepository implements author.Repository on top of the shared
// pgx connection pool.
type postgresRepository struct {
	db *database.PostgresDB
}

// NewPostgresRepository creates a new author repository instance.
func NewPostgresRepository(db *database.PostgresDB) author.Repository {
	return &postgresRepository{db: db}
}

const authorColumns = "id, name, bio, birthdate, created_at, updated_at"

func scanAuthor(row pgx.Row, a *author.Author) error {
	return row.Scan(
		&a.ID,
		&a.Name,
		&a.Bio,
		&a.Birthdate,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

// GetAll returns every author ordered by id (insertion order).
func (r *postgresRepository) GetAll(ctx context.Context) ([]author.Author, error) {
	query := fmt.Sprintf(`SELECT %s FROM authors ORDER BY id`, authorColumns)

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]author.Author, 0)
	for rows.Next() {
		var a author.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*author.Author, error) {
	query := fmt.Sprintf(`SELECT %s FROM authors WHERE id = $1`, authorColumns)

	var a author.Author
	err := scanAuthor(r.db.Pool.QueryRow(ctx, query, id), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := fmt.Sprintf(`
        INSERT INTO authors (name, bio, birthdate)
        VALUES ($1, $2, $3)
        RETURNING %s
    `, authorColumns)

	var created author.Author
	err := scanAuthor(r.db.Pool.QueryRow(ctx, query, a.Name, a.Bio, a.Birthdate), &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := fmt.Sprintf(`
        UPDATE authors
        SET name = $1, bio = $2, birthdate = $3, updated_at = NOW()
        WHERE id = $4
        RETURNING %s
    `, authorColumns)

	var updated author.Author
	err := scanAuthor(r.db.Pool.QueryRow(ctx, query, a.Name, a.Bio, a.Birthdate, a.ID), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	return &updated, nil
}

// Delete removes the author after checking for dependent books. Check and
// delete share one transaction so a book created concurrently cannot slip
// between them.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	return r.db.ExecuteInTransaction(ctx, nil, func(tx pgx.Tx) error {
		var bookCount int
		err := tx.QueryRow(ctx, `SELECT COUNT(1) FROM books WHERE author_id = $1`, id).Scan(&bookCount)
		if err != nil {
			return fmt.Errorf("failed to count books for author: %w", err)
		}
		if bookCount > 0 {
			return author.ErrAuthorHasBooks
		}

		tag, err := tx.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete author: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return author.ErrAuthorNotFound
		}
		return nil
	})
}

func (r *postgresRepository) CountBooks(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(1) FROM books WHERE author_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count books for author: %w", err)
	}
	return count, nil
}
