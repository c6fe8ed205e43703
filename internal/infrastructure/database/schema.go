package database

import (
	"context"
	"fmt"
)

// schema is the initial table layout. The books.author_id column carries a
// storage-level ON DELETE CASCADE, but the application layer guards author
// deletion itself so books are never removed as a side effect.
const schema = `
CREATE TABLE IF NOT EXISTS authors (
    id         BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    bio        TEXT,
    birthdate  DATE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS books (
    id             BIGSERIAL PRIMARY KEY,
    title          TEXT NOT NULL,
    description    TEXT,
    published_date DATE NOT NULL,
    author_id      BIGINT NOT NULL REFERENCES authors(id) ON DELETE CASCADE,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_books_author_id ON books(author_id);
`

// EnsureSchema creates the authors and books tables if they do not exist.
// Called once at startup after the pool connects.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
