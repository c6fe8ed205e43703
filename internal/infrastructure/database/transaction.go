package database

import (
	"context"
	"errors"
	"fmt"

	pgx "github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// TxOptions maps to the PostgreSQL transaction parameters the repositories
// care about.
type TxOptions struct {
	IsoLevel   TxIsoLevel
	AccessMode TxAccessMode
}

// TxIsoLevel is the transaction isolation level.
type TxIsoLevel string

const (
	ReadCommitted  TxIsoLevel = "read committed"
	RepeatableRead TxIsoLevel = "repeatable read"
	Serializable   TxIsoLevel = "serializable"
)

// TxAccessMode marks a transaction read-only or read-write.
type TxAccessMode string

const (
	ReadWrite TxAccessMode = "read write"
	ReadOnly  TxAccessMode = "read only"
)

// BeginTx starts a transaction with the given options. The caller must
// commit or roll back; prefer ExecuteInTransaction which handles both.
func (db *PostgresDB) BeginTx(ctx context.Context, opts *TxOptions) (pgx.Tx, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	pgxOpts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite}
	if opts != nil {
		switch opts.IsoLevel {
		case RepeatableRead:
			pgxOpts.IsoLevel = pgx.RepeatableRead
		case Serializable:
			pgxOpts.IsoLevel = pgx.Serializable
		}
		if opts.AccessMode == ReadOnly {
			pgxOpts.AccessMode = pgx.ReadOnly
		}
	}

	tx, err := db.Pool.BeginTx(ctx, pgxOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// ExecuteInTransaction runs fn inside a single transaction, committing when
// fn returns nil and rolling back otherwise. The check-then-write sequences
// of the repositories go through here so a guard check and its write are
// never split across transactions.
func (db *PostgresDB) ExecuteInTransaction(ctx context.Context, opts *TxOptions, fn func(pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Error().Err(err).Msg("transaction rollback error")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}
