package postgresql

import (
	"context"
	"fmt"

	"github.com/clocklabs/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// WithTransaction executes fn inside a database transaction at the default
// isolation level.
func WithTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	return withTx(ctx, db, pgx.TxOptions{}, fn)
}

// WithSerializableTransaction executes fn at serializable isolation. Commit
// errors are returned unwrapped-compatible so callers can detect the
// store's serialization-failure signal and retry the whole unit.
func WithSerializableTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	return withTx(ctx, db, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
}

func withTx(ctx context.Context, db *database.DB, opts pgx.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				fmt.Printf("rollback error during panic recovery: %v\n", rbErr)
			}
			panic(p)
		}
	}()

	// Execute function with the transaction in context
	if err := fn(database.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetQuerier returns either transaction or pool
// Used in repositories to support both transactional and non-transactional operations
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}
