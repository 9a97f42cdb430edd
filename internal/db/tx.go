package db

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTransaction runs fn inside a transaction and commits it when fn
// returns nil. Any error from fn rolls the transaction back and is
// returned unchanged so callers can classify it with errors.Is.
func WithTransaction(ctx context.Context, database *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
