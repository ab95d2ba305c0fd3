package utils

import (
	"context"
	"errors"

	"contacts-api/internal/interfaces"

	"github.com/jackc/pgx/v5"
)

// WithTransaction runs fn inside a new transaction on pool.
// The transaction is committed when fn returns nil and rolled back when fn fails or panics,
// so the connection is released on every exit path.
func WithTransaction(ctx context.Context, pool interfaces.PgxPoolIface, fn func(tx pgx.Tx) error) (err error) {
	LogMessageWithFields(ctx, "debug", "Beginning transaction...")

	tx, err := pool.Begin(ctx)
	if err != nil {
		LogMessageWithFieldsAndError(ctx, "error", "Error beginning transaction", err)
		return err
	}

	finished := false
	defer func() {
		if finished {
			return
		}
		LogMessageWithFields(ctx, "debug", "Rolling back transaction...")
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			LogMessageWithFieldsAndError(ctx, "error", "Error rolling back transaction", rbErr)
		}
		if p := recover(); p != nil {
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	LogMessageWithFields(ctx, "debug", "Committing transaction...")
	// A failed commit already closes the transaction.
	finished = true
	if err = tx.Commit(ctx); err != nil {
		LogMessageWithFieldsAndError(ctx, "error", "Error committing transaction", err)
		return err
	}

	LogMessageWithFields(ctx, "debug", "Transaction committed")
	return nil
}
