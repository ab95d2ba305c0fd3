// Package services implements the auth flows, the access gate and the contact and user operations.
// Every operation runs its SQL inside one transaction and returns catalogue errors from schemas.
package services

import (
	"context"
	"errors"

	"contacts-api/internal/interfaces"
	"contacts-api/internal/schemas"
	"contacts-api/internal/utils"

	"github.com/jackc/pgx/v5"
)

// inTransaction runs fn in a transaction and turns every error that is not from the catalogue into DatabaseError.
func inTransaction(ctx context.Context, pool interfaces.PgxPoolIface, fn func(tx pgx.Tx) error) error {
	err := utils.WithTransaction(ctx, pool, fn)
	if err == nil {
		return nil
	}

	var customErr *schemas.CustomError
	if errors.As(err, &customErr) {
		return customErr
	}

	utils.LogMessageWithFieldsAndError(ctx, "error", "Database operation failed", err)
	return schemas.DatabaseError
}
