// Package repositories holds the SQL of the user directory and the contact store.
// Repositories run on whatever DBTX they are given, usually the transaction opened by a service.
package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// ErrUniqueViolation is returned when an insert or update hits a unique constraint.
var ErrUniqueViolation = errors.New("unique constraint violated")

// UniqueViolationError names the constraint that was hit.
type UniqueViolationError struct {
	Constraint string
}

func (e *UniqueViolationError) Error() string {
	return "unique constraint violated: " + e.Constraint
}

func (e *UniqueViolationError) Unwrap() error {
	return ErrUniqueViolation
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &UniqueViolationError{Constraint: pgErr.ConstraintName}
	}
	return err
}
