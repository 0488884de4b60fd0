package dberrors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn" // Import pgconn for PgError
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

// PostgreSQL error codes the repositories care about
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	CheckViolation      = "23514"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	// Check if the error is a PgError, if the code is unique_violation (23505),
	// and if the constraint name matches the provided one.
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation && pgErr.ConstraintName == constraintName
}

// Translate maps driver errors onto application errors. notFound is returned for
// pgx.ErrNoRows; constraint violations become conflicts or validation failures.
// Anything else is returned unchanged.
func Translate(err, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case UniqueViolation:
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, pgErr.ConstraintName)
	case ForeignKeyViolation:
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, pgErr.ConstraintName)
	case CheckViolation:
		return fmt.Errorf("%w: %s", apperrors.ErrValidationFailed, pgErr.ConstraintName)
	}
	return err
}
