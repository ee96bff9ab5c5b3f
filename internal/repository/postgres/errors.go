package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"taskvault/internal/domain"
)

// isPgDuplicateError checks if error is a unique constraint violation
func isPgDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}

// isPgNoRowsError checks if error is a "no rows" error
func isPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// translateUserConstraint maps a unique violation on the users table to
// the domain denial the pre-checks would have produced. Two requests
// racing to claim the same username or email both pre-check clean; the
// store's constraint is the final arbiter, and the loser must see the
// same answer as a failed pre-check.
func translateUserConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return domain.ErrUsernameTaken
	case strings.Contains(pgErr.ConstraintName, "email"):
		return domain.ErrEmailTaken
	default:
		return nil
	}
}

// translateFolderConstraint maps a unique violation on the folders table
// to the per-owner name-uniqueness denial. action is the operation being
// attempted ("create" or "update").
func translateFolderConstraint(err error, action string) error {
	if !isPgDuplicateError(err) {
		return nil
	}
	return domain.FolderNameTaken(action)
}
