// Package sqlxrepos implements the domain repositories on Postgres via sqlx.
package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Wrap attaches sqlx helpers to an open *sql.DB.
func Wrap(db *sql.DB) *sqlx.DB {
	return sqlx.NewDb(db, "postgres")
}

// isSerializationFailure reports whether a transaction lost a concurrency
// race and is worth retrying (serialization_failure or deadlock_detected).
func isSerializationFailure(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

// isUniqueViolation reports whether an insert hit a unique constraint.
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}

func inTx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
