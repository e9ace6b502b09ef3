package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog/internal/common"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// errNoRows reports a write that matched nothing, so it maps to NotFound like a failed lookup.
var errNoRows = pgx.ErrNoRows

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateLockNotAvailable    = "55P03"
	sqlStateSerializationFailed = "40001"
	sqlStateDeadlockDetected    = "40P01"
	sqlStateStringTooLong       = "22001"
)

// mapError converts driver errors into the catalog error taxonomy.
// entity and key describe the row a NotFound refers to.
func mapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}
	if _, ok := common.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return common.NotFound(entity, key)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateUniqueViolation:
			return common.Conflict(fieldFromConstraint(pgErr.ConstraintName))
		case sqlStateLockNotAvailable, sqlStateSerializationFailed, sqlStateDeadlockDetected:
			return common.Busy(err)
		case sqlStateStringTooLong:
			field := pgErr.ColumnName
			if field == "" {
				field = "value"
			}
			return common.Invalid(field, "is too long")
		}
	}
	return fmt.Errorf("database: %w", err)
}

// fieldFromConstraint turns a default postgres constraint name such as
// "categories_slug_key" into the column name "slug".
func fieldFromConstraint(name string) string {
	name = strings.TrimSuffix(name, "_key")
	if i := strings.Index(name, "_"); i >= 0 {
		return name[i+1:]
	}
	if name == "" {
		return "value"
	}
	return name
}
