package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// IsConflict reports whether err is a unique constraint violation.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsNotFound reports whether err means no rows were found.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// WrapQueryError wraps a failed query error with the query text and, for server
// errors, the PostgreSQL diagnostics as errx details.
func WrapQueryError(err error, query fmt.Stringer) error {
	if err == nil {
		return nil
	}
	return errx.Wrap(err, errx.WithDetails(queryErrorDetails(err, query)))
}

func queryErrorDetails(err error, query fmt.Stringer) errx.D {
	details := make(errx.D)
	if q := safeQueryString(query); q != "" {
		details["query"] = q
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return details
	}

	details["pg.code"] = pgErr.Code
	details["pg.message"] = pgErr.Message
	details["pg.detail"] = pgErr.Detail
	details["pg.table"] = pgErr.TableName
	details["pg.constraint"] = pgErr.ConstraintName
	return details
}

// safeQueryString recovers from query types whose String panics on incomplete state.
func safeQueryString(query fmt.Stringer) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()
	if query == nil {
		return ""
	}
	return query.String()
}
