// Package sqlxrepos implements the repositories on PostgreSQL with sqlx and squirrel.
package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
)

const uniqueViolation = "23505"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// get runs q and scans its single row into dest.
// sql.ErrNoRows is mapped to notFound.
func get(ctx context.Context, exec core.DBExecutor, dest interface{}, q squirrel.Sqlizer, notFound error, msg string) error {
	query, args, err := q.ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if err = exec.GetContext(ctx, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound
		}
		return errors.Wrap(err, msg)
	}
	return nil
}

// list runs q and scans all rows into dest, a pointer to a slice.
func list(ctx context.Context, exec core.DBExecutor, dest interface{}, q squirrel.Sqlizer, msg string) error {
	query, args, err := q.ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	return errors.Wrap(exec.SelectContext(ctx, dest, query, args...), msg)
}

// execOne runs q and returns notFound when no row was affected.
func execOne(ctx context.Context, exec core.DBExecutor, q squirrel.Sqlizer, notFound error, msg string) error {
	query, args, err := q.ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	res, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, msg)
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, msg)
	}
	if cnt == 0 {
		return notFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
