// Package postgres implements the generic data-access layer: one repository
// per entity over a shared PostgreSQL pool, with SQL assembled from the
// entity's schema descriptors.
package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	crm "github.com/smdydx/bidua-crm"
)

// DB is the narrow pool surface the repositories need. *pgxpool.Pool
// satisfies it, as do the pgxmock pools used in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// SQLSTATE class 23 covers every integrity constraint violation.
const (
	sqlstateIntegrityClass      = "23"
	sqlstateUniqueViolation     = "23505"
	sqlstateForeignKeyViolation = "23503"
)

// dbError folds a database failure into the typed taxonomy: constraint
// violations become integrity errors, everything else a storage error.
func dbError(entity, message string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, sqlstateIntegrityClass) {
		code := crm.ErrCodeIntegrityViolation
		switch pgErr.Code {
		case sqlstateUniqueViolation:
			code = crm.ErrCodeUniqueViolation
		case sqlstateForeignKeyViolation:
			code = crm.ErrCodeForeignKeyViolation
		}
		return crm.NewIntegrityError(entity, code, pgErr.Message, err)
	}
	return crm.NewStorageError(entity, message, err)
}
