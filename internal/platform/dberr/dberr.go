// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr translates low-level pgx and SQLite errors into
// [apperr.AppError] values.
package dberr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
)

// Wrap classifies a database error for resource, hiding driver details from
// the client. Missing rows become NOT_FOUND, constraint violations become
// CONFLICT or VALIDATION_ERROR, and anything else is INTERNAL_ERROR.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(fmt.Sprintf("%s already exists", resource))
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError(fmt.Sprintf("%s violates constraint %s", resource, pgError.ConstraintName))
		}
	}

	var liteError *sqlite.Error
	if errors.As(err, &liteError) && liteError.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		switch liteError.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return apperr.Conflict(fmt.Sprintf("%s already exists", resource))
		default:
			return apperr.ValidationError(fmt.Sprintf("%s violates a constraint", resource))
		}
	}

	return apperr.Internal(fmt.Errorf("database: failed to %s %s: %w", action, resource, err))
}
