package lib

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Request errors
var (
	ErrValidation = errors.New("validation failed")
)

// Ledger errors
var (
	ErrUnknownToken   = errors.New("unknown token")
	ErrInvalidAddress = errors.New("invalid account address")
	ErrInvalidAmount  = errors.New("invalid token amount")
)

// Auth errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// NotFound wraps ErrNotFound with the missing entity, e.g. "product 7 not found".
func NotFound(entity string, id any) error {
	return fmt.Errorf("%s %v %w", entity, id, ErrNotFound)
}

// MapDBError translates driver errors into the sentinels handlers understand.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code { // SQLSTATE
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.Message)
		case "23503", "23514": // foreign_key_violation, check_violation
			return Invalid("row", pgErr.Message)
		case "P0002": // no_data_found
			return ErrNotFound
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %s", ErrConflict, liteErr.Error())
		case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
			return Invalid("row", liteErr.Error())
		}
	}
	return err
}
