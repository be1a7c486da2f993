package database

import (
	"context"
)

// Row helpers for tables keyed by an integer "id" column. They run under the
// store's default query timeout.

func byID[T any](db *DB, id int64) *QueryBuilder[T] {
	return Query[T](db).Where("id", id).Timeout(db.QueryTimeout)
}

// FindByID returns nil without an error when no row has the id.
func FindByID[T any](db *DB, ctx context.Context, id int64) (*T, error) {
	return byID[T](db, id).First(ctx)
}

// Create inserts row and fills its generated id.
func Create[T any](db *DB, ctx context.Context, row *T) (*T, error) {
	return Query[T](db).Timeout(db.QueryTimeout).Insert(ctx, row)
}

// UpdateByID reports whether a row with the id existed. A row whose columns
// already hold the new values still counts.
func UpdateByID[T any](db *DB, ctx context.Context, id int64, columns map[string]any) (bool, error) {
	n, err := byID[T](db, id).Update(ctx, columns)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func DeleteByID[T any](db *DB, ctx context.Context, id int64) (bool, error) {
	n, err := byID[T](db, id).Delete(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
