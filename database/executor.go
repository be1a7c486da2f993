package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// All executes the query and returns all matching records with automatic retry
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	data := []T{}
	err := WithRetry(ctx, func() error {
		data = data[:0] // Reset on retry
		return q.buildBunQuery().Scan(ctx, &data)
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// First executes the query and returns the first matching record, or nil
// when nothing matches
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var data T
	err := WithRetry(ctx, func() error {
		return q.buildBunQuery().Limit(1).Scan(ctx, &data)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return &data, nil
}

// Count executes the query and returns the count of matching records with automatic retry
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var count int
	err := WithRetry(ctx, func() error {
		var err error
		count, err = q.buildBunQuery().Count(ctx)
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Insert inserts a new record, filling its generated primary key
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		_, err := q.db.NewInsert().Model(data).Exec(ctx)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update sets the given columns on every matching row and returns the number
// of rows changed
func (q *QueryBuilder[T]) Update(ctx context.Context, columns map[string]any) (int, error) {
	start := time.Now()
	if len(columns) == 0 {
		return 0, fmt.Errorf("update requires at least one column")
	}
	if len(q.wheres) == 0 {
		return 0, fmt.Errorf("update requires at least one condition")
	}

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var rowsAffected int64
	err := WithRetry(ctx, func() error {
		query := q.db.NewUpdate().Model((*T)(nil))
		for column, value := range columns {
			query = query.Set("? = ?", bun.Ident(column), value)
		}
		query = query.ApplyQueryBuilder(q.applyWheres)

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// Delete deletes records matching the query with automatic retry
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	start := time.Now()
	if len(q.wheres) == 0 {
		return 0, fmt.Errorf("delete requires at least one condition")
	}

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var rowsAffected int64
	err := WithRetry(ctx, func() error {
		query := q.db.NewDelete().Model((*T)(nil))
		query = query.ApplyQueryBuilder(q.applyWheres)

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// buildBunQuery renders the builder state as a bun select over T
func (q *QueryBuilder[T]) buildBunQuery() *bun.SelectQuery {
	query := q.db.NewSelect().Model((*T)(nil))
	for _, col := range q.columns {
		query = query.ColumnExpr(col)
	}
	for _, join := range q.joins {
		query = query.Join(join.String())
	}
	query = query.ApplyQueryBuilder(q.applyWheres)
	for _, order := range q.orders {
		query = query.OrderExpr(order)
	}
	return query
}

// applyWheres applies the WHERE conditions to any bun query type
func (q *QueryBuilder[T]) applyWheres(qb bun.QueryBuilder) bun.QueryBuilder {
	for _, where := range q.wheres {
		qb = qb.Where(fmt.Sprintf("%s %s ?", where.column, where.operator), where.value)
	}
	return qb
}

func (q *QueryBuilder[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}
