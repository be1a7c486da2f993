package database

import (
	"fmt"
	"strings"
	"time"
)

// QueryBuilder assembles a query over the bun model T. Column names are
// interpolated as written, values are always bound.
type QueryBuilder[T any] struct {
	db *DB

	columns []string
	joins   []*joinClause
	wheres  []whereClause
	orders  []string

	timeout time.Duration
}

type joinClause struct {
	table string
	alias string
	on    []string
}

type whereClause struct {
	column   string
	operator string
	value    any
}

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

// JoinBuilder collects the ON conditions of one inner join.
type JoinBuilder[T any] struct {
	parent *QueryBuilder[T]
	clause *joinClause
}

// Query creates a new QueryBuilder instance
func Query[T any](db *DB) *QueryBuilder[T] {
	return &QueryBuilder[T]{db: db}
}

// Select replaces the model's column list with the given expressions, e.g.
// "p.*" and "s.owner AS seller".
func (q *QueryBuilder[T]) Select(columns ...string) *QueryBuilder[T] {
	q.columns = append(q.columns, columns...)
	return q
}

// Join starts an INNER JOIN on table under alias.
func (q *QueryBuilder[T]) Join(table, alias string) *JoinBuilder[T] {
	return &JoinBuilder[T]{parent: q, clause: &joinClause{table: table, alias: alias}}
}

// Where adds a simple WHERE condition (column = value)
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	return q.WhereOp(column, "=", value)
}

// WhereOp adds a WHERE condition with a custom operator
func (q *QueryBuilder[T]) WhereOp(column, operator string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{column: column, operator: operator, value: value})
	return q
}

// OrderBy adds an ORDER BY clause
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, column+" "+string(direction))
	return q
}

// Newest orders by creation time, newest first, with the id as tie breaker
// for rows created within the same clock tick.
func (q *QueryBuilder[T]) Newest(alias string) *QueryBuilder[T] {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	return q.OrderBy(prefix+"created_at", DESC).OrderBy(prefix+"id", DESC)
}

// Timeout bounds every statement the builder executes. Zero means none.
func (q *QueryBuilder[T]) Timeout(duration time.Duration) *QueryBuilder[T] {
	q.timeout = duration
	return q
}

// On adds a column comparison to the join, ANDed with earlier ones.
func (j *JoinBuilder[T]) On(left, operator, right string) *JoinBuilder[T] {
	j.clause.on = append(j.clause.on, fmt.Sprintf("%s %s %s", left, operator, right))
	return j
}

// End completes the join builder and returns to the query builder
func (j *JoinBuilder[T]) End() *QueryBuilder[T] {
	j.parent.joins = append(j.parent.joins, j.clause)
	return j.parent
}

func (j *joinClause) String() string {
	var sb strings.Builder
	sb.WriteString("JOIN ")
	sb.WriteString(j.table)
	if j.alias != "" {
		sb.WriteString(" AS ")
		sb.WriteString(j.alias)
	}
	if len(j.on) > 0 {
		sb.WriteString(" ON ")
		sb.WriteString(strings.Join(j.on, " AND "))
	}
	return sb.String()
}
