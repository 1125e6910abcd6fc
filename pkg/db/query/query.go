// Package query builds immutable filter/sort/limit descriptors and applies
// them to a gorm statement in a single step. Pages describe what they want
// as a value; execution happens only in Find/Count.
package query

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Condition is one predicate of a descriptor.
type Condition struct {
	expr string
	vars []any
}

// Eq matches a column exactly.
func Eq(column string, value any) Condition {
	return Condition{expr: column + " = ?", vars: []any{value}}
}

// ILike matches a case-insensitive substring. Emitted as LOWER(col) LIKE so
// the same descriptor runs on postgres, mysql and sqlite.
func ILike(column, term string) Condition {
	return Condition{
		expr: "LOWER(" + column + ") LIKE ?",
		vars: []any{"%" + strings.ToLower(term) + "%"},
	}
}

// In matches set membership.
func In[T any](column string, values []T) Condition {
	return Condition{expr: column + " IN ?", vars: []any{values}}
}

// Gte matches column >= value.
func Gte(column string, value any) Condition {
	return Condition{expr: column + " >= ?", vars: []any{value}}
}

// Lte matches column <= value.
func Lte(column string, value any) Condition {
	return Condition{expr: column + " <= ?", vars: []any{value}}
}

// Or combines sub-conditions disjunctively.
func Or(conds ...Condition) Condition {
	exprs := make([]string, 0, len(conds))
	vars := make([]any, 0, len(conds))
	for _, c := range conds {
		exprs = append(exprs, c.expr)
		vars = append(vars, c.vars...)
	}
	return Condition{expr: "(" + strings.Join(exprs, " OR ") + ")", vars: vars}
}

// Query is an immutable descriptor for one table read.
type Query struct {
	Conditions []Condition
	Order      string
	Limit      int
}

// Where returns a copy of the query with the condition appended.
func (q Query) Where(c Condition) Query {
	conds := make([]Condition, 0, len(q.Conditions)+1)
	conds = append(conds, q.Conditions...)
	conds = append(conds, c)
	q.Conditions = conds
	return q
}

// Apply attaches every predicate, the ordering and the limit to stmt.
func (q Query) Apply(stmt *gorm.DB) *gorm.DB {
	for _, c := range q.Conditions {
		stmt = stmt.Where(c.expr, c.vars...)
	}
	if q.Order != "" {
		stmt = stmt.Order(q.Order)
	}
	if q.Limit > 0 {
		stmt = stmt.Limit(q.Limit)
	}
	return stmt
}

// Find executes the descriptor and returns the matching rows.
func Find[T any](ctx context.Context, db *gorm.DB, q Query) ([]T, error) {
	var rows []T
	stmt := q.Apply(db.WithContext(ctx).Model(new(T)))
	if err := stmt.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count executes the descriptor's predicates and returns the total row
// count, ignoring order and limit.
func Count[T any](ctx context.Context, db *gorm.DB, q Query) (int64, error) {
	var count int64
	stmt := db.WithContext(ctx).Model(new(T))
	for _, c := range q.Conditions {
		stmt = stmt.Where(c.expr, c.vars...)
	}
	if err := stmt.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
