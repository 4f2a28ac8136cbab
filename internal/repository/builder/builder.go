// Package builder is a small fluent SQL builder producing Postgres-style
// numbered placeholders. Conditions are written with "?" and rewritten to
// $1..$n at build time.
package builder

import (
	"fmt"
	"strings"
)

type kind int

const (
	kindSelect kind = iota
	kindInsert
	kindUpdate
	kindDelete
)

// SQLBuilder accumulates clauses for a single statement.
type SQLBuilder struct {
	kind      kind
	table     string
	columns   []string
	setCols   []string
	setArgs   []interface{}
	where     []string
	whereArgs []interface{}
	orderBy   []string
	returning []string
	limit     int
	offset    int
	hasValues bool
}

// New creates an empty builder.
func New() *SQLBuilder {
	return &SQLBuilder{}
}

// Select starts a SELECT of the given columns.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.kind = kindSelect
	b.columns = cols
	return b
}

// From names the table for a SELECT.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Insert starts an INSERT into table with the given columns.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.kind = kindInsert
	b.table = table
	b.columns = cols
	return b
}

// Values supplies the row for an INSERT; must match the Insert columns.
func (b *SQLBuilder) Values(vals ...interface{}) *SQLBuilder {
	b.setArgs = append(b.setArgs, vals...)
	b.hasValues = true
	return b
}

// Update starts an UPDATE of table.
func (b *SQLBuilder) Update(table string) *SQLBuilder {
	b.kind = kindUpdate
	b.table = table
	return b
}

// Set adds one column assignment to an UPDATE.
func (b *SQLBuilder) Set(col string, val interface{}) *SQLBuilder {
	b.setCols = append(b.setCols, col)
	b.setArgs = append(b.setArgs, val)
	return b
}

// Delete starts a DELETE from table.
func (b *SQLBuilder) Delete(table string) *SQLBuilder {
	b.kind = kindDelete
	b.table = table
	return b
}

// Where adds a condition; multiple calls are joined with AND.
func (b *SQLBuilder) Where(condition string, args ...interface{}) *SQLBuilder {
	b.where = append(b.where, condition)
	b.whereArgs = append(b.whereArgs, args...)
	return b
}

// OrderBy appends an ORDER BY term.
func (b *SQLBuilder) OrderBy(order string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order)
	return b
}

// Limit sets a LIMIT; zero means none.
func (b *SQLBuilder) Limit(n int) *SQLBuilder {
	b.limit = n
	return b
}

// Offset sets an OFFSET; zero means none.
func (b *SQLBuilder) Offset(n int) *SQLBuilder {
	b.offset = n
	return b
}

// Returning appends a RETURNING clause to an INSERT or UPDATE.
func (b *SQLBuilder) Returning(cols ...string) *SQLBuilder {
	b.returning = cols
	return b
}

// Build renders the statement and its ordered argument list.
func (b *SQLBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	args := make([]interface{}, 0, len(b.setArgs)+len(b.whereArgs))
	next := 1

	placeholder := func() string {
		p := fmt.Sprintf("$%d", next)
		next++
		return p
	}

	switch b.kind {
	case kindSelect:
		sb.WriteString("SELECT ")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
	case kindInsert:
		sb.WriteString("INSERT INTO ")
		sb.WriteString(b.table)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(") VALUES (")
		holders := make([]string, len(b.setArgs))
		for i := range b.setArgs {
			holders[i] = placeholder()
		}
		sb.WriteString(strings.Join(holders, ", "))
		sb.WriteString(")")
		args = append(args, b.setArgs...)
	case kindUpdate:
		sb.WriteString("UPDATE ")
		sb.WriteString(b.table)
		sb.WriteString(" SET ")
		assignments := make([]string, len(b.setCols))
		for i, col := range b.setCols {
			assignments[i] = col + " = " + placeholder()
		}
		sb.WriteString(strings.Join(assignments, ", "))
		args = append(args, b.setArgs...)
	case kindDelete:
		sb.WriteString("DELETE FROM ")
		sb.WriteString(b.table)
	}

	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		clause := strings.Join(b.where, " AND ")
		var rewritten strings.Builder
		for _, ch := range clause {
			if ch == '?' {
				rewritten.WriteString(placeholder())
			} else {
				rewritten.WriteRune(ch)
			}
		}
		sb.WriteString(rewritten.String())
		args = append(args, b.whereArgs...)
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", b.limit))
	}
	if b.offset > 0 {
		sb.WriteString(fmt.Sprintf(" OFFSET %d", b.offset))
	}
	if len(b.returning) > 0 {
		sb.WriteString(" RETURNING ")
		sb.WriteString(strings.Join(b.returning, ", "))
	}

	return sb.String(), args
}
