package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// writer accumulates statement text and its positional arguments. Every
// value is bound through bind so the $n numbering stays in step with args.
type writer struct {
	sb   strings.Builder
	args []any
}

func (w *writer) sql(parts ...string) {
	for _, p := range parts {
		w.sb.WriteString(p)
	}
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.sb.WriteString("$")
	w.sb.WriteString(strconv.Itoa(len(w.args)))
}

// expr copies a fragment, binding one value per '?'. A '?' beyond the
// supplied values is written literally.
func (w *writer) expr(fragment string, values []any) {
	if len(values) == 0 {
		w.sb.WriteString(fragment)
		return
	}
	next := 0
	for i := 0; i < len(fragment); i++ {
		if fragment[i] == '?' && next < len(values) {
			w.bind(values[next])
			next++
			continue
		}
		w.sb.WriteByte(fragment[i])
	}
}

func (w *writer) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.sql(" WHERE ")
		} else {
			w.sql(" AND ")
		}
		c.render(w)
	}
}

func (w *writer) result() (string, []any, error) {
	return w.sb.String(), w.args, nil
}

// Condition is one predicate of a WHERE clause; conditions are ANDed.
type Condition interface {
	render(w *writer)
}

type comparison struct {
	column string
	op     string
	value  any
}

func (c comparison) render(w *writer) {
	w.sql(c.column, " ", c.op, " ")
	w.bind(c.value)
}

func Eq(column string, value any) Condition {
	return comparison{column: column, op: "=", value: value}
}

// Lt renders column < value.
func Lt(column string, value any) Condition {
	return comparison{column: column, op: "<", value: value}
}

// Gte renders column >= value.
func Gte(column string, value any) Condition {
	return comparison{column: column, op: ">=", value: value}
}

type anyOf struct {
	column string
	array  any
}

func (c anyOf) render(w *writer) {
	w.sql(c.column, " = ANY(")
	w.bind(c.array)
	w.sql(")")
}

// Any renders column = ANY($n). array is bound as a single parameter, so
// callers pass a driver array value such as pq.Array(ids).
func Any(column string, array any) Condition {
	return anyOf{column: column, array: array}
}

type rawExpr struct {
	fragment string
	values   []any
}

func (c rawExpr) render(w *writer) {
	w.expr(c.fragment, c.values)
}

// Expr embeds a hand-written predicate using '?' for its values.
func Expr(expr string, args ...any) Condition {
	return rawExpr{fragment: expr, values: args}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var w writer
	w.sql("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.sql(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.sql(" LIMIT ", strconv.Itoa(b.limit))
	}
	return w.result()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values appends one row; call it once per row for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix is appended verbatim, typically an ON CONFLICT or RETURNING clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert values are required")
	}

	w := writer{args: make([]any, 0, len(b.rows)*len(b.columns))}
	w.sql("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for r, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", r, len(row), len(b.columns))
		}
		if r > 0 {
			w.sql(", ")
		}
		w.sql("(")
		for c, value := range row {
			if c > 0 {
				w.sql(", ")
			}
			w.bind(value)
		}
		w.sql(")")
	}
	if b.suffix != "" {
		w.sql(" ", b.suffix)
	}
	return w.result()
}

type assignment struct {
	column string
	value  Condition
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: boundValue{value}})
	return b
}

// SetExpr assigns a SQL expression such as NOW(), with '?' for values.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: rawExpr{fragment: expr, values: args}})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var w writer
	w.sql("UPDATE ", b.table, " SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.sql(", ")
		}
		w.sql(s.column, " = ")
		s.value.render(&w)
	}
	w.where(b.where)
	return w.result()
}

type boundValue struct{ value any }

func (v boundValue) render(w *writer) { w.bind(v.value) }

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses an unconditional delete.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete requires at least one condition")
	}

	var w writer
	w.sql("DELETE FROM ", b.table)
	w.where(b.where)
	return w.result()
}
