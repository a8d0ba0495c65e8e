// Package querybuilder renders Postgres statements with numbered
// placeholders. Fragments passed as raw SQL use '?' for their arguments and
// are renumbered in order of appearance.
package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// sqlWriter accumulates statement text and its bound arguments.
type sqlWriter struct {
	strings.Builder
	args []any
}

// bind appends v and writes its placeholder.
func (w *sqlWriter) bind(v any) {
	w.args = append(w.args, v)
	w.WriteByte('$')
	w.WriteString(strconv.Itoa(len(w.args)))
}

// raw writes fragment, binding each '?' to the next of fragArgs. Surplus
// question marks are written unchanged.
func (w *sqlWriter) raw(fragment string, fragArgs ...any) {
	for len(fragment) > 0 {
		i := strings.IndexByte(fragment, '?')
		if i < 0 || len(fragArgs) == 0 {
			w.WriteString(fragment)
			return
		}
		w.WriteString(fragment[:i])
		w.bind(fragArgs[0])
		fragArgs = fragArgs[1:]
		fragment = fragment[i+1:]
	}
}

func (w *sqlWriter) list(prefix string, items []string) {
	if len(items) == 0 {
		return
	}
	w.WriteString(prefix)
	w.WriteString(strings.Join(items, ", "))
}

func (w *sqlWriter) where(conds []Condition) {
	sep := " WHERE "
	for _, c := range conds {
		if c == nil {
			continue
		}
		w.WriteString(sep)
		c.render(w)
		sep = " AND "
	}
}

// Condition is one predicate of a WHERE clause. Nil conditions are skipped.
type Condition interface {
	render(w *sqlWriter)
}

type condFunc func(w *sqlWriter)

func (f condFunc) render(w *sqlWriter) { f(w) }

func compare(column, op string, value any) Condition {
	return condFunc(func(w *sqlWriter) {
		w.WriteString(column)
		w.WriteString(" " + op + " ")
		w.bind(value)
	})
}

func Eq(column string, value any) Condition  { return compare(column, "=", value) }
func Gte(column string, value any) Condition { return compare(column, ">=", value) }
func Lte(column string, value any) Condition { return compare(column, "<=", value) }

// ILike matches value as a case-insensitive substring of column. LIKE
// metacharacters in value match literally.
func ILike(column, value string) Condition {
	return compare(column, "ILIKE", "%"+likeEscaper.Replace(value)+"%")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func IsNull(column string) Condition {
	return condFunc(func(w *sqlWriter) { w.WriteString(column + " IS NULL") })
}

// In renders an always-false predicate for an empty set.
func In(column string, values []any) Condition {
	return condFunc(func(w *sqlWriter) {
		if len(values) == 0 {
			w.WriteString("1=0")
			return
		}
		w.WriteString(column + " IN (")
		for i, v := range values {
			if i > 0 {
				w.WriteString(", ")
			}
			w.bind(v)
		}
		w.WriteByte(')')
	})
}

// Expr is a raw predicate with '?' placeholders.
func Expr(expr string, args ...any) Condition {
	return condFunc(func(w *sqlWriter) { w.raw(expr, args...) })
}

// Or joins non-nil conditions with OR. It returns nil when nothing is left.
func Or(conds ...Condition) Condition {
	kept := make([]Condition, 0, len(conds))
	for _, c := range conds {
		if c != nil {
			kept = append(kept, c)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return condFunc(func(w *sqlWriter) {
		w.WriteByte('(')
		for i, c := range kept {
			if i > 0 {
				w.WriteString(" OR ")
			}
			c.render(w)
		}
		w.WriteByte(')')
	})
}

type SelectBuilder struct {
	columns  []string
	from     string
	fromArgs []any
	where    []Condition
	groupBy  []string
	orderBy  []string
	limit    int
	offset   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

// From sets the source relation. Args bind '?' placeholders, which lets a
// subquery act as the table.
func (b *SelectBuilder) From(table string, args ...any) *SelectBuilder {
	b.from, b.fromArgs = table, args
	return b
}

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) GroupBy(columns ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, columns...)
	return b
}

func (b *SelectBuilder) OrderBy(terms ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, terms...)
	return b
}

func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

func (b *SelectBuilder) Offset(n int) *SelectBuilder {
	b.offset = n
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, errors.New("querybuilder: select has no columns")
	case strings.TrimSpace(b.from) == "":
		return "", nil, errors.New("querybuilder: select has no table")
	}

	var w sqlWriter
	w.list("SELECT ", b.columns)
	w.WriteString(" FROM ")
	w.raw(b.from, b.fromArgs...)
	w.where(b.where)
	w.list(" GROUP BY ", b.groupBy)
	w.list(" ORDER BY ", b.orderBy)
	if b.limit > 0 {
		w.WriteString(" LIMIT " + strconv.Itoa(b.limit))
	}
	if b.offset > 0 {
		w.WriteString(" OFFSET " + strconv.Itoa(b.offset))
	}
	return w.String(), w.args, nil
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
	b.columns = columns
	return b
}

// Values adds one row. Call it again for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, values)
	return b
}

// Suffix appends raw SQL such as a RETURNING or ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("querybuilder: insert has no table")
	case len(b.columns) == 0:
		return "", nil, errors.New("querybuilder: insert has no columns")
	case len(b.rows) == 0:
		return "", nil, errors.New("querybuilder: insert has no rows")
	}

	var w sqlWriter
	w.WriteString("INSERT INTO " + b.table + " (")
	w.WriteString(strings.Join(b.columns, ", "))
	w.WriteString(") VALUES ")
	for r, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("querybuilder: insert row %d has %d values for %d columns", r, len(row), len(b.columns))
		}
		if r > 0 {
			w.WriteString(", ")
		}
		w.WriteByte('(')
		for i, v := range row {
			if i > 0 {
				w.WriteString(", ")
			}
			w.bind(v)
		}
		w.WriteByte(')')
	}
	if b.suffix != "" {
		w.WriteString(" " + b.suffix)
	}
	return w.String(), w.args, nil
}

type UpdateBuilder struct {
	table  string
	sets   []Condition
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, compare(column, "=", value))
	return b
}

// SetExpr assigns a raw SQL expression with '?' placeholders.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, condFunc(func(w *sqlWriter) {
		w.WriteString(column + " = ")
		w.raw(expr, args...)
	}))
	return b
}

func (b *UpdateBuilder) Where(conds ...Condition) *UpdateBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("querybuilder: update has no table")
	case len(b.sets) == 0:
		return "", nil, errors.New("querybuilder: update sets nothing")
	}

	var w sqlWriter
	w.WriteString("UPDATE " + b.table + " SET ")
	for i, set := range b.sets {
		if i > 0 {
			w.WriteString(", ")
		}
		set.render(&w)
	}
	w.where(b.where)
	if b.suffix != "" {
		w.WriteString(" " + b.suffix)
	}
	return w.String(), w.args, nil
}
