package querybuilder

import "strings"

// Stage is one composable step of a list query. The same filter stages are
// applied to the record query and to its COUNT(*) twin.
type Stage func(*SelectBuilder)

func (b *SelectBuilder) Apply(stages ...Stage) *SelectBuilder {
	for _, stage := range stages {
		if stage != nil {
			stage(b)
		}
	}
	return b
}

// Filter adds the non-nil conditions to the WHERE clause.
func Filter(conditions ...Condition) Stage {
	return func(b *SelectBuilder) {
		for _, c := range conditions {
			if c != nil {
				b.where = append(b.where, c)
			}
		}
	}
}

// SortBy orders by the column mapped to key in allowed. Unknown keys fall
// back to the fallback key; tiebreak columns keep paging stable.
func SortBy(allowed map[string]string, key string, desc bool, fallback string, tiebreak ...string) Stage {
	return func(b *SelectBuilder) {
		column, ok := allowed[strings.TrimSpace(key)]
		if !ok {
			column, ok = allowed[fallback]
		}
		if !ok {
			return
		}
		dir := " ASC"
		if desc {
			dir = " DESC"
		}
		b.orderBy = append(b.orderBy, column+dir+nullsOrder(desc))
		b.orderBy = append(b.orderBy, tiebreak...)
	}
}

// Paginate applies LIMIT/OFFSET for a 1-based page. A non-positive limit
// disables paging.
func Paginate(page, limit int) Stage {
	return func(b *SelectBuilder) {
		if limit <= 0 {
			return
		}
		if page < 1 {
			page = 1
		}
		b.limit = limit
		b.offset = (page - 1) * limit
	}
}

func nullsOrder(desc bool) string {
	if desc {
		return " NULLS LAST"
	}
	return " NULLS FIRST"
}
