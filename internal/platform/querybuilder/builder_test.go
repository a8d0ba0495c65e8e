package querybuilder

import (
	"reflect"
	"testing"
)

type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

func TestBuilders(t *testing.T) {
	tests := []struct {
		name      string
		builder   sqlBuilder
		wantQuery string
		wantArgs  []any
	}{
		{
			name: "select with filters",
			builder: Select("id", "first_name").
				From("player_details").
				Where(Eq("player_type", "amateur"), IsNull("deleted_at"), nil).
				OrderBy("created_at DESC").
				Limit(10).
				Offset(20),
			wantQuery: "SELECT id, first_name FROM player_details WHERE player_type = $1 AND deleted_at IS NULL ORDER BY created_at DESC LIMIT 10 OFFSET 20",
			wantArgs:  []any{"amateur"},
		},
		{
			name: "subquery args bind first",
			builder: Select("*").
				From("(SELECT id FROM report_cards WHERE sent_by = ?) AS rows", "club-1").
				Where(Eq("status", "draft")),
			wantQuery: "SELECT * FROM (SELECT id FROM report_cards WHERE sent_by = $1) AS rows WHERE status = $2",
			wantArgs:  []any{"club-1", "draft"},
		},
		{
			name: "or escapes like patterns",
			builder: Select("id").
				From("player_details").
				Where(Or(ILike("first_name", "ab_c"), ILike("last_name", "50%")), Or()),
			wantQuery: "SELECT id FROM player_details WHERE (first_name ILIKE $1 OR last_name ILIKE $2)",
			wantArgs:  []any{`%ab\_c%`, `%50\%%`},
		},
		{
			name: "in and ranges",
			builder: Select("count(*)").
				From("employment_contracts").
				Where(In("status", []any{"active", "pending"}), Gte("effective_date", "2024-01-01"), Lte("expiry_date", "2025-01-01")).
				GroupBy("status"),
			wantQuery: "SELECT count(*) FROM employment_contracts WHERE status IN ($1, $2) AND effective_date >= $3 AND expiry_date <= $4 GROUP BY status",
			wantArgs:  []any{"active", "pending", "2024-01-01", "2025-01-01"},
		},
		{
			name:      "empty in is false",
			builder:   Select("id").From("achievements").Where(In("id", nil)),
			wantQuery: "SELECT id FROM achievements WHERE 1=0",
		},
		{
			name: "multi row insert",
			builder: InsertInto("states").
				Columns("id", "name").
				Values("st-1", "Goa").
				Values("st-2", "Kerala").
				Suffix(" ON CONFLICT DO NOTHING "),
			wantQuery: "INSERT INTO states (id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING",
			wantArgs:  []any{"st-1", "Goa", "st-2", "Kerala"},
		},
		{
			name: "update with expressions",
			builder: Update("report_cards").
				Set("status", "published").
				SetExpr("published_at", "COALESCE(published_at, ?)", "2024-06-01").
				SetExpr("updated_at", "NOW()").
				Where(Eq("id", "rc-1"), Expr("sent_by = ? OR ? = 'admin'", "club-1", "club")).
				Suffix("RETURNING id"),
			wantQuery: "UPDATE report_cards SET status = $1, published_at = COALESCE(published_at, $2), updated_at = NOW() WHERE id = $3 AND sent_by = $4 OR $5 = 'admin' RETURNING id",
			wantArgs:  []any{"published", "2024-06-01", "rc-1", "club-1", "club"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			query, args, err := tc.builder.ToSQL()
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if query != tc.wantQuery {
				t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", tc.wantQuery, query)
			}
			if len(args) != len(tc.wantArgs) || (len(args) > 0 && !reflect.DeepEqual(args, tc.wantArgs)) {
				t.Fatalf("unexpected args: %+v", args)
			}
		})
	}
}

func TestBuildersRejectIncompleteStatements(t *testing.T) {
	builders := map[string]sqlBuilder{
		"select without columns": Select().From("t"),
		"select without table":   Select("id"),
		"insert without rows":    InsertInto("t").Columns("id"),
		"insert short row":       InsertInto("t").Columns("id", "name").Values("only-id"),
		"update without sets":    Update("t").Where(Eq("id", 1)),
	}
	for name, b := range builders {
		if _, _, err := b.ToSQL(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestExprKeepsSurplusPlaceholders(t *testing.T) {
	query, args, err := Select("id").From("t").Where(Expr("a = ? AND b = ?", 1)).ToSQL()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if query != "SELECT id FROM t WHERE a = $1 AND b = ?" || len(args) != 1 {
		t.Fatalf("unexpected result: %s %+v", query, args)
	}
}
