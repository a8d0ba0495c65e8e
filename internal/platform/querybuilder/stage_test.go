package querybuilder

import "testing"

var testSortColumns = map[string]string{
	"name":         "name",
	"published_at": "published_at",
}

func TestStagesShareFiltersBetweenListAndCount(t *testing.T) {
	filters := Filter(
		Eq("sent_by", "club-1"),
		ILikeAny("category", []string{"pro", " ", "amateur"}),
		nil,
	)

	listQuery, listArgs, err := Select("id", "name").
		From("report_rows").
		Apply(filters, SortBy(testSortColumns, "published_at", true, "name", "id ASC"), Paginate(3, 10)).
		ToSQL()
	if err != nil {
		t.Fatalf("build list query: %v", err)
	}
	wantList := "SELECT id, name FROM report_rows WHERE sent_by = $1 AND (category ILIKE $2 OR category ILIKE $3) ORDER BY published_at DESC NULLS LAST, id ASC LIMIT 10 OFFSET 20"
	if listQuery != wantList {
		t.Fatalf("unexpected list query:\nwant: %s\ngot:  %s", wantList, listQuery)
	}
	if len(listArgs) != 3 {
		t.Fatalf("unexpected list args: %+v", listArgs)
	}

	countQuery, countArgs, err := Select("COUNT(*)").From("report_rows").Apply(filters).ToSQL()
	if err != nil {
		t.Fatalf("build count query: %v", err)
	}
	wantCount := "SELECT COUNT(*) FROM report_rows WHERE sent_by = $1 AND (category ILIKE $2 OR category ILIKE $3)"
	if countQuery != wantCount {
		t.Fatalf("unexpected count query:\nwant: %s\ngot:  %s", wantCount, countQuery)
	}
	if len(countArgs) != 3 {
		t.Fatalf("unexpected count args: %+v", countArgs)
	}
}

func TestSortByFallsBackOnUnknownKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "known key", key: "name", want: "SELECT id FROM t ORDER BY name ASC NULLS FIRST"},
		{name: "unknown key", key: "password", want: "SELECT id FROM t ORDER BY published_at ASC NULLS FIRST"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			query, _, err := Select("id").From("t").Apply(SortBy(testSortColumns, tc.key, false, "published_at")).ToSQL()
			if err != nil {
				t.Fatalf("build query: %v", err)
			}
			if query != tc.want {
				t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", tc.want, query)
			}
		})
	}
}

func TestPaginateClampsPage(t *testing.T) {
	query, _, err := Select("id").From("t").Apply(Paginate(0, 5)).ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if query != "SELECT id FROM t LIMIT 5" {
		t.Fatalf("unexpected query: %s", query)
	}

	query, _, err = Select("id").From("t").Apply(Paginate(2, 0)).ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if query != "SELECT id FROM t" {
		t.Fatalf("unexpected query: %s", query)
	}
}
