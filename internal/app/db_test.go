package app

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTraceableQuery(t *testing.T) {
	got := traceableQuery(" SELECT   *\nFROM report_cards \t WHERE sent_by = $1 ")
	if want := "SELECT * FROM report_cards WHERE sent_by = $1"; got != want {
		t.Fatalf("unexpected query: %q", got)
	}

	long := traceableQuery("SELECT " + strings.Repeat("é", 400))
	if !strings.HasSuffix(long, "...") || len(long) > maxTracedQueryLen+3 {
		t.Fatalf("expected truncated query, got len=%d", len(long))
	}
	if !utf8.ValidString(long) {
		t.Fatal("expected truncation on a rune boundary")
	}
}
