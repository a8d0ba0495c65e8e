package querybuilder

import (
	"errors"
	"testing"
	"time"
)

type AuditColumns struct {
	CreatedAt time.Time `db:"created_at,omitempty"`
}

type cardRow struct {
	AuditColumns
	ID      string  `db:"id"`
	Status  string  `db:"status"`
	Remarks *string `db:"remarks"`
	Scratch string  `db:"-"`
	hidden  string
}

func TestInsertModel(t *testing.T) {
	query, args, err := InsertModel("report_cards", cardRow{ID: "rc-1", Status: "draft", hidden: "x"}, "RETURNING id")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}

	wantQuery := "INSERT INTO report_cards (id, status, remarks) VALUES ($1, $2, $3) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "rc-1" || args[1] != "draft" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModelKeepsNonZeroOmitEmpty(t *testing.T) {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := InsertModel("report_cards", &cardRow{AuditColumns: AuditColumns{CreatedAt: at}, ID: "rc-2"}, "")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}

	wantQuery := "INSERT INTO report_cards (created_at, id, status, remarks) VALUES ($1, $2, $3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if args[0] != at {
		t.Fatalf("unexpected first arg: %+v", args[0])
	}
}

func TestInsertModelRejectsBadInput(t *testing.T) {
	var nilRow *cardRow
	if _, _, err := InsertModel("t", nilRow, ""); !errors.Is(err, errNilModel) {
		t.Fatalf("expected errNilModel, got %v", err)
	}
	if _, _, err := InsertModel("t", 42, ""); !errors.Is(err, errNotStruct) {
		t.Fatalf("expected errNotStruct, got %v", err)
	}
	if _, _, err := InsertModel("t", struct{ Name string }{"x"}, ""); !errors.Is(err, errNoDBColumns) {
		t.Fatalf("expected errNoDBColumns, got %v", err)
	}
}
