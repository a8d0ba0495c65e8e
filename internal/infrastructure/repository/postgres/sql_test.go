package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get login: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to match")
	}
	if isNotFound(fakeErr("pq: relation login_details does not exist")) {
		t.Fatalf("expected unrelated error not to match")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: "ux_report_cards_draft_pair"}

	t.Run("matches named constraint", func(t *testing.T) {
		if !isUniqueViolation(fmt.Errorf("insert: %w", dup), "ux_report_cards_draft_pair") {
			t.Fatalf("expected true for matching constraint")
		}
	})

	t.Run("matches any when no names given", func(t *testing.T) {
		if !isUniqueViolation(dup) {
			t.Fatalf("expected true without constraint filter")
		}
	})

	t.Run("ignores other constraint", func(t *testing.T) {
		if isUniqueViolation(dup, "ux_foot_players_live_pair") {
			t.Fatalf("expected false for other constraint")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		fk := &pq.Error{Code: "23503", Constraint: "ux_report_cards_draft_pair"}
		if isUniqueViolation(fk, "ux_report_cards_draft_pair") {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores non pq errors", func(t *testing.T) {
		if isUniqueViolation(fakeErr("duplicate key value")) {
			t.Fatalf("expected false for plain error")
		}
	})
}

func TestNullString(t *testing.T) {
	if nullString("").Valid {
		t.Fatalf("expected empty string to be null")
	}
	if got := nullString("tok"); !got.Valid || got.String != "tok" {
		t.Fatalf("unexpected value: %+v", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
