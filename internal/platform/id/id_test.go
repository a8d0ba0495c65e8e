package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewUUIDGenerator(t *testing.T) {
	gen := NewUUIDGenerator()
	seen := make(map[string]struct{}, 64)
	for i := 0; i < 64; i++ {
		raw, err := gen.NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		parsed, err := uuid.Parse(raw)
		if err != nil || parsed.Version() != 4 {
			t.Fatalf("expected a v4 uuid, got %q (%v)", raw, err)
		}
		if _, dup := seen[raw]; dup {
			t.Fatalf("duplicate id %q", raw)
		}
		seen[raw] = struct{}{}
	}
}

func TestFunc(t *testing.T) {
	var gen Generator = Func(func() (string, error) { return "fixed", nil })
	if got, _ := gen.NewID(); got != "fixed" {
		t.Fatalf("got %q", got)
	}
}
