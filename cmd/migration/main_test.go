package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"

	"github.com/riskibarqy/footmate/internal/platform/logging"
)

func TestRunRejectsBadInvocations(t *testing.T) {
	logger := logging.NewNop()

	if err := run(logger, nil); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}

	t.Setenv("DB_URL", "")
	if err := run(logger, []string{"up"}); err == nil || errors.Is(err, errUsage) {
		t.Fatalf("expected missing DB_URL error, got %v", err)
	}

	t.Setenv("DB_URL", "postgres://u:p@localhost:1/footmate")
	if err := run(logger, []string{"sideways"}); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error for unknown command, got %v", err)
	}
}

func TestIgnoreNoChange(t *testing.T) {
	if err := ignoreNoChange(migrate.ErrNoChange); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	boom := errors.New("boom")
	if err := ignoreNoChange(boom); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestMigrationsDirPrefersEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MIGRATIONS_DIR", dir)

	got, err := migrationsDir()
	if err != nil {
		t.Fatalf("migrationsDir: %v", err)
	}
	want, _ := filepath.Abs(dir)
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	t.Setenv("MIGRATIONS_DIR", filepath.Join(dir, "missing"))
	if _, err := os.Stat("./db/migrations"); os.IsNotExist(err) {
		if _, err := migrationsDir(); err == nil {
			t.Fatal("expected error when no directory exists")
		}
	}
}
