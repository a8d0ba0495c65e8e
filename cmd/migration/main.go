// Command migration applies schema migrations and seeds reference data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/riskibarqy/footmate/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/footmate/internal/platform/logging"
)

var errUsage = errors.New("usage")

// migrationDirs are tried in order after MIGRATIONS_DIR.
var migrationDirs = []string{"./db/migrations", "/app/db/migrations"}

type command struct {
	usage string
	run   func(m *migrate.Migrate, args []string) error
}

var commands = map[string]command{
	"up": {usage: "up", run: func(m *migrate.Migrate, _ []string) error {
		return ignoreNoChange(m.Up())
	}},
	"down": {usage: "down [steps]", run: func(m *migrate.Migrate, args []string) error {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || n <= 0 {
				return fmt.Errorf("down steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}
		return ignoreNoChange(m.Steps(-steps))
	}},
	"goto": {usage: "goto <version>", run: func(m *migrate.Migrate, args []string) error {
		if len(args) == 0 {
			return errUsage
		}
		target, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid target version %q: %w", args[0], err)
		}
		return ignoreNoChange(m.Migrate(uint(target)))
	}},
	"force": {usage: "force <version>", run: func(m *migrate.Migrate, args []string) error {
		if len(args) == 0 {
			return errUsage
		}
		version, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || version < -1 {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.Force(version)
	}},
	"version": {usage: "version", run: func(m *migrate.Migrate, _ []string) error {
		version, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			fmt.Println("version: none\ndirty: false")
			return nil
		case err != nil:
			return err
		}
		fmt.Printf("version: %d\ndirty: %t\n", version, dirty)
		return nil
	}},
}

func main() {
	_ = godotenv.Load()
	logger := logging.NewJSON(logging.LevelInfo)

	err := run(logger, os.Args[1:])
	if errors.Is(err, errUsage) {
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("migration command failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(logger *logging.Logger, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	name := strings.ToLower(strings.TrimSpace(args[0]))

	rawURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if rawURL == "" {
		return errors.New("DB_URL is required")
	}
	disableBinary, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv("DB_DISABLE_PREPARED_BINARY_RESULT")))
	dsn := postgres.DSN(rawURL, disableBinary)

	if name == "seed" {
		if err := seed(dsn); err != nil {
			return fmt.Errorf("seed reference data: %w", err)
		}
		logger.Info("reference data seeded")
		return nil
	}

	cmd, ok := commands[name]
	if !ok {
		return errUsage
	}
	dir, err := migrationsDir()
	if err != nil {
		return err
	}
	source := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("open migrator: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("close migrator", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	if err := cmd.run(m, args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	logger.Info("migration command done", "command", name, "source", source)
	return nil
}

func seed(dsn string) error {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return postgres.BootstrapSeed(ctx, db)
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func migrationsDir() (string, error) {
	candidates := migrationDirs
	if env := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")); env != "" {
		candidates = append([]string{env}, candidates...)
	}
	for _, dir := range candidates {
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("no migrations directory among %v", candidates)
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <command> [args]\n\ncommands:\n", name)
	for _, key := range []string{"up", "down", "goto", "force", "version"} {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[key].usage)
	}
	fmt.Fprintln(os.Stderr, "  seed")
}
