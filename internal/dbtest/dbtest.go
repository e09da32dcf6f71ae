// Package dbtest opens a migrated PostgreSQL database for integration tests.
// Tests are skipped unless SCRIBE_TEST_DSN holds a postgres:// URL.
package dbtest

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/JaimeStill/scribe/migrations"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// EnvDSN names the variable holding the test database URL.
const EnvDSN = "SCRIBE_TEST_DSN"

var tables = []string{
	"diagnostic_checkpoints",
	"diagnostic_stages",
	"diagnostic_runs",
	"history",
	"context_documents",
	"agents",
}

// Open migrates the test database to the latest version, truncates every
// table, and returns a connection closed when the test ends.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s not set", EnvDSN)
	}

	m, err := migrations.New(dsn)
	if err != nil {
		t.Fatalf("migrator: %v", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("migrate up: %v", err)
	}
	m.Close()

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	for _, table := range tables {
		if _, err := db.Exec("TRUNCATE " + table + " CASCADE"); err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}

	return db
}

// Logger returns a logger that discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
