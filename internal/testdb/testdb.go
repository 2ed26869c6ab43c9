// Package testdb provides helpers for tests that need a real postgres
// database.
//
// Tests using it are skipped when DATABASE_URL is not set. Each test can run
// in its own transaction, which is rolled back when the test completes, so
// tests may run in parallel without interfering with each other:
//
//	func TestSomething(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.Open(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        s := postgres.NewSessionStore(tx, nil)
//	        ...
//	    })
//	}
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/recite/internal/platform/postgres"
)

// URLEnvVars lists the variables consulted for the test database URL, in
// order of precedence.
var URLEnvVars = []string{"DATABASE_URL", "RECITE_DATABASE_URL"}

// DatabaseURL returns the test database URL, or "" when none is configured.
func DatabaseURL() string {
	for _, name := range URLEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkip reports whether database tests should be skipped.
func ShouldSkip() bool {
	return DatabaseURL() == ""
}

// Open connects to the test database, applies the migrations and closes the
// connection when the test ends. It skips t when no database is configured.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := DatabaseURL()
	if dbURL == "" {
		t.Skip("DATABASE_URL not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to open test database %s: %v", MaskURL(dbURL), err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close test database: %v", err)
		}
	})

	if err := postgres.Migrate(ctx, db, postgres.MigrateUp, nil); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// WithTx runs fn in a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// MaskURL hides the password of a database URL for logging.
func MaskURL(dbURL string) string {
	scheme, rest, ok := strings.Cut(dbURL, "://")
	if !ok {
		return dbURL
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return dbURL
	}
	user, _, hasPassword := strings.Cut(creds, ":")
	if !hasPassword {
		return dbURL
	}
	return scheme + "://" + user + ":****@" + host
}
