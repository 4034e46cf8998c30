package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/draftforge/draftforge-api/internal/ciutil"
)

var (
	migrateOnce sync.Once
	migrateErr  error
)

// NewTestDB opens a connection to the configured test database and ensures
// migrations have been applied. The test is skipped when no test database
// URL is set. The connection is closed automatically when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := ciutil.GetTestDatabaseURL(nil)
	if dbURL == "" {
		t.Skipf("skipping: set %s to run database integration tests", ciutil.EnvTestDBURL)
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("failed to ping test database at %s: %v", ciutil.MaskSensitiveValue(dbURL), err)
	}

	migrateOnce.Do(func() {
		migrateErr = applyMigrations(db)
	})
	if migrateErr != nil {
		t.Fatalf("failed to apply migrations: %v", migrateErr)
	}

	return db
}

// applyMigrations runs all goose migrations against the test database.
func applyMigrations(db *sql.DB) error {
	root, err := ciutil.FindProjectRoot()
	if err != nil {
		return fmt.Errorf("locating project root: %w", err)
	}

	dir := filepath.Join(root, "internal", "platform", "postgres", "migrations")

	goose.SetLogger(goose.NopLogger())
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// WithTx runs the provided function within a database transaction that is
// always rolled back, ensuring test isolation. Tests can make database
// modifications without persisting them, enabling parallel execution.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
