package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"github.com/draftforge/draftforge-api/internal/config"
)

// migrationsDir is the location of goose SQL migration files, relative to
// the project root.
const migrationsDir = "internal/platform/postgres/migrations"

// runMigrations executes a goose migration command against the configured
// database and exits. Supported commands: up, down, status, version.
func runMigrations(cfg *config.Config, command string) error {
	// Correlate all migration logs so the whole operation is traceable
	correlationID := uuid.New().String()
	migrationLogger := slog.Default().With(
		"correlation_id", correlationID,
		"component", "migrations",
		"command", command,
	)

	startTime := time.Now()
	migrationLogger.Info("Starting migration operation")

	if cfg.Database.URL == "" {
		migrationLogger.Error("Database URL is empty",
			"resolution", "check DRAFTFORGE_DATABASE_URL or config file")
		return fmt.Errorf("database URL is empty: check your configuration")
	}

	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			migrationLogger.Error("Failed to close database connection", "error", cerr)
		}
	}()

	switch command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	case "version":
		err = goose.Version(db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}

	if err != nil {
		migrationLogger.Error("Migration operation failed",
			"error", err,
			"duration", time.Since(startTime).String())
		return fmt.Errorf("goose %s failed: %w", command, err)
	}

	migrationLogger.Info("Migration operation completed",
		"duration", time.Since(startTime).String())
	return nil
}

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}
