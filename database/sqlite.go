package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/acuna/shelfwise/config"
	"github.com/acuna/shelfwise/version"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const latestSchemaFileName = "LATEST_SCHEMA.sql"

//go:embed migration
var migrationFS embed.FS

func NewDB() (*sql.DB, error) {
	if config.Opts.DSN == "" {
		return nil, errors.New("database path is required")
	}

	// Cascade deletes from user rows rely on foreign keys being enforced.
	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", config.Opts.DSN)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate applies the latest schema and records the running version.
// Every statement uses IF NOT EXISTS, so re-running is harmless.
func Migrate(ctx context.Context, db *sql.DB) error {
	if err := applyLatestSchema(ctx, db); err != nil {
		return errors.Wrap(err, "failed to apply latest schema")
	}
	if err := upsertMigrationHistory(ctx, db, version.GetCurrentVersion()); err != nil {
		return errors.Wrap(err, "failed to record migration history")
	}
	return nil
}

func applyLatestSchema(ctx context.Context, db *sql.DB) error {
	latestSchemaPath := fmt.Sprintf("migration/%s", latestSchemaFileName)
	buf, err := migrationFS.ReadFile(latestSchemaPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file: %q", latestSchemaPath)
	}

	stmt := string(buf)
	if err := execute(ctx, db, stmt); err != nil {
		return errors.Wrapf(err, "failed to execute statement: %s", stmt)
	}
	return nil
}

func upsertMigrationHistory(ctx context.Context, db *sql.DB, v string) error {
	stmt := `
		INSERT INTO migration_history (
			version
		)
		VALUES (?)
		ON CONFLICT(version) DO UPDATE
		SET
			version=EXCLUDED.version
	`
	_, err := db.ExecContext(ctx, stmt, v)
	return err
}

func execute(ctx context.Context, db *sql.DB, stmt string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(stmt); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "failed to execute statement")
	}

	return tx.Commit()
}
