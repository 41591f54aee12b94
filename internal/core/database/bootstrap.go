package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"
)

//go:embed scripts/initdb.sql
var bootstrapFS embed.FS

// schemaVersion is the highest version initdb.sql records in coach_meta.
const schemaVersion = 2

// EnsureBootstrapped applies initdb.sql when the database is behind schemaVersion.
// The script is idempotent, so a partially applied schema is simply re-run.
func EnsureBootstrapped(ctx context.Context, db *sql.DB) error {
	ctxBoot, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	current, err := appliedVersion(ctxBoot, db)
	if err != nil {
		return err
	}
	if current >= schemaVersion {
		return nil
	}
	return runBootstrap(ctxBoot, db)
}

// appliedVersion reports the newest version in coach_meta, or 0 on a fresh database.
func appliedVersion(ctx context.Context, db *sql.DB) (int, error) {
	var hasMeta bool
	if err := db.QueryRowContext(ctx, `SELECT to_regclass('coach_meta') IS NOT NULL`).Scan(&hasMeta); err != nil {
		return 0, fmt.Errorf("meta table check failed: %w", err)
	}
	if !hasMeta {
		return 0, nil
	}

	var version int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM coach_meta`).Scan(&version); err != nil {
		return 0, fmt.Errorf("meta version check failed: %w", err)
	}
	return version, nil
}

func runBootstrap(ctx context.Context, db *sql.DB) error {
	script, err := bootstrapFS.ReadFile("scripts/initdb.sql")
	if err != nil {
		return fmt.Errorf("read initdb.sql: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, string(script)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("exec bootstrap: %w", err)
	}
	return tx.Commit()
}
