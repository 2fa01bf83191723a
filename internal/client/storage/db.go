package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/reeldesk/internal/client/storage/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// RunMigrations applies the embedded schema. It is safe to call repeatedly.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the state database at dsn and migrates it.
//
// The pool is capped at a single connection: SQLite serialises writers
// anyway, and ":memory:" databases are per-connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if err := ensureParentDir(dsn); err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
