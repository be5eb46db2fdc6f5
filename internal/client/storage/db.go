package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/mymemory/internal/client/migrations"
	"github.com/dmitrijs2005/mymemory/internal/client/repositories/preferences"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// RunMigrations applies the embedded goose migrations to db. It is safe to
// call on an already migrated database.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens (or creates) the SQLite database at dsn, switches file
// databases to WAL journaling and applies migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dsn == ":memory:" {
		// each pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	var mode string
	if err := db.QueryRowContext(ctx, `PRAGMA journal_mode=WAL`).Scan(&mode); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// OpenPreferences is InitDatabase followed by wrapping the handle in a
// preferences repository. The caller owns the returned *sql.DB.
func OpenPreferences(ctx context.Context, dsn string) (*preferences.SQLiteRepository, *sql.DB, error) {
	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return preferences.NewSQLiteRepository(db), db, nil
}
