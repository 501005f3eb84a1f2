package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"writing_challenge/internal/repository/db/migrations"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	sqliteDriverName = "sqlite"
	gooseDialect     = "sqlite3"
)

// goose keeps its configuration in package globals.
var migrateMu sync.Mutex

// InitDB opens/creates a SQLite DB file and applies the embedded migrations.
// A nil log silences migration output.
func InitDB(ctx context.Context, path string, log goose.Logger) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// One connection: the store serializes writers and SQLite handles one writer anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := migrate(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

// migrate runs every pending goose migration from the embedded FS.
func migrate(ctx context.Context, db *sql.DB, log goose.Logger) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	if log == nil {
		log = goose.NopLogger()
	}
	goose.SetLogger(log)
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
