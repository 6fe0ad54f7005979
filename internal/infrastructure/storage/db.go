// Package storage keeps products and user profiles as JSON documents in a SQL database.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sustainabuy/backend/internal/domain"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		created_at TEXT NOT NULL,
		doc TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
	`CREATE INDEX IF NOT EXISTS idx_products_name ON products (name)`,
	`CREATE TABLE IF NOT EXISTS variants (
		product_id TEXT NOT NULL,
		id TEXT NOT NULL,
		position INTEGER NOT NULL,
		doc TEXT NOT NULL,
		PRIMARY KEY (product_id, id)
	)`,
	`CREATE TABLE IF NOT EXISTS offers (
		product_id TEXT NOT NULL,
		variant_id TEXT NOT NULL,
		id TEXT NOT NULL,
		position INTEGER NOT NULL,
		doc TEXT NOT NULL,
		PRIMARY KEY (product_id, variant_id, id)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		uid TEXT PRIMARY KEY,
		doc TEXT NOT NULL
	)`,
}

// Open connects to the database and creates the schema
func Open(ctx context.Context, driver, dsn string, maxOpenConns int) (*sql.DB, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	// Every connection to an in-memory SQLite database sees its own empty database,
	// so keep exactly one open for the life of the pool
	if driver == DriverSQLite && strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		if maxOpenConns > 0 {
			db.SetMaxOpenConns(maxOpenConns)
		}
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s ping failed: %w", driver, err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the tables if they do not exist
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// lockClause returns the row lock suffix for read-modify-write selects
func lockClause(driver string) string {
	if driver == DriverPostgres {
		return " FOR UPDATE"
	}
	return ""
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorageFailure, op, err)
}
