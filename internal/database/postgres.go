package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"shop-consultant/internal/config"
)

// Open returns a lazily connecting pool for the catalog database.
// The pool hands out a connection per query, so callers may use it concurrently.
func Open(cfg config.Postgres) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}
