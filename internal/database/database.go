// Package database provides read-only SQLite access for aadex.
package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the read-only connection to the source database.
type DB struct {
	*sql.DB
	Path string
}

// Open opens an existing SQLite database in read-only mode.
// The source database is never written to during a run, so a missing
// file is an error rather than a reason to create one.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path must not be empty")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database file not found: %s", path)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	return &DB{DB: db, Path: path}, nil
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.DB.Close()
}
