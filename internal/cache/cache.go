// Package cache persists computed fingerprints in a local SQLite database so
// re-runs over an unchanged directory skip the decode+hash work entirely.
// Entries are keyed by a digest of path, size, and mtime; a touched file
// simply misses and gets re-hashed.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // database/sql driver
)

// Cache is a durable file-key -> hash-bits table.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path and ensures the schema
// exists. The parent directory is created if missing.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS fingerprints (
			file_key   TEXT PRIMARY KEY,
			hash_bits  INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// Lookup returns the cached hash bits for a file key, with ok=false on miss.
func (c *Cache) Lookup(ctx context.Context, key string) (bits uint64, ok bool, err error) {
	var stored int64
	err = c.db.QueryRowContext(ctx, `SELECT hash_bits FROM fingerprints WHERE file_key = ?`, key).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	// SQLite integers are signed 64-bit; the cast restores the high bit.
	return uint64(stored), true, nil
}

// Store saves or replaces the hash bits for a file key.
func (c *Cache) Store(ctx context.Context, key string, bits uint64) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO fingerprints (file_key, hash_bits) VALUES (?, ?)
		ON CONFLICT(file_key) DO UPDATE SET hash_bits = excluded.hash_bits
	`, key, int64(bits))
	return err
}

// Clear drops every cached fingerprint.
func (c *Cache) Clear(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM fingerprints`)
	return err
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}
