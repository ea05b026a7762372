package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const kvSchema = `
	CREATE TABLE IF NOT EXISTS kv_entries (
		key         TEXT PRIMARY KEY,
		value       TEXT NOT NULL,
		updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
`

// DB is a KV backed by a single SQL table, on Postgres (pgx) or SQLite.
type DB struct {
	Client *sql.DB
	bind   func(n int) string
}

func dollarBind(n int) string { return fmt.Sprintf("$%d", n) }
func questionBind(int) string { return "?" }

// NewPostgres connects to Postgres using pgx and ensures the table exists.
func NewPostgres(ctx context.Context, connString string) (*DB, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	return initDB(ctx, db, dollarBind)
}

// NewSQLite opens (creating if needed) a SQLite file and ensures the table exists.
func NewSQLite(ctx context.Context, path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return initDB(ctx, db, questionBind)
}

func initDB(ctx context.Context, db *sql.DB, bind func(int) string) (*DB, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := db.ExecContext(ctx, kvSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &DB{Client: db, bind: bind}, nil
}

// Get returns the stored value for key.
func (d *DB) Get(ctx context.Context, key string) ([]byte, error) {
	var v string
	err := d.Client.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE key = `+d.bind(1), key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(v), nil
}

// Set upserts key.
func (d *DB) Set(ctx context.Context, key string, value []byte) error {
	_, err := d.Client.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (`+d.bind(1)+`, `+d.bind(2)+`, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP
	`, key, string(value))
	return err
}

// Delete removes key.
func (d *DB) Delete(ctx context.Context, key string) error {
	_, err := d.Client.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = `+d.bind(1), key)
	return err
}

// Healthy pings the database.
func (d *DB) Healthy(ctx context.Context) bool {
	return d != nil && d.Client != nil && d.Client.PingContext(ctx) == nil
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Close()
}
