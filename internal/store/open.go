package store

import (
	"context"
	"fmt"
)

// Options selects and configures a KV backend.
type Options struct {
	Backend     string // memory, postgres, sqlite or redis
	DatabaseURL string
	SQLitePath  string
	Redis       *Redis
}

// Open returns the configured backend.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch opts.Backend {
	case "", "memory":
		return NewMemory(), nil
	case "postgres":
		return NewPostgres(ctx, opts.DatabaseURL)
	case "sqlite":
		return NewSQLite(ctx, opts.SQLitePath)
	case "redis":
		if opts.Redis == nil {
			return nil, fmt.Errorf("store: redis backend needs a client")
		}
		return NewRedisKV(opts.Redis, ""), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", opts.Backend)
	}
}
