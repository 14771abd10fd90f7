package kv

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"talenttrack/internal/adapters/storage"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string
	SQLitePath    string
	SlowQuery     time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	FilePath      string
}

// Open creates the Store named by opts.Backend.
// PRE: opts.Backend is one of the Backend constants
// POST: Returns a ready Store; the caller must Close it
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		path := opts.SQLitePath
		if path == "" {
			path = ":memory:"
		}
		db, err := storage.OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		if err := storage.InitDB(db); err != nil {
			db.Close()
			return nil, err
		}
		timed := storage.NewTimedDB(db, opts.SlowQuery)
		slog.Info("kv_store_opened", "backend", BackendSQLite, "path", path)
		return NewSQLiteStore(timed, timed.Close), nil

	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis unreachable at %s: %w", opts.RedisAddr, err)
		}
		slog.Info("kv_store_opened", "backend", BackendRedis, "addr", opts.RedisAddr)
		return NewRedisStore(client), nil

	case BackendFile:
		fs, err := NewFileStore(opts.FilePath)
		if err != nil {
			return nil, err
		}
		slog.Info("kv_store_opened", "backend", BackendFile, "path", opts.FilePath)
		return fs, nil

	case BackendMemory:
		slog.Info("kv_store_opened", "backend", BackendMemory)
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
