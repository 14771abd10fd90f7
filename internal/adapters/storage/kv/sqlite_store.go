package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"talenttrack/internal/adapters/storage"
)

// SQLiteStore implements Store on the kv_entry table.
type SQLiteStore struct {
	db     storage.SQLDB
	closer func() error
	now    func() time.Time
}

// NewSQLiteStore creates a Store over an initialized database.
// closer may be nil when the caller owns the connection.
func NewSQLiteStore(db storage.SQLDB, closer func() error) *SQLiteStore {
	return &SQLiteStore{db: db, closer: closer, now: time.Now}
}

// Get retrieves the value stored under key.
// PRE: key is non-empty
// POST: Returns the value or ErrNotFound
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_entry WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, nil
}

// Set persists value under key (insert or update).
// PRE: key is non-empty
// POST: Value is persisted
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO kv_entry (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at",
		key, value, s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
// PRE: key is non-empty
// POST: No row with the given key remains
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_entry WHERE key = ?", key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying connection if this store owns it.
func (s *SQLiteStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
