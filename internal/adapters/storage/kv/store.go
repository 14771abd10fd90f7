package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("key not found")

// Store is a durable string key/value store. Values are JSON text.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// UpdateFunc receives the current value of a key and returns its replacement.
// found is false when the key has no value. Returning an error aborts the update.
type UpdateFunc func(current string, found bool) (string, error)

// Updater is implemented by backends shared between processes that can
// read-modify-write one key atomically. fn may run more than once.
type Updater interface {
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
