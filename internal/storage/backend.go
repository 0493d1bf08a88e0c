package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by a Backend when a key has no value.
var ErrKeyNotFound = errors.New("key not found")

// Backend is a persistent byte-level key/value store. Implementations must be
// safe for concurrent use; SetMany should be atomic where the engine allows it.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
	Close() error
}
