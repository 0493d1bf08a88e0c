package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
)

// ErrStoreRead is returned by Update when the current value could not be
// read. The write is skipped so a failed read never clobbers stored data.
var ErrStoreRead = errors.New("store read failed")

// ErrStoreWrite is returned by Update when the new value could not be written.
var ErrStoreWrite = errors.New("store write failed")

// Store is the typed adapter over a Backend. Its methods never return errors:
// failures are logged and reported as a zero value with ok=false, or false.
type Store struct {
	backend Backend
	logger  *slog.Logger

	// mu serialises writers so a read-modify-write cycle in Update is not
	// interleaved with another write from the same process.
	mu sync.Mutex
}

func NewStore(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{backend: backend, logger: logger}
}

func (s *Store) Backend() Backend {
	return s.backend
}

func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) logFailure(msg string, key Key, err error) {
	s.logger.Error(msg, slog.String("key", string(key)), slog.String("error", err.Error()))
}

// GetRaw returns the stored bytes for key. ok is false when the key is absent
// or the read failed.
func (s *Store) GetRaw(ctx context.Context, key Key) ([]byte, bool) {
	value, err := s.backend.Get(ctx, string(key))
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.logFailure("store read failed", key, err)
		}
		return nil, false
	}
	return value, true
}

// GetItem decodes the JSON value stored under key into a T.
func GetItem[T any](ctx context.Context, s *Store, key Key) (T, bool) {
	var item T
	raw, ok := s.GetRaw(ctx, key)
	if !ok {
		return item, false
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		s.logFailure("store decode failed", key, err)
		var zero T
		return zero, false
	}
	return item, true
}

func (s *Store) SetItem(ctx context.Context, key Key, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		s.logFailure("store encode failed", key, err)
		return false
	}
	return s.SetRaw(ctx, key, data)
}

func (s *Store) SetRaw(ctx context.Context, key Key, value []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(ctx, key, value)
}

func (s *Store) setLocked(ctx context.Context, key Key, value []byte) bool {
	if err := s.backend.Set(ctx, string(key), value); err != nil {
		s.logFailure("store write failed", key, err)
		return false
	}
	return true
}

func (s *Store) RemoveItem(ctx context.Context, key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx, string(key)); err != nil {
		s.logFailure("store delete failed", key, err)
		return false
	}
	return true
}

// GetString returns the raw stored value without JSON decoding.
func (s *Store) GetString(ctx context.Context, key Key) (string, bool) {
	raw, ok := s.GetRaw(ctx, key)
	if !ok {
		return "", false
	}
	return string(raw), true
}

func (s *Store) SetString(ctx context.Context, key Key, value string) bool {
	return s.SetRaw(ctx, key, []byte(value))
}

// GetBoolean reads a boolean stored as "true" or "false".
func (s *Store) GetBoolean(ctx context.Context, key Key) (bool, bool) {
	raw, ok := s.GetString(ctx, key)
	if !ok {
		return false, false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		s.logFailure("store decode failed", key, err)
		return false, false
	}
	return value, true
}

func (s *Store) SetBoolean(ctx context.Context, key Key, value bool) bool {
	return s.SetString(ctx, key, strconv.FormatBool(value))
}

// GetMultiple returns the raw values of the keys that are present.
func (s *Store) GetMultiple(ctx context.Context, keys []Key) map[Key][]byte {
	out := make(map[Key][]byte, len(keys))
	for _, key := range keys {
		if value, ok := s.GetRaw(ctx, key); ok {
			out[key] = value
		}
	}
	return out
}

// SetMultiple writes all entries in one backend batch.
func (s *Store) SetMultiple(ctx context.Context, entries map[Key][]byte) bool {
	if len(entries) == 0 {
		return true
	}
	batch := make(map[string][]byte, len(entries))
	for key, value := range entries {
		batch[string(key)] = value
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.SetMany(ctx, batch); err != nil {
		s.logger.Error("store batch write failed", slog.Int("keys", len(entries)), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (s *Store) GetAllKeys(ctx context.Context) []Key {
	keys, err := s.backend.Keys(ctx)
	if err != nil {
		s.logger.Error("store key listing failed", slog.String("error", err.Error()))
		return nil
	}
	out := make([]Key, 0, len(keys))
	for _, key := range keys {
		out = append(out, Key(key))
	}
	return out
}

// ClearAll wipes every key. It cannot be undone.
func (s *Store) ClearAll(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Clear(ctx); err != nil {
		s.logger.Error("store clear failed", slog.String("error", err.Error()))
		return false
	}
	return true
}

// Update loads the value under key, passes it to fn and writes back what fn
// returns, all while holding the store's write lock. found is false when the
// key is absent. If fn returns an error nothing is written and the error is
// returned as is.
func Update[T any](ctx context.Context, s *Store, key Key, fn func(current T, found bool) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current T
	found := false
	raw, err := s.backend.Get(ctx, string(key))
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &current); err != nil {
			s.logFailure("store decode failed", key, err)
			return current, fmt.Errorf("%w: decode %s: %v", ErrStoreRead, key, err)
		}
		found = true
	case errors.Is(err, ErrKeyNotFound):
	default:
		s.logFailure("store read failed", key, err)
		return current, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}

	next, err := fn(current, found)
	if err != nil {
		return current, err
	}

	data, err := json.Marshal(next)
	if err != nil {
		s.logFailure("store encode failed", key, err)
		return current, fmt.Errorf("%w: encode %s: %v", ErrStoreWrite, key, err)
	}
	if !s.setLocked(ctx, key, data) {
		return current, fmt.Errorf("%w: %s", ErrStoreWrite, key)
	}
	return next, nil
}
