package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingBackend fails every operation.
type failingBackend struct{}

var errBroken = errors.New("disk on fire")

func (failingBackend) Get(context.Context, string) ([]byte, error)      { return nil, errBroken }
func (failingBackend) Set(context.Context, string, []byte) error        { return errBroken }
func (failingBackend) SetMany(context.Context, map[string][]byte) error { return errBroken }
func (failingBackend) Delete(context.Context, string) error             { return errBroken }
func (failingBackend) Keys(context.Context) ([]string, error)           { return nil, errBroken }
func (failingBackend) Clear(context.Context) error                      { return errBroken }
func (failingBackend) Close() error                                     { return nil }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type sample struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestStoreTypedRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend(), quietLogger())

	_, ok := GetItem[[]sample](ctx, store, KeyValues)
	assert.False(t, ok)

	require.True(t, store.SetItem(ctx, KeyValues, []sample{{ID: "1", Name: "Family"}}))
	items, ok := GetItem[[]sample](ctx, store, KeyValues)
	require.True(t, ok)
	assert.Equal(t, []sample{{ID: "1", Name: "Family"}}, items)

	require.True(t, store.SetString(ctx, KeyMission, "Be useful"))
	mission, ok := store.GetString(ctx, KeyMission)
	require.True(t, ok)
	assert.Equal(t, "Be useful", mission)

	require.True(t, store.SetBoolean(ctx, KeyOnboardingCompleted, true))
	done, ok := store.GetBoolean(ctx, KeyOnboardingCompleted)
	require.True(t, ok)
	assert.True(t, done)

	raw, ok := store.GetRaw(ctx, KeyOnboardingCompleted)
	require.True(t, ok)
	assert.Equal(t, "true", string(raw))

	require.True(t, store.RemoveItem(ctx, KeyMission))
	_, ok = store.GetString(ctx, KeyMission)
	assert.False(t, ok)
}

func TestStoreDecodeFailureIsAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend(), quietLogger())

	require.True(t, store.SetString(ctx, KeyValues, "not json"))
	_, ok := GetItem[[]sample](ctx, store, KeyValues)
	assert.False(t, ok)

	_, ok = store.GetBoolean(ctx, KeyValues)
	assert.False(t, ok)
}

func TestStoreFailuresBecomeSentinels(t *testing.T) {
	ctx := context.Background()
	store := NewStore(failingBackend{}, quietLogger())

	_, ok := GetItem[[]sample](ctx, store, KeyValues)
	assert.False(t, ok)
	assert.False(t, store.SetItem(ctx, KeyValues, []sample{}))
	assert.False(t, store.SetString(ctx, KeyMission, "x"))
	assert.False(t, store.RemoveItem(ctx, KeyMission))
	assert.False(t, store.SetMultiple(ctx, map[Key][]byte{KeyRoles: []byte("[]")}))
	assert.False(t, store.ClearAll(ctx))
	assert.Nil(t, store.GetAllKeys(ctx))
	assert.Empty(t, store.GetMultiple(ctx, []Key{KeyRoles}))
}

func TestStoreSetItemEncodeFailure(t *testing.T) {
	store := NewStore(NewMemoryBackend(), quietLogger())
	assert.False(t, store.SetItem(context.Background(), KeyValues, make(chan int)))
}

func TestStoreMultiple(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend(), quietLogger())

	require.True(t, store.SetMultiple(ctx, map[Key][]byte{
		KeyRoles: []byte(`[]`),
		KeyGoals: []byte(`[{"id":"g"}]`),
	}))

	got := store.GetMultiple(ctx, []Key{KeyRoles, KeyGoals, KeyValues})
	assert.Len(t, got, 2)
	assert.Equal(t, `[{"id":"g"}]`, string(got[KeyGoals]))
	assert.ElementsMatch(t, []Key{KeyRoles, KeyGoals}, store.GetAllKeys(ctx))

	require.True(t, store.ClearAll(ctx))
	assert.Empty(t, store.GetAllKeys(ctx))
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend(), quietLogger())

	next, err := Update(ctx, store, KeyValues, func(current []sample, found bool) ([]sample, error) {
		assert.False(t, found)
		return append(current, sample{ID: "1"}), nil
	})
	require.NoError(t, err)
	assert.Len(t, next, 1)

	_, err = Update(ctx, store, KeyValues, func(current []sample, found bool) ([]sample, error) {
		assert.True(t, found)
		return append(current, sample{ID: "2"}), nil
	})
	require.NoError(t, err)

	items, ok := GetItem[[]sample](ctx, store, KeyValues)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestUpdateCallbackErrorSkipsWrite(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend(), quietLogger())
	require.True(t, store.SetItem(ctx, KeyValues, []sample{{ID: "1"}}))

	rejected := errors.New("rejected")
	_, err := Update(ctx, store, KeyValues, func(current []sample, _ bool) ([]sample, error) {
		return nil, rejected
	})
	assert.ErrorIs(t, err, rejected)

	items, _ := GetItem[[]sample](ctx, store, KeyValues)
	assert.Len(t, items, 1)
}

func TestUpdateReadFailureSkipsWrite(t *testing.T) {
	ctx := context.Background()
	store := NewStore(failingBackend{}, quietLogger())

	called := false
	_, err := Update(ctx, store, KeyValues, func(current []sample, _ bool) ([]sample, error) {
		called = true
		return current, nil
	})
	assert.ErrorIs(t, err, ErrStoreRead)
	assert.False(t, called)
}

func TestUpdateCorruptValueSkipsWrite(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend(), quietLogger())
	require.True(t, store.SetString(ctx, KeyValues, "{broken"))

	_, err := Update(ctx, store, KeyValues, func(current []sample, _ bool) ([]sample, error) {
		return current, nil
	})
	assert.ErrorIs(t, err, ErrStoreRead)

	raw, _ := store.GetString(ctx, KeyValues)
	assert.Equal(t, "{broken", raw)
}
