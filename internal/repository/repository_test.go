package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupRepos(t *testing.T) (*Repositories, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}
	store := storage.NewStore(storage.NewMemoryBackend(), quietLogger())
	t.Cleanup(func() { _ = store.Close() })
	return New(store, WithClock(clock.Now), WithLogger(quietLogger())), clock
}

type brokenBackend struct {
	storage.Backend
}

var errDisk = errors.New("disk unavailable")

func (brokenBackend) Get(context.Context, string) ([]byte, error) { return nil, errDisk }
func (brokenBackend) Set(context.Context, string, []byte) error   { return errDisk }

func TestNewIDFormat(t *testing.T) {
	now := time.UnixMilli(1760000000123)
	id := newID(now)
	assert.Regexp(t, regexp.MustCompile(`^1760000000123-[0-9a-f]{9}$`), id)
	assert.NotEqual(t, id, newID(now))
}

func TestValidationErrorNamesJSONField(t *testing.T) {
	repos, _ := setupRepos(t)

	_, err := repos.Values.Add(context.Background(), models.Value{Name: "  ", Category: models.CategoryPersonal})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "name: is required", err.Error())

	_, err = repos.Values.Add(context.Background(), models.Value{Name: "Family", Category: "hobbies"})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)
}

func TestStoreFailureSurfacesAsPersistError(t *testing.T) {
	store := storage.NewStore(brokenBackend{Backend: storage.NewMemoryBackend()}, quietLogger())
	repos := New(store)
	ctx := context.Background()

	_, err := repos.Roles.Add(ctx, models.Role{Name: "Parent"})
	assert.ErrorIs(t, err, ErrPersist)
	assert.ErrorIs(t, err, storage.ErrStoreRead)

	_, err = repos.Mission.Set(ctx, "Live deliberately")
	assert.ErrorIs(t, err, ErrPersist)

	assert.Empty(t, repos.Roles.Load(ctx))
}

func TestMission(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()

	_, ok := repos.Mission.Get(ctx)
	assert.False(t, ok)

	_, err := repos.Mission.Set(ctx, "   ")
	assert.True(t, IsValidation(err))

	saved, err := repos.Mission.Set(ctx, "  Leave every place better than I found it.\n")
	require.NoError(t, err)
	assert.Equal(t, "Leave every place better than I found it.", saved)

	mission, ok := repos.Mission.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, saved, mission)

	require.NoError(t, repos.Mission.Clear(ctx))
	_, ok = repos.Mission.Get(ctx)
	assert.False(t, ok)
}
