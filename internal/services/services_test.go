package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/repository"
	"github.com/arnold/compass/internal/storage"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	store *storage.Store
	repos *repository.Repositories
	clock *testClock
}

// setupFixture builds an in-memory store and repositories on a clock set to
// Wednesday 2026-10-14, which falls in week 2026-W41.
func setupFixture(t *testing.T) fixture {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}
	store := storage.NewStore(storage.NewMemoryBackend(), quietLogger())
	t.Cleanup(func() { _ = store.Close() })
	repos := repository.New(store, repository.WithClock(clock.Now), repository.WithLogger(quietLogger()))
	return fixture{store: store, repos: repos, clock: clock}
}

func (f fixture) journal(opts ...JournalOption) *Journal {
	opts = append([]JournalOption{WithJournalClock(f.clock.Now)}, opts...)
	return NewJournal(f.repos, quietLogger(), opts...)
}

func (f fixture) backup() *Backup {
	b := NewBackup(f.store, quietLogger())
	b.now = f.clock.Now
	return b
}

func unlockedKeys(achievements []models.Achievement) []models.AchievementKey {
	keys := make([]models.AchievementKey, 0, len(achievements))
	for _, a := range achievements {
		keys = append(keys, a.ID)
	}
	return keys
}
