package repository

import (
	"context"
	"fmt"

	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/storage"
)

// AchievementRepository stores the fixed achievement catalog with unlock state.
type AchievementRepository struct {
	base
}

// Load returns the stored achievements, or the locked catalog when nothing
// has been unlocked yet. Reading never writes: the catalog is persisted with
// the first unlock.
func (r *AchievementRepository) Load(ctx context.Context) []models.Achievement {
	if stored, ok := storage.GetItem[[]models.Achievement](ctx, r.store, storage.KeyAchievements); ok && stored != nil {
		return stored
	}
	return catalogCopy()
}

func catalogCopy() []models.Achievement {
	out := make([]models.Achievement, len(models.AchievementCatalog))
	copy(out, models.AchievementCatalog)
	return out
}

func (r *AchievementRepository) IsUnlocked(ctx context.Context, key models.AchievementKey) bool {
	for _, a := range r.Load(ctx) {
		if a.ID == key {
			return a.IsUnlocked
		}
	}
	return false
}

// Unlock marks key unlocked and reports whether this call did it, along with
// the stored record. The stored list is re-read inside the write, so an
// unlock that raced ahead is not reported twice.
func (r *AchievementRepository) Unlock(ctx context.Context, key models.AchievementKey) (models.Achievement, bool, error) {
	if _, ok := models.CatalogEntry(key); !ok {
		return models.Achievement{}, false, fmt.Errorf("achievement %s: %w", key, ErrNotFound)
	}
	var (
		record models.Achievement
		newly  bool
	)
	_, err := storage.Update(ctx, r.store, storage.KeyAchievements, func(current []models.Achievement, found bool) ([]models.Achievement, error) {
		if !found || current == nil {
			current = catalogCopy()
		}
		for i := range current {
			if current[i].ID != key {
				continue
			}
			if !current[i].IsUnlocked {
				stamp := r.now()
				current[i].IsUnlocked = true
				current[i].UnlockedAt = &stamp
				newly = true
			}
			record = current[i]
			return current, nil
		}
		return nil, fmt.Errorf("achievement %s: %w", key, ErrNotFound)
	})
	if err != nil {
		return models.Achievement{}, false, persistErr(err)
	}
	return record, newly, nil
}

func (r *AchievementRepository) Unlocked(ctx context.Context) []models.Achievement {
	out := []models.Achievement{}
	for _, a := range r.Load(ctx) {
		if a.IsUnlocked {
			out = append(out, a)
		}
	}
	return out
}
