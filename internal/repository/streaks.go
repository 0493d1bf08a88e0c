package repository

import (
	"context"

	"github.com/arnold/compass/internal/analytics"
	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/storage"
)

type StreakRepository struct {
	base
}

func (r *StreakRepository) Load(ctx context.Context) models.StreakData {
	data, _ := storage.GetItem[models.StreakData](ctx, r.store, storage.KeyStreaks)
	return data
}

// RecordWeeklyPlanning marks weekID as planned and returns the updated streak.
func (r *StreakRepository) RecordWeeklyPlanning(ctx context.Context, weekID string) (models.Streak, error) {
	if _, _, err := analytics.ParseWeekID(weekID); err != nil {
		return models.Streak{}, invalid("weekId", err.Error())
	}
	return r.record(ctx, models.StreakWeeklyPlanning, weekID, analytics.PreviousWeekID)
}

// RecordDailyPlanning marks the day (YYYY-MM-DD) as planned and returns the updated streak.
func (r *StreakRepository) RecordDailyPlanning(ctx context.Context, dayID string) (models.Streak, error) {
	if _, err := analytics.ParseDayID(dayID); err != nil {
		return models.Streak{}, invalid("date", err.Error())
	}
	return r.record(ctx, models.StreakDailyPlanning, dayID, analytics.PreviousDayID)
}

func (r *StreakRepository) record(ctx context.Context, category models.StreakCategory, period string, previous analytics.PreviousFunc) (models.Streak, error) {
	data, err := storage.Update(ctx, r.store, storage.KeyStreaks, func(data models.StreakData, _ bool) (models.StreakData, error) {
		analytics.RecordCompletion(data.Category(category), period, previous, r.now())
		return data, nil
	})
	if err != nil {
		return models.Streak{}, persistErr(err)
	}
	return *data.Category(category), nil
}
