package repository

import (
	"context"

	"github.com/arnold/compass/internal/analytics"
	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/storage"
)

// QuadrantStatsRepository tracks completed-task minutes per week and quadrant.
type QuadrantStatsRepository struct {
	base
}

func (r *QuadrantStatsRepository) Load(ctx context.Context) models.QuadrantStats {
	stats, ok := storage.GetItem[models.QuadrantStats](ctx, r.store, storage.KeyQuadrantStats)
	if !ok || stats == nil {
		return models.QuadrantStats{}
	}
	return stats
}

func (r *QuadrantStatsRepository) ForWeek(ctx context.Context, weekID string) models.QuadrantMinutes {
	return r.Load(ctx)[weekID]
}

func (r *QuadrantStatsRepository) AddMinutes(ctx context.Context, weekID string, q models.Quadrant, minutes int) (models.QuadrantMinutes, error) {
	return r.adjust(ctx, weekID, q, minutes)
}

// RemoveMinutes subtracts minutes from the bucket. Buckets never drop below zero.
func (r *QuadrantStatsRepository) RemoveMinutes(ctx context.Context, weekID string, q models.Quadrant, minutes int) (models.QuadrantMinutes, error) {
	return r.adjust(ctx, weekID, q, -minutes)
}

func (r *QuadrantStatsRepository) adjust(ctx context.Context, weekID string, q models.Quadrant, delta int) (models.QuadrantMinutes, error) {
	if !q.Valid() {
		return models.QuadrantMinutes{}, invalid("quadrant", "must be one of: I II III IV")
	}
	if _, _, err := analytics.ParseWeekID(weekID); err != nil {
		return models.QuadrantMinutes{}, invalid("weekId", err.Error())
	}
	stats, err := storage.Update(ctx, r.store, storage.KeyQuadrantStats, func(stats models.QuadrantStats, _ bool) (models.QuadrantStats, error) {
		if stats == nil {
			stats = models.QuadrantStats{}
		}
		week := stats[weekID]
		week.Add(q, delta)
		stats[weekID] = week
		return stats, nil
	})
	if err != nil {
		return models.QuadrantMinutes{}, persistErr(err)
	}
	return stats[weekID], nil
}

func (r *QuadrantStatsRepository) PercentageForWeek(ctx context.Context, weekID string, q models.Quadrant) int {
	return analytics.Percentage(r.ForWeek(ctx, weekID), q)
}

func (r *QuadrantStatsRepository) AveragePercentage(ctx context.Context, q models.Quadrant) int {
	return analytics.AveragePercentage(r.Load(ctx), q)
}

// FocusWeeks counts weeks with at least 60% of tracked time in quadrant II.
func (r *QuadrantStatsRepository) FocusWeeks(ctx context.Context) int {
	return analytics.CountWeeks(r.Load(ctx), analytics.IsFocusWeek)
}

// LowWasteWeeks counts weeks with tracked time and under 5% in quadrant IV.
func (r *QuadrantStatsRepository) LowWasteWeeks(ctx context.Context) int {
	return analytics.CountWeeks(r.Load(ctx), analytics.IsLowWasteWeek)
}

func (r *QuadrantStatsRepository) HasConsecutiveFocusWeeks(ctx context.Context, n int) bool {
	return analytics.HasConsecutiveFocusWeeks(r.Load(ctx), n)
}
