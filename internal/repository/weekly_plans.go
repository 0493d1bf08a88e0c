package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/arnold/compass/internal/analytics"
	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/storage"
)

// WeeklyPlanRepository keeps at most one plan per week id.
type WeeklyPlanRepository struct {
	base
}

func (r *WeeklyPlanRepository) items() collection[models.WeeklyPlan] {
	return collection[models.WeeklyPlan]{store: r.store, key: storage.KeyWeeklyPlans, id: func(p *models.WeeklyPlan) string { return p.ID }}
}

func (r *WeeklyPlanRepository) Load(ctx context.Context) []models.WeeklyPlan {
	return r.items().load(ctx)
}

func (r *WeeklyPlanRepository) ForWeek(ctx context.Context, weekID string) (models.WeeklyPlan, bool) {
	for _, p := range r.Load(ctx) {
		if p.WeekID == weekID {
			return p, true
		}
	}
	return models.WeeklyPlan{}, false
}

// GetOrCreate returns the plan for weekID, creating an empty one when none exists.
func (r *WeeklyPlanRepository) GetOrCreate(ctx context.Context, weekID string) (plan models.WeeklyPlan, created bool, err error) {
	start, end, err := analytics.WeekBounds(weekID)
	if err != nil {
		return models.WeeklyPlan{}, false, invalid("weekId", err.Error())
	}
	_, err = r.items().update(ctx, func(plans []models.WeeklyPlan) ([]models.WeeklyPlan, error) {
		for _, p := range plans {
			if p.WeekID == weekID {
				plan = p
				return plans, nil
			}
		}
		now := r.now()
		plan = models.WeeklyPlan{
			ID:         newID(now),
			WeekID:     weekID,
			StartDate:  start,
			EndDate:    end,
			BigRockIDs: []string{},
			CreatedAt:  now,
		}
		created = true
		return append(plans, plan), nil
	})
	if err != nil {
		return models.WeeklyPlan{}, false, err
	}
	return plan, created, nil
}

func (r *WeeklyPlanRepository) AttachBigRock(ctx context.Context, weekID, rockID string) (models.WeeklyPlan, error) {
	return r.mutateWeek(ctx, weekID, func(p *models.WeeklyPlan) error {
		if !slices.Contains(p.BigRockIDs, rockID) {
			p.BigRockIDs = append(p.BigRockIDs, rockID)
		}
		return nil
	})
}

func (r *WeeklyPlanRepository) DetachBigRock(ctx context.Context, weekID, rockID string) (models.WeeklyPlan, error) {
	return r.mutateWeek(ctx, weekID, func(p *models.WeeklyPlan) error {
		p.BigRockIDs = slices.DeleteFunc(p.BigRockIDs, func(id string) bool { return id == rockID })
		return nil
	})
}

func (r *WeeklyPlanRepository) SetNotes(ctx context.Context, weekID, notes string) (models.WeeklyPlan, error) {
	return r.mutateWeek(ctx, weekID, func(p *models.WeeklyPlan) error {
		p.Notes = notes
		return nil
	})
}

// Complete stamps the plan as done. A plan completed earlier keeps its timestamp.
func (r *WeeklyPlanRepository) Complete(ctx context.Context, weekID string) (models.WeeklyPlan, error) {
	return r.mutateWeek(ctx, weekID, func(p *models.WeeklyPlan) error {
		if p.CompletedAt == nil {
			stamp := r.now()
			p.CompletedAt = &stamp
		}
		return nil
	})
}

func (r *WeeklyPlanRepository) Delete(ctx context.Context, id string) error {
	return r.items().remove(ctx, id)
}

func (r *WeeklyPlanRepository) mutateWeek(ctx context.Context, weekID string, fn func(*models.WeeklyPlan) error) (models.WeeklyPlan, error) {
	var result models.WeeklyPlan
	_, err := r.items().update(ctx, func(plans []models.WeeklyPlan) ([]models.WeeklyPlan, error) {
		for i := range plans {
			if plans[i].WeekID != weekID {
				continue
			}
			if err := fn(&plans[i]); err != nil {
				return nil, err
			}
			result = plans[i]
			return plans, nil
		}
		return nil, fmt.Errorf("weekly plan %s: %w", weekID, ErrNotFound)
	})
	if err != nil {
		return models.WeeklyPlan{}, err
	}
	return result, nil
}
