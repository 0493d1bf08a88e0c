package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/storage"
)

// GoalRepository stores long-term goals with their steps inline. Progress is
// always derived from the steps, never set directly.
type GoalRepository struct {
	base
}

func (r *GoalRepository) items() collection[models.LongTermGoal] {
	return collection[models.LongTermGoal]{store: r.store, key: storage.KeyGoals, id: func(g *models.LongTermGoal) string { return g.ID }}
}

func (r *GoalRepository) Load(ctx context.Context) []models.LongTermGoal {
	return r.items().load(ctx)
}

func (r *GoalRepository) Get(ctx context.Context, id string) (models.LongTermGoal, error) {
	return r.items().find(ctx, id)
}

func (r *GoalRepository) Active(ctx context.Context) []models.LongTermGoal {
	return r.filter(ctx, func(g *models.LongTermGoal) bool { return !g.IsCompleted() })
}

func (r *GoalRepository) Completed(ctx context.Context) []models.LongTermGoal {
	return r.filter(ctx, func(g *models.LongTermGoal) bool { return g.IsCompleted() })
}

func (r *GoalRepository) ByQuadrant(ctx context.Context, q models.Quadrant) []models.LongTermGoal {
	return r.filter(ctx, func(g *models.LongTermGoal) bool { return g.Quadrant == q })
}

func (r *GoalRepository) filter(ctx context.Context, keep func(*models.LongTermGoal) bool) []models.LongTermGoal {
	out := []models.LongTermGoal{}
	for _, g := range r.Load(ctx) {
		if keep(&g) {
			out = append(out, g)
		}
	}
	return out
}

// Add stores a new goal. Steps passed in get fresh ids and progress is
// computed from them.
func (r *GoalRepository) Add(ctx context.Context, goal models.LongTermGoal) (models.LongTermGoal, error) {
	trimmed(&goal.Title)
	trimmed(&goal.Description)
	now := r.now()
	goal.ID = newID(now)
	goal.CreatedAt = now
	goal.CompletedAt = nil
	if goal.LinkedValueIDs == nil {
		goal.LinkedValueIDs = []string{}
	}
	if goal.LinkedRoleIDs == nil {
		goal.LinkedRoleIDs = []string{}
	}
	if goal.Steps == nil {
		goal.Steps = []models.GoalStep{}
	}
	for i := range goal.Steps {
		trimmed(&goal.Steps[i].Title)
		goal.Steps[i].ID = newID(now)
		if goal.Steps[i].Completed && goal.Steps[i].CompletedAt == nil {
			stamp := now
			goal.Steps[i].CompletedAt = &stamp
		}
	}
	goal.RecalculateProgress(now)
	if err := r.validate(&goal); err != nil {
		return models.LongTermGoal{}, err
	}
	return r.items().add(ctx, goal)
}

func (r *GoalRepository) validate(goal *models.LongTermGoal) error {
	if err := validateStruct(goal); err != nil {
		return err
	}
	for i := range goal.Steps {
		if err := validateStruct(goal.Steps[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *GoalRepository) Update(ctx context.Context, id string, req models.UpdateGoalRequest) (models.LongTermGoal, error) {
	return r.items().mutate(ctx, id, func(g *models.LongTermGoal) error {
		next := *g
		if req.Title != nil {
			next.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			next.Description = strings.TrimSpace(*req.Description)
		}
		if req.Deadline != nil {
			next.Deadline = *req.Deadline
		}
		if req.Quadrant != nil {
			next.Quadrant = *req.Quadrant
		}
		if req.LinkedValueIDs != nil {
			next.LinkedValueIDs = req.LinkedValueIDs
		}
		if req.LinkedRoleIDs != nil {
			next.LinkedRoleIDs = req.LinkedRoleIDs
		}
		if err := r.validate(&next); err != nil {
			return err
		}
		*g = next
		return nil
	})
}

func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	return r.items().remove(ctx, id)
}

func (r *GoalRepository) AddStep(ctx context.Context, goalID, title string) (models.LongTermGoal, error) {
	step := models.GoalStep{Title: strings.TrimSpace(title)}
	if err := validateStruct(step); err != nil {
		return models.LongTermGoal{}, err
	}
	return r.items().mutate(ctx, goalID, func(g *models.LongTermGoal) error {
		now := r.now()
		step.ID = newID(now)
		g.Steps = append(g.Steps, step)
		g.RecalculateProgress(now)
		return nil
	})
}

func (r *GoalRepository) UpdateStep(ctx context.Context, goalID, stepID, title string) (models.LongTermGoal, error) {
	title = strings.TrimSpace(title)
	if err := validateStruct(models.GoalStep{Title: title}); err != nil {
		return models.LongTermGoal{}, err
	}
	return r.withStep(ctx, goalID, stepID, func(g *models.LongTermGoal, i int) {
		g.Steps[i].Title = title
	})
}

func (r *GoalRepository) DeleteStep(ctx context.Context, goalID, stepID string) (models.LongTermGoal, error) {
	return r.withStep(ctx, goalID, stepID, func(g *models.LongTermGoal, i int) {
		g.Steps = append(g.Steps[:i], g.Steps[i+1:]...)
	})
}

// ToggleStep flips a step's completion and recomputes the goal's progress.
func (r *GoalRepository) ToggleStep(ctx context.Context, goalID, stepID string) (models.LongTermGoal, error) {
	return r.withStep(ctx, goalID, stepID, func(g *models.LongTermGoal, i int) {
		step := &g.Steps[i]
		step.Completed = !step.Completed
		if step.Completed {
			stamp := r.now()
			step.CompletedAt = &stamp
		} else {
			step.CompletedAt = nil
		}
	})
}

func (r *GoalRepository) withStep(ctx context.Context, goalID, stepID string, fn func(*models.LongTermGoal, int)) (models.LongTermGoal, error) {
	return r.items().mutate(ctx, goalID, func(g *models.LongTermGoal) error {
		i := g.StepIndex(stepID)
		if i < 0 {
			return fmt.Errorf("step %s: %w", stepID, ErrNotFound)
		}
		fn(g, i)
		g.RecalculateProgress(r.now())
		return nil
	})
}
