package repository

import (
	"context"
	"testing"
	"time"

	"github.com/arnold/compass/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addGoalWithSteps(t *testing.T, repos *Repositories, titles ...string) models.LongTermGoal {
	t.Helper()
	steps := make([]models.GoalStep, 0, len(titles))
	for _, title := range titles {
		steps = append(steps, models.GoalStep{Title: title})
	}
	goal, err := repos.Goals.Add(context.Background(), models.LongTermGoal{
		Title:    "Run a marathon",
		Quadrant: models.QuadrantII,
		Steps:    steps,
	})
	require.NoError(t, err)
	return goal
}

func TestGoalProgressFollowsSteps(t *testing.T) {
	repos, clock := setupRepos(t)
	ctx := context.Background()

	goal := addGoalWithSteps(t, repos, "Buy shoes", "Run 10k", "Run 30k")
	assert.Equal(t, 0, goal.Progress)
	assert.Nil(t, goal.CompletedAt)
	assert.NotEqual(t, goal.Steps[0].ID, goal.Steps[1].ID)

	goal, err := repos.Goals.ToggleStep(ctx, goal.ID, goal.Steps[0].ID)
	require.NoError(t, err)
	goal, err = repos.Goals.ToggleStep(ctx, goal.ID, goal.Steps[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 67, goal.Progress)
	assert.Nil(t, goal.CompletedAt)

	clock.Advance(time.Hour)
	goal, err = repos.Goals.ToggleStep(ctx, goal.ID, goal.Steps[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 100, goal.Progress)
	require.NotNil(t, goal.CompletedAt)
	assert.Equal(t, clock.Now(), *goal.CompletedAt)

	goal, err = repos.Goals.ToggleStep(ctx, goal.ID, goal.Steps[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 67, goal.Progress)
	assert.Nil(t, goal.CompletedAt)
	assert.Nil(t, goal.Steps[2].CompletedAt)
}

func TestGoalWithoutStepsHasNoProgress(t *testing.T) {
	repos, _ := setupRepos(t)
	goal := addGoalWithSteps(t, repos)
	assert.Equal(t, 0, goal.Progress)
	assert.Empty(t, goal.Steps)
	assert.NotNil(t, goal.LinkedRoleIDs)
}

func TestGoalStepEditing(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()
	goal := addGoalWithSteps(t, repos, "Draft outline")

	goal, err := repos.Goals.ToggleStep(ctx, goal.ID, goal.Steps[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 100, goal.Progress)

	goal, err = repos.Goals.AddStep(ctx, goal.ID, "Write chapter one")
	require.NoError(t, err)
	assert.Equal(t, 50, goal.Progress)
	assert.Nil(t, goal.CompletedAt)

	goal, err = repos.Goals.UpdateStep(ctx, goal.ID, goal.Steps[1].ID, "Write chapter 1")
	require.NoError(t, err)
	assert.Equal(t, "Write chapter 1", goal.Steps[1].Title)

	goal, err = repos.Goals.DeleteStep(ctx, goal.ID, goal.Steps[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 100, goal.Progress)
	assert.NotNil(t, goal.CompletedAt)

	_, err = repos.Goals.ToggleStep(ctx, goal.ID, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repos.Goals.AddStep(ctx, goal.ID, " ")
	assert.True(t, IsValidation(err))
}

func TestGoalValidationAndQueries(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()

	_, err := repos.Goals.Add(ctx, models.LongTermGoal{Title: "Learn Go", Quadrant: "V"})
	assert.True(t, IsValidation(err))
	_, err = repos.Goals.Add(ctx, models.LongTermGoal{Title: "Learn Go", Quadrant: models.QuadrantII, Deadline: "next year"})
	assert.True(t, IsValidation(err))

	open := addGoalWithSteps(t, repos, "Step")
	done := addGoalWithSteps(t, repos, "Step")
	_, err = repos.Goals.ToggleStep(ctx, done.ID, done.Steps[0].ID)
	require.NoError(t, err)

	q1 := models.QuadrantI
	_, err = repos.Goals.Update(ctx, open.ID, models.UpdateGoalRequest{Quadrant: &q1})
	require.NoError(t, err)

	assert.Len(t, repos.Goals.Active(ctx), 1)
	assert.Len(t, repos.Goals.Completed(ctx), 1)
	assert.Len(t, repos.Goals.ByQuadrant(ctx, models.QuadrantI), 1)
	assert.Equal(t, done.ID, repos.Goals.Completed(ctx)[0].ID)
}
