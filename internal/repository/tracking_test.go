package repository

import (
	"context"
	"testing"
	"time"

	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyPlanningStreak(t *testing.T) {
	repos, clock := setupRepos(t)
	ctx := context.Background()

	for _, week := range []string{"2026-W39", "2026-W40", "2026-W41"} {
		_, err := repos.Streaks.RecordWeeklyPlanning(ctx, week)
		require.NoError(t, err)
		clock.Advance(7 * 24 * time.Hour)
	}
	streak := repos.Streaks.Load(ctx).WeeklyPlanning
	assert.Equal(t, 3, streak.CurrentStreak)
	assert.Equal(t, 3, streak.LongestStreak)
	assert.Equal(t, "2026-W41", streak.LastKey)

	streak, err := repos.Streaks.RecordWeeklyPlanning(ctx, "2026-W43")
	require.NoError(t, err)
	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 3, streak.LongestStreak)

	_, err = repos.Streaks.RecordWeeklyPlanning(ctx, "2026-41")
	assert.True(t, IsValidation(err))
}

func TestDailyPlanningStreakKeepsFirstCompletion(t *testing.T) {
	repos, clock := setupRepos(t)
	ctx := context.Background()

	_, err := repos.Streaks.RecordDailyPlanning(ctx, "2026-10-13")
	require.NoError(t, err)
	first := clock.Now()
	streak, err := repos.Streaks.RecordDailyPlanning(ctx, "2026-10-14")
	require.NoError(t, err)
	assert.Equal(t, 2, streak.CurrentStreak)

	clock.Advance(time.Hour)
	streak, err = repos.Streaks.RecordDailyPlanning(ctx, "2026-10-14")
	require.NoError(t, err)
	assert.Equal(t, 2, streak.CurrentStreak)
	assert.True(t, first.Equal(*streak.History["2026-10-14"].CompletedAt))

	assert.Zero(t, repos.Streaks.Load(ctx).WeeklyPlanning.CurrentStreak)
}

func TestAchievementsUnlock(t *testing.T) {
	repos, clock := setupRepos(t)
	ctx := context.Background()

	all := repos.Achievements.Load(ctx)
	assert.Len(t, all, len(models.AchievementCatalog))
	for _, a := range all {
		assert.False(t, a.IsUnlocked)
	}
	_, stored := repos.Achievements.store.GetRaw(ctx, storage.KeyAchievements)
	assert.False(t, stored, "reading the catalog must not persist it")

	record, newly, err := repos.Achievements.Unlock(ctx, models.AchievementFirstMission)
	require.NoError(t, err)
	assert.True(t, newly)
	assert.True(t, record.IsUnlocked)
	require.NotNil(t, record.UnlockedAt)
	assert.True(t, clock.Now().Equal(*record.UnlockedAt))
	first := *record.UnlockedAt

	clock.Advance(time.Hour)
	record, newly, err = repos.Achievements.Unlock(ctx, models.AchievementFirstMission)
	require.NoError(t, err)
	assert.False(t, newly)
	assert.True(t, first.Equal(*record.UnlockedAt))

	assert.True(t, repos.Achievements.IsUnlocked(ctx, models.AchievementFirstMission))
	assert.False(t, repos.Achievements.IsUnlocked(ctx, models.AchievementFirstValue))
	assert.Len(t, repos.Achievements.Unlocked(ctx), 1)
	assert.Len(t, repos.Achievements.Load(ctx), len(models.AchievementCatalog))

	_, _, err = repos.Achievements.Unlock(ctx, "made_up")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFirstUnlockPersistsCatalog(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()

	_, newly, err := repos.Achievements.Unlock(ctx, models.AchievementFirstRole)
	require.NoError(t, err)
	assert.True(t, newly)
	stored, ok := storage.GetItem[[]models.Achievement](ctx, repos.Achievements.store, storage.KeyAchievements)
	require.True(t, ok)
	assert.Len(t, stored, len(models.AchievementCatalog))
}

func TestPromiseKeepAndBreakAreExclusive(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()

	p, err := repos.Promises.Add(ctx, "No phone before breakfast", "2026-10-14")
	require.NoError(t, err)

	p, err = repos.Promises.Keep(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, p.Kept)
	assert.False(t, p.Broken)
	assert.Equal(t, 1, repos.Promises.KeptCount(ctx))

	p, err = repos.Promises.Break(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, p.Broken)
	assert.False(t, p.Kept)
	assert.Nil(t, p.KeptAt)
	assert.Equal(t, 0, repos.Promises.KeptCount(ctx))

	p, err = repos.Promises.ResetStatus(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, p.Kept)
	assert.False(t, p.Broken)

	assert.Len(t, repos.Promises.ForDate(ctx, "2026-10-14"), 1)
	assert.Empty(t, repos.Promises.ForDate(ctx, "2026-10-15"))

	_, err = repos.Promises.Add(ctx, "", "2026-10-14")
	assert.True(t, IsValidation(err))
	_, err = repos.Promises.UpdateDescription(ctx, p.ID, "No phone before 9")
	require.NoError(t, err)
	require.NoError(t, repos.Promises.Delete(ctx, p.ID))
	assert.Empty(t, repos.Promises.Load(ctx))
}

func TestQuadrantStatsMinutes(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()

	_, err := repos.QuadrantStats.AddMinutes(ctx, "2026-W41", models.QuadrantII, 90)
	require.NoError(t, err)
	week, err := repos.QuadrantStats.AddMinutes(ctx, "2026-W41", models.QuadrantIV, 30)
	require.NoError(t, err)
	assert.Equal(t, 120, week.Total())
	assert.Equal(t, 75, repos.QuadrantStats.PercentageForWeek(ctx, "2026-W41", models.QuadrantII))
	assert.Equal(t, 0, repos.QuadrantStats.PercentageForWeek(ctx, "2026-W40", models.QuadrantII))

	week, err = repos.QuadrantStats.RemoveMinutes(ctx, "2026-W41", models.QuadrantIV, 45)
	require.NoError(t, err)
	assert.Equal(t, 0, week.QuadrantIV)
	assert.Equal(t, 100, repos.QuadrantStats.PercentageForWeek(ctx, "2026-W41", models.QuadrantII))
	assert.Equal(t, 1, repos.QuadrantStats.FocusWeeks(ctx))
	assert.Equal(t, 1, repos.QuadrantStats.LowWasteWeeks(ctx))
	assert.Equal(t, 100, repos.QuadrantStats.AveragePercentage(ctx, models.QuadrantII))
	assert.True(t, repos.QuadrantStats.HasConsecutiveFocusWeeks(ctx, 1))
	assert.False(t, repos.QuadrantStats.HasConsecutiveFocusWeeks(ctx, 2))

	_, err = repos.QuadrantStats.AddMinutes(ctx, "2026-W41", "V", 10)
	assert.True(t, IsValidation(err))
}

func TestReflectionSaveUpsertsPerWeek(t *testing.T) {
	repos, clock := setupRepos(t)
	ctx := context.Background()
	answers := models.ReflectionQuestions{
		WhatWorkedWell: "Mornings were protected.",
		WhatToImprove:  "Too many meetings.",
		LessonsLearned: "Say no earlier.",
	}

	first, created, err := repos.Reflections.Save(ctx, "2026-10-11", answers)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Contains(t, models.ReflectionPrompts, first.Prompt)

	clock.Advance(time.Hour)
	answers.Gratitude = "My team."
	second, created, err := repos.Reflections.Save(ctx, "2026-10-11", answers)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Prompt, second.Prompt)
	assert.Equal(t, "My team.", second.Questions.Gratitude)
	assert.Len(t, repos.Reflections.Load(ctx), 1)

	got, ok := repos.Reflections.ForWeek(ctx, "2026-10-11")
	require.True(t, ok)
	assert.Equal(t, first.ID, got.ID)

	_, _, err = repos.Reflections.Save(ctx, "2026-10-18", models.ReflectionQuestions{WhatWorkedWell: "x"})
	assert.True(t, IsValidation(err))

	require.NoError(t, repos.Reflections.Delete(ctx, first.ID))
	_, ok = repos.Reflections.ForWeek(ctx, "2026-10-11")
	assert.False(t, ok)
}

func TestNotificationSettings(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()

	settings := repos.Notifications.Load(ctx)
	assert.Equal(t, models.DefaultNotificationSettings(), settings)

	settings.DailyPlanning.Time = "06:45"
	saved, err := repos.Notifications.Save(ctx, settings)
	require.NoError(t, err)
	assert.Equal(t, "06:45", repos.Notifications.Load(ctx).DailyPlanning.Time)
	assert.Equal(t, saved, repos.Notifications.Load(ctx))

	bad := settings
	bad.WeeklyPlanning.Time = "25:00"
	_, err = repos.Notifications.Save(ctx, bad)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "weeklyPlanning.time", verr.Field)

	bad = settings
	seven := 7
	bad.WeeklyReflection.DayOfWeek = &seven
	_, err = repos.Notifications.Save(ctx, bad)
	assert.True(t, IsValidation(err))

	bad = settings
	bad.WeeklyCompass.DayOfWeek = nil
	_, err = repos.Notifications.Save(ctx, bad)
	assert.True(t, IsValidation(err))
}

func TestAppSettingsAndOnboarding(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()

	assert.Equal(t, models.DefaultAppSettings(), repos.AppSettings.Load(ctx))
	_, err := repos.AppSettings.Save(ctx, models.AppSettings{Theme: "neon"})
	assert.True(t, IsValidation(err))

	saved, err := repos.AppSettings.Save(ctx, models.AppSettings{CalendarSyncEnabled: true})
	require.NoError(t, err)
	assert.Equal(t, "system", saved.Theme)
	assert.True(t, repos.AppSettings.Load(ctx).CalendarSyncEnabled)

	assert.False(t, repos.Onboarding.IsCompleted(ctx))
	require.NoError(t, repos.Onboarding.MarkCompleted(ctx))
	assert.True(t, repos.Onboarding.IsCompleted(ctx))
	require.NoError(t, repos.Onboarding.Reset(ctx))
	assert.False(t, repos.Onboarding.IsCompleted(ctx))
}
