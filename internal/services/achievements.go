package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arnold/compass/internal/analytics"
	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/repository"
)

// Snapshot is the state achievement rules are evaluated against. It is read
// once per evaluation.
type Snapshot struct {
	HasMission        bool
	Values            int
	Roles             int
	Goals             int
	WeeklyPlans       int
	BigRocks          int
	DailyTasks        int
	Reflections       int
	PromisesKept      int
	CompletedGoals    int
	CompletedTasks    int
	CompletedBigRocks int
	ReflectionRun     int
	Streaks           models.StreakData
	QuadrantStats     models.QuadrantStats
}

// Rule reports whether an achievement's condition holds.
type Rule func(Snapshot) bool

// Rules maps every catalog key to its unlock condition.
var Rules = map[models.AchievementKey]Rule{
	models.AchievementFirstMission:     func(s Snapshot) bool { return s.HasMission },
	models.AchievementFirstValue:       func(s Snapshot) bool { return s.Values > 0 },
	models.AchievementFirstRole:        func(s Snapshot) bool { return s.Roles > 0 },
	models.AchievementFirstGoal:        func(s Snapshot) bool { return s.Goals > 0 },
	models.AchievementFirstWeeklyPlan:  func(s Snapshot) bool { return s.WeeklyPlans > 0 },
	models.AchievementFirstBigRock:     func(s Snapshot) bool { return s.BigRocks > 0 },
	models.AchievementFirstDailyTask:   func(s Snapshot) bool { return s.DailyTasks > 0 },
	models.AchievementFirstReflection:  func(s Snapshot) bool { return s.Reflections > 0 },
	models.AchievementFirstPromiseKept: func(s Snapshot) bool { return s.PromisesKept > 0 },

	models.AchievementWeeklyStreak4:  func(s Snapshot) bool { return s.Streaks.WeeklyPlanning.LongestStreak >= 4 },
	models.AchievementWeeklyStreak12: func(s Snapshot) bool { return s.Streaks.WeeklyPlanning.LongestStreak >= 12 },
	models.AchievementDailyStreak7:   func(s Snapshot) bool { return s.Streaks.DailyPlanning.LongestStreak >= 7 },
	models.AchievementDailyStreak30:  func(s Snapshot) bool { return s.Streaks.DailyPlanning.LongestStreak >= 30 },

	models.AchievementQ2FocusWeek: func(s Snapshot) bool {
		return analytics.CountWeeks(s.QuadrantStats, analytics.IsFocusWeek) >= 1
	},
	models.AchievementQ2ThreeWeekRun: func(s Snapshot) bool {
		return analytics.HasConsecutiveFocusWeeks(s.QuadrantStats, 3)
	},
	models.AchievementQ2TenWeeks: func(s Snapshot) bool {
		return analytics.CountWeeks(s.QuadrantStats, analytics.IsFocusWeek) >= 10
	},
	models.AchievementLowWaste4Weeks: func(s Snapshot) bool {
		return analytics.CountWeeks(s.QuadrantStats, analytics.IsLowWasteWeek) >= 4
	},

	models.AchievementFirstGoalCompleted: func(s Snapshot) bool { return s.CompletedGoals >= 1 },
	models.AchievementFiveGoalsCompleted: func(s Snapshot) bool { return s.CompletedGoals >= 5 },
	models.AchievementFiftyTasks:         func(s Snapshot) bool { return s.CompletedTasks >= 50 },
	models.AchievementTenBigRocks:        func(s Snapshot) bool { return s.CompletedBigRocks >= 10 },

	models.AchievementReflectionStreak4: func(s Snapshot) bool { return s.ReflectionRun >= 4 },
	models.AchievementThirtyPromises:    func(s Snapshot) bool { return s.PromisesKept >= 30 },
}

type AchievementEvaluator struct {
	repos  *repository.Repositories
	logger *slog.Logger
}

func NewAchievementEvaluator(repos *repository.Repositories, logger *slog.Logger) *AchievementEvaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &AchievementEvaluator{repos: repos, logger: logger}
}

func (e *AchievementEvaluator) Snapshot(ctx context.Context) Snapshot {
	r := e.repos
	_, hasMission := r.Mission.Get(ctx)
	reflections := r.Reflections.Load(ctx)

	return Snapshot{
		HasMission:        hasMission,
		Values:            len(r.Values.Load(ctx)),
		Roles:             len(r.Roles.Load(ctx)),
		Goals:             len(r.Goals.Load(ctx)),
		WeeklyPlans:       len(r.WeeklyPlans.Load(ctx)),
		BigRocks:          len(r.BigRocks.Load(ctx)),
		DailyTasks:        len(r.DailyTasks.Load(ctx)),
		Reflections:       len(reflections),
		PromisesKept:      r.Promises.KeptCount(ctx),
		CompletedGoals:    len(r.Goals.Completed(ctx)),
		CompletedTasks:    r.DailyTasks.CompletedCount(ctx),
		CompletedBigRocks: r.BigRocks.CompletedCount(ctx),
		ReflectionRun:     longestReflectionRun(reflections),
		Streaks:           r.Streaks.Load(ctx),
		QuadrantStats:     r.QuadrantStats.Load(ctx),
	}
}

// longestReflectionRun is the longest run of consecutive weeks that each
// have a reflection.
func longestReflectionRun(reflections []models.WeeklyReflection) int {
	history := make(map[string]models.PeriodEntry, len(reflections))
	for _, w := range reflections {
		weekID, err := analytics.WeekIDForDay(w.WeekStart)
		if err != nil {
			continue
		}
		history[weekID] = models.PeriodEntry{Completed: true}
	}
	longest := 0
	for weekID := range history {
		if run := analytics.CountBackward(history, weekID, analytics.PreviousWeekID); run > longest {
			longest = run
		}
	}
	return longest
}

// Evaluate checks every locked achievement against a single snapshot and
// unlocks those whose rule holds. It returns the achievements unlocked by
// this call. A failed unlock does not stop the others.
func (e *AchievementEvaluator) Evaluate(ctx context.Context) ([]models.Achievement, error) {
	snapshot := e.Snapshot(ctx)
	var (
		unlocked []models.Achievement
		errs     []error
	)
	for _, a := range e.repos.Achievements.Load(ctx) {
		if a.IsUnlocked {
			continue
		}
		rule, ok := Rules[a.ID]
		if !ok || !rule(snapshot) {
			continue
		}
		record, newly, err := e.repos.Achievements.Unlock(ctx, a.ID)
		if err != nil {
			e.logger.Error("failed to unlock achievement", slog.String("achievement", string(a.ID)), slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("unlock %s: %w", a.ID, err))
			continue
		}
		if newly {
			e.logger.Info("achievement unlocked", slog.String("achievement", string(a.ID)))
			unlocked = append(unlocked, record)
		}
	}
	return unlocked, errors.Join(errs...)
}
