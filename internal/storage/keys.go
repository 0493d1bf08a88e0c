package storage

// Key names one persisted collection or scalar.
type Key string

const (
	KeyMission              Key = "mission"
	KeyValues               Key = "values"
	KeyRoles                Key = "roles"
	KeyGoals                Key = "goals"
	KeyWeeklyPlans          Key = "weekly_plans"
	KeyBigRocks             Key = "big_rocks"
	KeyDailyTasks           Key = "daily_tasks"
	KeyStreaks              Key = "streaks"
	KeyAchievements         Key = "achievements"
	KeyPromises             Key = "promises"
	KeyQuadrantStats        Key = "quadrant_stats"
	KeyWeeklyReflections    Key = "weekly_reflections"
	KeyNotificationSettings Key = "notification_settings"
	KeyAppSettings          Key = "app_settings"
	KeyOnboardingCompleted  Key = "onboarding_completed"
)

// AllKeys lists every key the application writes.
var AllKeys = []Key{
	KeyMission,
	KeyValues,
	KeyRoles,
	KeyGoals,
	KeyWeeklyPlans,
	KeyBigRocks,
	KeyDailyTasks,
	KeyStreaks,
	KeyAchievements,
	KeyPromises,
	KeyQuadrantStats,
	KeyWeeklyReflections,
	KeyNotificationSettings,
	KeyAppSettings,
	KeyOnboardingCompleted,
}
