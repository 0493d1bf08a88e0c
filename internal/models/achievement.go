package models

import "time"

type AchievementKey string

const (
	AchievementFirstMission     AchievementKey = "first_mission"
	AchievementFirstValue       AchievementKey = "first_value"
	AchievementFirstRole        AchievementKey = "first_role"
	AchievementFirstGoal        AchievementKey = "first_goal"
	AchievementFirstWeeklyPlan  AchievementKey = "first_weekly_plan"
	AchievementFirstBigRock     AchievementKey = "first_big_rock"
	AchievementFirstDailyTask   AchievementKey = "first_daily_task"
	AchievementFirstReflection  AchievementKey = "first_reflection"
	AchievementFirstPromiseKept AchievementKey = "first_promise_kept"

	AchievementWeeklyStreak4  AchievementKey = "weekly_planning_streak_4"
	AchievementWeeklyStreak12 AchievementKey = "weekly_planning_streak_12"
	AchievementDailyStreak7   AchievementKey = "daily_planning_streak_7"
	AchievementDailyStreak30  AchievementKey = "daily_planning_streak_30"

	AchievementQ2FocusWeek    AchievementKey = "quadrant2_focus_week"
	AchievementQ2ThreeWeekRun AchievementKey = "quadrant2_three_week_run"
	AchievementQ2TenWeeks     AchievementKey = "quadrant2_ten_weeks"
	AchievementLowWaste4Weeks AchievementKey = "low_waste_four_weeks"

	AchievementFirstGoalCompleted AchievementKey = "first_goal_completed"
	AchievementFiveGoalsCompleted AchievementKey = "five_goals_completed"
	AchievementFiftyTasks         AchievementKey = "fifty_tasks_completed"
	AchievementTenBigRocks        AchievementKey = "ten_big_rocks_completed"

	AchievementReflectionStreak4 AchievementKey = "reflection_streak_4"
	AchievementThirtyPromises    AchievementKey = "thirty_promises_kept"
)

type Achievement struct {
	ID          AchievementKey `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	IsUnlocked  bool           `json:"isUnlocked"`
	UnlockedAt  *time.Time     `json:"unlockedAt,omitempty"`
}

// AchievementCatalog is the fixed set of achievements. It is seeded into the
// store once and never grows at runtime.
var AchievementCatalog = []Achievement{
	{ID: AchievementFirstMission, Title: "True North", Description: "Write your personal mission statement."},
	{ID: AchievementFirstValue, Title: "Core Values", Description: "Define your first value."},
	{ID: AchievementFirstRole, Title: "Many Hats", Description: "Define your first life role."},
	{ID: AchievementFirstGoal, Title: "Begin With the End", Description: "Set your first long-term goal."},
	{ID: AchievementFirstWeeklyPlan, Title: "Week Ahead", Description: "Plan your first week."},
	{ID: AchievementFirstBigRock, Title: "Big Rocks First", Description: "Schedule your first Big Rock."},
	{ID: AchievementFirstDailyTask, Title: "Day One", Description: "Plan your first daily task."},
	{ID: AchievementFirstReflection, Title: "Looking Back", Description: "Complete your first weekly reflection."},
	{ID: AchievementFirstPromiseKept, Title: "Word Kept", Description: "Keep your first 30/10 promise."},

	{ID: AchievementWeeklyStreak4, Title: "Monthly Rhythm", Description: "Plan four weeks in a row."},
	{ID: AchievementWeeklyStreak12, Title: "Quarter Master", Description: "Plan twelve weeks in a row."},
	{ID: AchievementDailyStreak7, Title: "Week of Days", Description: "Plan seven days in a row."},
	{ID: AchievementDailyStreak30, Title: "Habit Formed", Description: "Plan thirty days in a row."},

	{ID: AchievementQ2FocusWeek, Title: "Quadrant II Living", Description: "Spend at least 60% of a week in Quadrant II."},
	{ID: AchievementQ2ThreeWeekRun, Title: "Proactive Streak", Description: "Three consecutive weeks at 60% Quadrant II."},
	{ID: AchievementQ2TenWeeks, Title: "Second Nature", Description: "Ten weeks at 60% Quadrant II."},
	{ID: AchievementLowWaste4Weeks, Title: "No Time Wasted", Description: "Four weeks under 5% in Quadrant IV."},

	{ID: AchievementFirstGoalCompleted, Title: "Goal Getter", Description: "Complete a long-term goal."},
	{ID: AchievementFiveGoalsCompleted, Title: "Achiever", Description: "Complete five long-term goals."},
	{ID: AchievementFiftyTasks, Title: "Getting Things Done", Description: "Complete fifty daily tasks."},
	{ID: AchievementTenBigRocks, Title: "Rock Solid", Description: "Complete ten Big Rocks."},

	{ID: AchievementReflectionStreak4, Title: "Sharpen the Saw", Description: "Reflect four weeks in a row."},
	{ID: AchievementThirtyPromises, Title: "Trustworthy", Description: "Keep thirty 30/10 promises."},
}

// CatalogEntry returns the catalog definition for key.
func CatalogEntry(key AchievementKey) (Achievement, bool) {
	for _, a := range AchievementCatalog {
		if a.ID == key {
			return a, true
		}
	}
	return Achievement{}, false
}
