package models

import "time"

type StreakCategory string

const (
	StreakWeeklyPlanning StreakCategory = "weeklyPlanning"
	StreakDailyPlanning  StreakCategory = "dailyPlanning"
)

// PeriodEntry records whether a planning ritual was done for one period
// (a week id or a day id). Once Completed it is never rewritten.
type PeriodEntry struct {
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type Streak struct {
	CurrentStreak int                    `json:"currentStreak"`
	LongestStreak int                    `json:"longestStreak"`
	LastKey       string                 `json:"lastKey,omitempty"`
	History       map[string]PeriodEntry `json:"history"`
}

type StreakData struct {
	WeeklyPlanning Streak `json:"weeklyPlanning"`
	DailyPlanning  Streak `json:"dailyPlanning"`
}

// Category returns a pointer to the streak for c so callers can mutate it in place.
func (d *StreakData) Category(c StreakCategory) *Streak {
	if c == StreakDailyPlanning {
		return &d.DailyPlanning
	}
	return &d.WeeklyPlanning
}
