package analytics

import (
	"time"

	"github.com/arnold/compass/internal/models"
)

// MaxStreakWalk bounds the backward walk so a corrupted history cannot loop forever.
const MaxStreakWalk = 1000

// PreviousFunc maps a period id to the id of the period just before it.
type PreviousFunc func(string) (string, error)

// RecordCompletion marks period as completed in s and recomputes the current
// and longest streaks from the history. An entry that is already completed
// keeps its original timestamp.
func RecordCompletion(s *models.Streak, period string, previous PreviousFunc, now time.Time) {
	if s.History == nil {
		s.History = make(map[string]models.PeriodEntry)
	}
	if entry, ok := s.History[period]; !ok || !entry.Completed {
		stamp := now
		s.History[period] = models.PeriodEntry{Completed: true, CompletedAt: &stamp}
	}

	s.CurrentStreak = CountBackward(s.History, period, previous)
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.LastKey = period
}

// CountBackward counts contiguous completed periods ending at period.
func CountBackward(history map[string]models.PeriodEntry, period string, previous PreviousFunc) int {
	count := 0
	current := period
	for i := 0; i < MaxStreakWalk; i++ {
		entry, ok := history[current]
		if !ok || !entry.Completed {
			break
		}
		count++

		prev, err := previous(current)
		if err != nil {
			break
		}
		current = prev
	}
	return count
}
