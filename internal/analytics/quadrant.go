package analytics

import (
	"math"
	"sort"

	"github.com/arnold/compass/internal/models"
)

const (
	// FocusThreshold is the Quadrant II share that makes a week a focus week.
	FocusThreshold = 60
	// WasteThreshold is the Quadrant IV share below which a week is low-waste.
	WasteThreshold = 5
)

// Percentage returns q's share of the week's tracked minutes, rounded to a
// whole percent. A week with no tracked minutes is 0 for every quadrant.
func Percentage(m models.QuadrantMinutes, q models.Quadrant) int {
	total := m.Total()
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(m.Get(q)) / float64(total)))
}

// Breakdown returns the percentage of every quadrant for one week.
func Breakdown(m models.QuadrantMinutes) map[models.Quadrant]int {
	out := make(map[models.Quadrant]int, len(models.Quadrants))
	for _, q := range models.Quadrants {
		out[q] = Percentage(m, q)
	}
	return out
}

// AveragePercentage averages q's share over the weeks that have tracked time.
func AveragePercentage(stats models.QuadrantStats, q models.Quadrant) int {
	sum, weeks := 0, 0
	for _, m := range stats {
		if m.Total() == 0 {
			continue
		}
		sum += Percentage(m, q)
		weeks++
	}
	if weeks == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(weeks)))
}

func IsFocusWeek(m models.QuadrantMinutes) bool {
	return m.Total() > 0 && Percentage(m, models.QuadrantII) >= FocusThreshold
}

func IsLowWasteWeek(m models.QuadrantMinutes) bool {
	return m.Total() > 0 && Percentage(m, models.QuadrantIV) < WasteThreshold
}

// CountWeeks counts the recorded weeks matching pred.
func CountWeeks(stats models.QuadrantStats, pred func(models.QuadrantMinutes) bool) int {
	n := 0
	for _, m := range stats {
		if pred(m) {
			n++
		}
	}
	return n
}

// SortedWeekIDs returns the recorded week ids, newest first.
func SortedWeekIDs(stats models.QuadrantStats) []string {
	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids
}

// HasConsecutiveFocusWeeks reports whether some run of n calendar-adjacent
// weeks are all focus weeks. A week that was never recorded breaks the run.
func HasConsecutiveFocusWeeks(stats models.QuadrantStats, n int) bool {
	if n <= 0 {
		return true
	}
	for _, weekID := range SortedWeekIDs(stats) {
		run := 0
		current := weekID
		for run < n {
			m, ok := stats[current]
			if !ok || !IsFocusWeek(m) {
				break
			}
			run++
			prev, err := PreviousWeekID(current)
			if err != nil {
				break
			}
			current = prev
		}
		if run >= n {
			return true
		}
	}
	return false
}
