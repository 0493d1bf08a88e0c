package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWeekID(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2026-01-04", "2026-W01"}, // first Sunday of 2026
		{"2026-01-10", "2026-W01"}, // the Saturday after it
		{"2026-01-03", "2025-W52"}, // belongs to the last week of 2025
		{"2023-12-31", "2023-W53"}, // 2023 has 53 Sundays
		{"2026-10-15", "2026-W41"},
		{"2026-10-11", "2026-W41"},
		{"2023-01-01", "2023-W01"}, // year starting on a Sunday
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekID(day(tt.date)))
		})
	}
}

func TestWeekBoundsMatchesWeekID(t *testing.T) {
	for _, weekID := range []string{"2026-W01", "2026-W41", "2023-W01", "2023-W53", "2025-W52"} {
		start, end, err := WeekBounds(weekID)
		require.NoError(t, err)
		assert.Equal(t, weekID, WeekID(day(start)))
		assert.Equal(t, weekID, WeekID(day(end)))
		assert.Equal(t, time.Sunday, day(start).Weekday())
		assert.Equal(t, time.Saturday, day(end).Weekday())
	}
}

func TestPreviousWeekID(t *testing.T) {
	prev, err := PreviousWeekID("2026-W41")
	require.NoError(t, err)
	assert.Equal(t, "2026-W40", prev)

	prev, err = PreviousWeekID("2026-W01")
	require.NoError(t, err)
	assert.Equal(t, "2025-W52", prev)

	_, err = PreviousWeekID("garbage")
	assert.Error(t, err)

	_, err = PreviousWeekID("2026-W60")
	assert.Error(t, err)
}

func TestParseWeekIDRejectsNonCanonicalIDs(t *testing.T) {
	year, week, err := ParseWeekID("2026-W05")
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 5, week)

	for _, weekID := range []string{"2026-W5", "2026-W05junk", "2026-W041", "2026-w05", " 2026-W05", "2026-W00"} {
		_, _, err := ParseWeekID(weekID)
		assert.Error(t, err, weekID)
	}

	_, err = PreviousWeekID("2026-W5")
	assert.Error(t, err)
	_, _, err = WeekBounds("2026-W41 ")
	assert.Error(t, err)
}

func TestPreviousDayID(t *testing.T) {
	prev, err := PreviousDayID("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", prev)

	prev, err = PreviousDayID("2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", prev)

	_, err = PreviousDayID("01/01/2026")
	assert.Error(t, err)
}

func TestWeekIDForDay(t *testing.T) {
	weekID, err := WeekIDForDay("2026-10-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-W41", weekID)
}
