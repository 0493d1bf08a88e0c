// Package analytics holds the pure calculations behind streaks and quadrant
// statistics. Nothing here touches storage.
package analytics

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// WeekID returns the "YYYY-Www" id of the Sunday-started week containing t.
// The week belongs to the year of its Sunday and is numbered by how many
// Sundays of that year precede it, so week 1 starts on the year's first Sunday.
func WeekID(t time.Time) string {
	sunday := WeekStart(t)
	return formatWeekID(sunday.Year(), (sunday.YearDay()-1)/7+1)
}

func formatWeekID(year, week int) string {
	return fmt.Sprintf("%d-W%02d", year, week)
}

// WeekStart returns midnight of the Sunday that starts t's week, in t's location.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// ParseWeekID splits a week id into its year and week number.
func ParseWeekID(weekID string) (year, week int, err error) {
	if _, err := fmt.Sscanf(weekID, "%d-W%d", &year, &week); err != nil {
		return 0, 0, fmt.Errorf("parse week id %q: %w", weekID, err)
	}
	if week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("parse week id %q: week out of range", weekID)
	}
	if formatWeekID(year, week) != weekID {
		return 0, 0, fmt.Errorf("parse week id %q: want the form YYYY-Www", weekID)
	}
	return year, week, nil
}

// PreviousWeekID steps back one week. Week 1 steps back to week 52 of the
// previous year even when that year has a week 53.
func PreviousWeekID(weekID string) (string, error) {
	year, week, err := ParseWeekID(weekID)
	if err != nil {
		return "", err
	}
	if week == 1 {
		return formatWeekID(year-1, 52), nil
	}
	return formatWeekID(year, week-1), nil
}

// WeekBounds returns the Sunday and Saturday (YYYY-MM-DD) of weekID.
func WeekBounds(weekID string) (start, end string, err error) {
	year, week, err := ParseWeekID(weekID)
	if err != nil {
		return "", "", err
	}
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	firstSunday := jan1.AddDate(0, 0, (7-int(jan1.Weekday()))%7)
	sunday := firstSunday.AddDate(0, 0, 7*(week-1))
	return sunday.Format(dayLayout), sunday.AddDate(0, 0, 6).Format(dayLayout), nil
}

// DayID formats t as YYYY-MM-DD.
func DayID(t time.Time) string {
	return t.Format(dayLayout)
}

func ParseDayID(dayID string) (time.Time, error) {
	t, err := time.Parse(dayLayout, dayID)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day id %q: %w", dayID, err)
	}
	return t, nil
}

// PreviousDayID steps back one calendar day.
func PreviousDayID(dayID string) (string, error) {
	t, err := ParseDayID(dayID)
	if err != nil {
		return "", err
	}
	return DayID(t.AddDate(0, 0, -1)), nil
}

// WeekIDForDay returns the week id of a YYYY-MM-DD day.
func WeekIDForDay(dayID string) (string, error) {
	t, err := ParseDayID(dayID)
	if err != nil {
		return "", err
	}
	return WeekID(t), nil
}
