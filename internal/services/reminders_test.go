package services

import (
	"context"
	"testing"
	"time"

	"github.com/arnold/compass/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingScheduler struct {
	cancelled []models.ReminderCategory
	scheduled []Reminder
}

func (s *recordingScheduler) Cancel(_ context.Context, c models.ReminderCategory) error {
	s.cancelled = append(s.cancelled, c)
	return nil
}

func (s *recordingScheduler) Schedule(_ context.Context, r Reminder) error {
	s.scheduled = append(s.scheduled, r)
	return nil
}

func TestBuildSkipsDisabledCategories(t *testing.T) {
	reminders, err := Build(models.DefaultNotificationSettings())
	require.NoError(t, err)
	require.Len(t, reminders, 3)

	byCategory := map[models.ReminderCategory]Reminder{}
	for _, r := range reminders {
		byCategory[r.Category] = r
	}
	assert.NotContains(t, byCategory, models.ReminderWeeklyCompass)

	daily := byCategory[models.ReminderDailyPlanning]
	assert.Nil(t, daily.Weekday)
	assert.Equal(t, 7, daily.Hour)
	assert.Equal(t, 30, daily.Minute)

	weekly := byCategory[models.ReminderWeeklyReflection]
	require.NotNil(t, weekly.Weekday)
	assert.Equal(t, time.Saturday, *weekly.Weekday)
}

func TestReminderNext(t *testing.T) {
	wednesday := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	sunday, midweek := time.Sunday, time.Wednesday

	tests := []struct {
		name     string
		reminder Reminder
		want     time.Time
	}{
		{"daily later today", Reminder{Hour: 18}, time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC)},
		{"daily already passed", Reminder{Hour: 7, Minute: 30}, time.Date(2026, 10, 15, 7, 30, 0, 0, time.UTC)},
		{"weekly on sunday", Reminder{Weekday: &sunday, Hour: 18}, time.Date(2026, 10, 18, 18, 0, 0, 0, time.UTC)},
		{"weekly today but passed", Reminder{Weekday: &midweek, Hour: 8}, time.Date(2026, 10, 21, 8, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.reminder.Next(wednesday))
		})
	}
}

func TestApplyReschedulesEveryCategory(t *testing.T) {
	scheduler := &recordingScheduler{}
	reminders := NewReminders(scheduler, quietLogger())

	require.NoError(t, reminders.Apply(context.Background(), models.DefaultNotificationSettings()))
	assert.Equal(t, models.ReminderCategories, scheduler.cancelled)
	assert.Len(t, scheduler.scheduled, 3)
}

func TestApplyWithoutSchedulerIsNoop(t *testing.T) {
	assert.NoError(t, NewReminders(nil, quietLogger()).Apply(context.Background(), models.NotificationSettings{}))
}

func TestApplyRejectsBadTime(t *testing.T) {
	settings := models.DefaultNotificationSettings()
	settings.DailyPlanning.Time = "late"
	scheduler := &recordingScheduler{}

	err := NewReminders(scheduler, quietLogger()).Apply(context.Background(), settings)
	assert.Error(t, err)
	assert.Empty(t, scheduler.cancelled)
}

func TestLogSchedulerAcceptsEverything(t *testing.T) {
	s := NewLogScheduler(quietLogger())
	assert.NoError(t, NewReminders(s, quietLogger()).Apply(context.Background(), models.DefaultNotificationSettings()))
}
