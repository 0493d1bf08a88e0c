package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arnold/compass/internal/models"
)

// Reminder is one recurring local notification.
type Reminder struct {
	Category models.ReminderCategory
	Title    string
	Body     string
	// Weekday is nil for reminders that fire every day.
	Weekday *time.Weekday
	Hour    int
	Minute  int
}

// Next returns the first time strictly after t at which the reminder fires.
func (r Reminder) Next(t time.Time) time.Time {
	next := time.Date(t.Year(), t.Month(), t.Day(), r.Hour, r.Minute, 0, 0, t.Location())
	if r.Weekday != nil {
		days := (int(*r.Weekday) - int(next.Weekday()) + 7) % 7
		next = next.AddDate(0, 0, days)
	}
	if !next.After(t) {
		if r.Weekday != nil {
			next = next.AddDate(0, 0, 7)
		} else {
			next = next.AddDate(0, 0, 1)
		}
	}
	return next
}

// ReminderScheduler is the device notification service.
type ReminderScheduler interface {
	Cancel(ctx context.Context, category models.ReminderCategory) error
	Schedule(ctx context.Context, reminder Reminder) error
}

// LogScheduler only logs what it would schedule. It is used where no
// notification service is available.
type LogScheduler struct {
	logger *slog.Logger
}

func NewLogScheduler(logger *slog.Logger) *LogScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogScheduler{logger: logger}
}

func (s *LogScheduler) Cancel(_ context.Context, category models.ReminderCategory) error {
	s.logger.Debug("reminder cancelled", slog.String("category", string(category)))
	return nil
}

func (s *LogScheduler) Schedule(_ context.Context, r Reminder) error {
	attrs := []any{
		slog.String("category", string(r.Category)),
		slog.String("time", fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)),
	}
	if r.Weekday != nil {
		attrs = append(attrs, slog.String("weekday", r.Weekday.String()))
	}
	s.logger.Info("reminder scheduled", attrs...)
	return nil
}

var reminderCopy = map[models.ReminderCategory][2]string{
	models.ReminderWeeklyPlanning:   {"Plan your week", "Put your Big Rocks in first."},
	models.ReminderDailyPlanning:    {"Plan your day", "Choose today's A tasks before the day chooses for you."},
	models.ReminderWeeklyCompass:    {"Check your compass", "Are this week's rocks still pointing at your goals?"},
	models.ReminderWeeklyReflection: {"Reflect on your week", "What worked, what to improve, what you learned."},
}

// Reminders turns notification settings into scheduled reminders.
type Reminders struct {
	scheduler ReminderScheduler
	logger    *slog.Logger
}

// NewReminders returns a Reminders that does nothing when scheduler is nil.
func NewReminders(scheduler ReminderScheduler, logger *slog.Logger) *Reminders {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reminders{scheduler: scheduler, logger: logger}
}

// Build converts settings into the reminders they describe. Disabled
// categories are left out.
func Build(settings models.NotificationSettings) ([]Reminder, error) {
	var out []Reminder
	for _, c := range models.ReminderCategories {
		s := settings.For(c)
		if !s.Enabled {
			continue
		}
		at, err := time.Parse("15:04", s.Time)
		if err != nil {
			return nil, fmt.Errorf("%s reminder time %q: %w", c, s.Time, err)
		}
		copyText := reminderCopy[c]
		r := Reminder{Category: c, Title: copyText[0], Body: copyText[1], Hour: at.Hour(), Minute: at.Minute()}
		if c.Weekly() {
			day := time.Sunday
			if s.DayOfWeek != nil {
				day = time.Weekday(*s.DayOfWeek)
			}
			r.Weekday = &day
		}
		out = append(out, r)
	}
	return out, nil
}

// Apply cancels every category and schedules the enabled ones again.
func (r *Reminders) Apply(ctx context.Context, settings models.NotificationSettings) error {
	if r.scheduler == nil {
		return nil
	}
	reminders, err := Build(settings)
	if err != nil {
		return err
	}
	for _, c := range models.ReminderCategories {
		if err := r.scheduler.Cancel(ctx, c); err != nil {
			return fmt.Errorf("cancel %s reminder: %w", c, err)
		}
	}
	for _, reminder := range reminders {
		if err := r.scheduler.Schedule(ctx, reminder); err != nil {
			return fmt.Errorf("schedule %s reminder: %w", reminder.Category, err)
		}
	}
	r.logger.Debug("reminders rescheduled", slog.Int("scheduled", len(reminders)))
	return nil
}
