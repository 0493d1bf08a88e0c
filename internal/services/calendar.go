package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arnold/compass/internal/analytics"
	"github.com/arnold/compass/internal/models"
	"github.com/google/uuid"
)

// CalendarEvent mirrors a Big Rock or a daily task in the device calendar.
type CalendarEvent struct {
	// ID is empty when the event does not exist yet.
	ID       string
	Title    string
	Start    time.Time
	Duration time.Duration
	AllDay   bool
	Notes    string
}

// CalendarSync is the device calendar. Upsert returns the event id to store
// on the mirrored record.
type CalendarSync interface {
	Upsert(ctx context.Context, event CalendarEvent) (string, error)
	Remove(ctx context.Context, eventID string) error
}

// NoopCalendar stands in when there is no calendar to write to. It hands out
// ids so the rest of the sync flow behaves the same.
type NoopCalendar struct {
	logger *slog.Logger
}

func NewNoopCalendar(logger *slog.Logger) *NoopCalendar {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopCalendar{logger: logger}
}

func (c *NoopCalendar) Upsert(_ context.Context, event CalendarEvent) (string, error) {
	id := event.ID
	if id == "" {
		id = uuid.NewString()
	}
	c.logger.Debug("calendar event upserted", slog.String("event", id), slog.String("title", event.Title))
	return id, nil
}

func (c *NoopCalendar) Remove(_ context.Context, eventID string) error {
	c.logger.Debug("calendar event removed", slog.String("event", eventID))
	return nil
}

// BigRockEvent is an all-day event on the first day of the rock's week.
func BigRockEvent(rock models.BigRock) (CalendarEvent, error) {
	start, _, err := analytics.WeekBounds(rock.WeekID)
	if err != nil {
		return CalendarEvent{}, err
	}
	day, err := analytics.ParseDayID(start)
	if err != nil {
		return CalendarEvent{}, err
	}
	return CalendarEvent{
		ID:       rock.CalendarEventID,
		Title:    "Big Rock: " + rock.Title,
		Start:    day,
		Duration: time.Duration(rock.EstimatedHours * float64(time.Hour)),
		AllDay:   true,
		Notes:    fmt.Sprintf("Quadrant %s, week %s", rock.Quadrant, rock.WeekID),
	}, nil
}

// TaskEvent is an all-day event on the task's date.
func TaskEvent(task models.DailyTask) (CalendarEvent, error) {
	day, err := analytics.ParseDayID(task.Date)
	if err != nil {
		return CalendarEvent{}, err
	}
	return CalendarEvent{
		ID:       task.CalendarEventID,
		Title:    fmt.Sprintf("[%s] %s", task.Priority, task.Title),
		Start:    day,
		Duration: time.Duration(task.EstimatedMinutes) * time.Minute,
		AllDay:   true,
		Notes:    fmt.Sprintf("Quadrant %s", task.Quadrant),
	}, nil
}
