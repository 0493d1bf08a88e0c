package models

import "time"

type DailyTask struct {
	ID               string     `json:"id"`
	Title            string     `json:"title" validate:"required,max=200"`
	Date             string     `json:"date" validate:"required,datetime=2006-01-02"`
	Priority         Priority   `json:"priority" validate:"required,oneof=A B C"`
	Quadrant         Quadrant   `json:"quadrant" validate:"required,oneof=I II III IV"`
	EstimatedMinutes int        `json:"estimatedMinutes" validate:"gte=0,lte=1440"`
	ActualMinutes    int        `json:"actualMinutes,omitempty"`
	Status           TaskStatus `json:"status"`
	TimerStartedAt   *time.Time `json:"timerStartedAt,omitempty"`
	CalendarEventID  string     `json:"calendarEventId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

type UpdateTaskRequest struct {
	Title            *string   `json:"title"`
	Date             *string   `json:"date"`
	Priority         *Priority `json:"priority"`
	Quadrant         *Quadrant `json:"quadrant"`
	EstimatedMinutes *int      `json:"estimatedMinutes"`
}

func (t *DailyTask) IsCompleted() bool {
	return t.Status == TaskCompleted
}
