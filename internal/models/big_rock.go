package models

import "time"

type BigRock struct {
	ID              string     `json:"id"`
	Title           string     `json:"title" validate:"required,max=120"`
	EstimatedHours  float64    `json:"estimatedHours" validate:"gte=0,lte=168"`
	WeekID          string     `json:"weekId" validate:"required"`
	Quadrant        Quadrant   `json:"quadrant"`
	LinkedGoalID    string     `json:"linkedGoalId,omitempty"`
	LinkedRoleID    string     `json:"linkedRoleId,omitempty"`
	CalendarEventID string     `json:"calendarEventId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

// UpdateBigRockRequest has no quadrant field: a Big Rock is always quadrant II.
type UpdateBigRockRequest struct {
	Title          *string  `json:"title"`
	EstimatedHours *float64 `json:"estimatedHours"`
	WeekID         *string  `json:"weekId"`
	LinkedGoalID   *string  `json:"linkedGoalId"`
	LinkedRoleID   *string  `json:"linkedRoleId"`
}
