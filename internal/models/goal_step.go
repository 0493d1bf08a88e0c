package models

import "time"

// GoalStep belongs to exactly one LongTermGoal and is stored inline in it.
type GoalStep struct {
	ID          string     `json:"id"`
	Title       string     `json:"title" validate:"required,max=120"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
