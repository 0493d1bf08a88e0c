package models

import "time"

// WeeklyPlan is unique per WeekID.
type WeeklyPlan struct {
	ID          string     `json:"id"`
	WeekID      string     `json:"weekId"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	BigRockIDs  []string   `json:"bigRockIds"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
