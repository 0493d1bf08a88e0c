package models

import "time"

// Promise3010 is a small daily commitment. Kept and Broken are mutually exclusive;
// both false means the promise is still pending.
type Promise3010 struct {
	ID          string     `json:"id"`
	Description string     `json:"description" validate:"required,max=200"`
	Date        string     `json:"date" validate:"required,datetime=2006-01-02"`
	Kept        bool       `json:"kept"`
	Broken      bool       `json:"broken"`
	CreatedAt   time.Time  `json:"createdAt"`
	KeptAt      *time.Time `json:"keptAt,omitempty"`
	BrokenAt    *time.Time `json:"brokenAt,omitempty"`
}
