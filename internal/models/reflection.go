package models

import "time"

// WeeklyReflection is unique per WeekStart (the Sunday, YYYY-MM-DD).
type WeeklyReflection struct {
	ID          string              `json:"id"`
	WeekStart   string              `json:"weekStart" validate:"required,datetime=2006-01-02"`
	Questions   ReflectionQuestions `json:"questions"`
	Prompt      string              `json:"prompt,omitempty"`
	CompletedAt time.Time           `json:"completedAt"`
}

type ReflectionQuestions struct {
	WhatWorkedWell string `json:"whatWorkedWell" validate:"required"`
	WhatToImprove  string `json:"whatToImprove" validate:"required"`
	LessonsLearned string `json:"lessonsLearned" validate:"required"`
	Gratitude      string `json:"gratitude,omitempty"`
}

// ReflectionPrompts are handed out, one per reflection, as an extra nudge.
var ReflectionPrompts = []string{
	"Which Big Rock moved you closest to your mission this week?",
	"Where did urgent-but-unimportant work crowd out what matters?",
	"Which role did you neglect, and what would one small step look like?",
	"What promise to yourself was hardest to keep?",
	"When did you feel most aligned with your values?",
	"What would you say no to if this week started over?",
	"Who helped you this week, and have you thanked them?",
	"What is one thing to carry into next week's plan?",
}
