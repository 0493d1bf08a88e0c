package models

import (
	"math"
	"time"
)

type LongTermGoal struct {
	ID             string     `json:"id"`
	Title          string     `json:"title" validate:"required,max=120"`
	Description    string     `json:"description" validate:"max=2000"`
	Deadline       string     `json:"deadline,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Quadrant       Quadrant   `json:"quadrant" validate:"required,oneof=I II III IV"`
	LinkedValueIDs []string   `json:"linkedValueIds"`
	LinkedRoleIDs  []string   `json:"linkedRoleIds"`
	Steps          []GoalStep `json:"steps"`
	Progress       int        `json:"progress" validate:"min=0,max=100"`
	CreatedAt      time.Time  `json:"createdAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

type UpdateGoalRequest struct {
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	Deadline       *string   `json:"deadline"`
	Quadrant       *Quadrant `json:"quadrant"`
	LinkedValueIDs []string  `json:"linkedValueIds"`
	LinkedRoleIDs  []string  `json:"linkedRoleIds"`
}

// RecalculateProgress derives Progress from the completed steps and keeps
// CompletedAt in step with it: set when progress reaches 100, cleared otherwise.
// A goal without steps has progress 0.
func (g *LongTermGoal) RecalculateProgress(now time.Time) {
	progress := 0
	if total := len(g.Steps); total > 0 {
		done := 0
		for _, s := range g.Steps {
			if s.Completed {
				done++
			}
		}
		progress = int(math.Round(100 * float64(done) / float64(total)))
	}
	g.Progress = progress

	if progress == 100 {
		if g.CompletedAt == nil {
			g.CompletedAt = &now
		}
	} else {
		g.CompletedAt = nil
	}
}

func (g *LongTermGoal) IsCompleted() bool {
	return g.CompletedAt != nil
}

// StepIndex returns the index of the step with the given id, or -1.
func (g *LongTermGoal) StepIndex(stepID string) int {
	for i := range g.Steps {
		if g.Steps[i].ID == stepID {
			return i
		}
	}
	return -1
}
