package repository

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/storage"
)

// ReflectionRepository keeps one weekly reflection per week start date.
type ReflectionRepository struct {
	base
}

func (r *ReflectionRepository) items() collection[models.WeeklyReflection] {
	return collection[models.WeeklyReflection]{store: r.store, key: storage.KeyWeeklyReflections, id: func(w *models.WeeklyReflection) string { return w.ID }}
}

func (r *ReflectionRepository) Load(ctx context.Context) []models.WeeklyReflection {
	return r.items().load(ctx)
}

func (r *ReflectionRepository) ForWeek(ctx context.Context, weekStart string) (models.WeeklyReflection, bool) {
	for _, w := range r.Load(ctx) {
		if w.WeekStart == weekStart {
			return w, true
		}
	}
	return models.WeeklyReflection{}, false
}

// Save creates the reflection for weekStart or replaces the answers of the
// existing one. A new reflection is handed a random prompt; an existing one
// keeps its id and prompt.
func (r *ReflectionRepository) Save(ctx context.Context, weekStart string, questions models.ReflectionQuestions) (reflection models.WeeklyReflection, created bool, err error) {
	trimmed(&questions.WhatWorkedWell)
	trimmed(&questions.WhatToImprove)
	trimmed(&questions.LessonsLearned)
	trimmed(&questions.Gratitude)
	candidate := models.WeeklyReflection{WeekStart: weekStart, Questions: questions}
	if err := validateStruct(candidate); err != nil {
		return models.WeeklyReflection{}, false, err
	}

	_, err = r.items().update(ctx, func(all []models.WeeklyReflection) ([]models.WeeklyReflection, error) {
		now := r.now()
		for i := range all {
			if all[i].WeekStart == weekStart {
				all[i].Questions = questions
				all[i].CompletedAt = now
				reflection = all[i]
				return all, nil
			}
		}
		candidate.ID = newID(now)
		candidate.Prompt = randomPrompt()
		candidate.CompletedAt = now
		reflection = candidate
		created = true
		return append(all, candidate), nil
	})
	if err != nil {
		return models.WeeklyReflection{}, false, err
	}
	return reflection, created, nil
}

func (r *ReflectionRepository) Delete(ctx context.Context, id string) error {
	return r.items().remove(ctx, id)
}

func randomPrompt() string {
	if len(models.ReflectionPrompts) == 0 {
		return ""
	}
	return strings.TrimSpace(models.ReflectionPrompts[rand.IntN(len(models.ReflectionPrompts))])
}
