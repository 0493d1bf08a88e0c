package repository

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/arnold/compass/internal/analytics"
	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/storage"
)

// DailyTaskRepository stores daily tasks and drives their status:
//
//	pending -> in_progress  StartTimer
//	in_progress -> pending  StopTimer
//	pending -> completed    Complete
//	completed -> pending    Uncomplete
type DailyTaskRepository struct {
	base
}

// Transition describes what a status change did, so callers can keep
// derived statistics in step.
type Transition struct {
	Task    models.DailyTask
	Changed bool
}

func (r *DailyTaskRepository) items() collection[models.DailyTask] {
	return collection[models.DailyTask]{store: r.store, key: storage.KeyDailyTasks, id: func(t *models.DailyTask) string { return t.ID }}
}

func (r *DailyTaskRepository) Load(ctx context.Context) []models.DailyTask {
	return r.items().load(ctx)
}

func (r *DailyTaskRepository) Get(ctx context.Context, id string) (models.DailyTask, error) {
	return r.items().find(ctx, id)
}

// ForDate returns the tasks of one day in display order: priority A, B, C,
// then creation time.
func (r *DailyTaskRepository) ForDate(ctx context.Context, date string) []models.DailyTask {
	out := []models.DailyTask{}
	for _, t := range r.Load(ctx) {
		if t.Date == date {
			out = append(out, t)
		}
	}
	sortTasks(out)
	return out
}

func sortTasks(tasks []models.DailyTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if ri, rj := tasks[i].Priority.Rank(), tasks[j].Priority.Rank(); ri != rj {
			return ri < rj
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
}

// CompletedCount counts completed tasks across all days.
func (r *DailyTaskRepository) CompletedCount(ctx context.Context) int {
	count := 0
	for _, t := range r.Load(ctx) {
		if t.IsCompleted() {
			count++
		}
	}
	return count
}

func (r *DailyTaskRepository) Add(ctx context.Context, task models.DailyTask) (models.DailyTask, error) {
	trimmed(&task.Title)
	if err := validateStruct(task); err != nil {
		return models.DailyTask{}, err
	}
	now := r.now()
	task.ID = newID(now)
	task.Status = models.TaskPending
	task.CreatedAt = now
	task.CompletedAt = nil
	task.TimerStartedAt = nil
	task.ActualMinutes = 0
	return r.items().add(ctx, task)
}

// Update applies req to the task. The date, quadrant and estimate of a
// completed task are credited to the quadrant stats, so they cannot change
// until the task is uncompleted.
func (r *DailyTaskRepository) Update(ctx context.Context, id string, req models.UpdateTaskRequest) (models.DailyTask, error) {
	return r.items().mutate(ctx, id, func(t *models.DailyTask) error {
		if t.IsCompleted() {
			if field, changed := creditedFieldChange(*t, req); changed {
				return fmt.Errorf("change %s of completed task %s: %w", field, id, ErrInvalidTransition)
			}
		}
		next := *t
		if req.Title != nil {
			next.Title = strings.TrimSpace(*req.Title)
		}
		if req.Date != nil {
			next.Date = *req.Date
		}
		if req.Priority != nil {
			next.Priority = *req.Priority
		}
		if req.Quadrant != nil {
			next.Quadrant = *req.Quadrant
		}
		if req.EstimatedMinutes != nil {
			next.EstimatedMinutes = *req.EstimatedMinutes
		}
		if err := validateStruct(next); err != nil {
			return err
		}
		*t = next
		return nil
	})
}

func creditedFieldChange(t models.DailyTask, req models.UpdateTaskRequest) (string, bool) {
	switch {
	case req.Date != nil && *req.Date != t.Date:
		return "date", true
	case req.Quadrant != nil && *req.Quadrant != t.Quadrant:
		return "quadrant", true
	case req.EstimatedMinutes != nil && *req.EstimatedMinutes != t.EstimatedMinutes:
		return "estimatedMinutes", true
	}
	return "", false
}

func (r *DailyTaskRepository) Delete(ctx context.Context, id string) error {
	return r.items().remove(ctx, id)
}

// Complete marks a pending task completed. Completing a completed task changes
// nothing. A running timer must be stopped first.
func (r *DailyTaskRepository) Complete(ctx context.Context, id string) (Transition, error) {
	var changed bool
	task, err := r.items().mutate(ctx, id, func(t *models.DailyTask) error {
		switch t.Status {
		case models.TaskCompleted:
			return nil
		case models.TaskInProgress:
			return fmt.Errorf("complete task %s with a running timer: %w", id, ErrInvalidTransition)
		}
		now := r.now()
		t.Status = models.TaskCompleted
		t.CompletedAt = &now
		changed = true
		return nil
	})
	if err != nil {
		return Transition{}, err
	}
	return Transition{Task: task, Changed: changed}, nil
}

// Uncomplete returns a completed task to pending. Other statuses are left alone.
func (r *DailyTaskRepository) Uncomplete(ctx context.Context, id string) (Transition, error) {
	var changed bool
	task, err := r.items().mutate(ctx, id, func(t *models.DailyTask) error {
		if t.Status != models.TaskCompleted {
			return nil
		}
		t.Status = models.TaskPending
		t.CompletedAt = nil
		changed = true
		return nil
	})
	if err != nil {
		return Transition{}, err
	}
	return Transition{Task: task, Changed: changed}, nil
}

func (r *DailyTaskRepository) StartTimer(ctx context.Context, id string) (models.DailyTask, error) {
	return r.items().mutate(ctx, id, func(t *models.DailyTask) error {
		switch t.Status {
		case models.TaskInProgress:
			return nil
		case models.TaskCompleted:
			return fmt.Errorf("start timer on completed task %s: %w", id, ErrInvalidTransition)
		}
		now := r.now()
		t.Status = models.TaskInProgress
		t.TimerStartedAt = &now
		return nil
	})
}

// StopTimer adds the elapsed minutes, rounded, to ActualMinutes and returns
// the task to pending.
func (r *DailyTaskRepository) StopTimer(ctx context.Context, id string) (models.DailyTask, error) {
	return r.items().mutate(ctx, id, func(t *models.DailyTask) error {
		if t.Status != models.TaskInProgress {
			return fmt.Errorf("stop timer on %s task %s: %w", t.Status, id, ErrInvalidTransition)
		}
		stopTimer(t, r.now())
		t.Status = models.TaskPending
		return nil
	})
}

func stopTimer(t *models.DailyTask, now time.Time) {
	if t.TimerStartedAt != nil {
		elapsed := now.Sub(*t.TimerStartedAt).Minutes()
		if elapsed > 0 {
			t.ActualMinutes += int(math.Round(elapsed))
		}
	}
	t.TimerStartedAt = nil
}

// CarryOver moves every unfinished task dated from onto the date to and
// returns the moved tasks. Running timers are stopped on the way.
func (r *DailyTaskRepository) CarryOver(ctx context.Context, from, to string) ([]models.DailyTask, error) {
	if _, err := analytics.ParseDayID(to); err != nil {
		return nil, invalid("date", err.Error())
	}
	moved := []models.DailyTask{}
	_, err := r.items().update(ctx, func(tasks []models.DailyTask) ([]models.DailyTask, error) {
		now := r.now()
		for i := range tasks {
			t := &tasks[i]
			if t.Date != from || t.IsCompleted() {
				continue
			}
			if t.Status == models.TaskInProgress {
				stopTimer(t, now)
				t.Status = models.TaskPending
			}
			t.Date = to
			moved = append(moved, *t)
		}
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	sortTasks(moved)
	return moved, nil
}

func (r *DailyTaskRepository) SetCalendarEventID(ctx context.Context, id, eventID string) (models.DailyTask, error) {
	return r.items().mutate(ctx, id, func(t *models.DailyTask) error {
		t.CalendarEventID = eventID
		return nil
	})
}
